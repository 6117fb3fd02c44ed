/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package client

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	sigc "github.com/dburkart/sigc/api"
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/dburkart/sigc/pkg/repl"
	"github.com/rs/zerolog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "repl",
	Short: "Interactive terminal for evaluating expressions",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)
		output := viper.GetString("sigc.output")
		if len(filterStringSlice([]string{"csv", "text", "json"}, output)) != 1 {
			log.Fatal().Str("output", output).Msg("unsupported output format")
		}

		host := viper.GetString("sigc.host")
		target, err := proto.ParseConnectionString(host)
		if err != nil {
			log.Fatal().Err(err).Msg("error parsing URL")
		}

		client, err := sigc.NewClientWithLogger(log, host, 1)
		if err != nil {
			log.Fatal().Err(err).Str("address", target.Address).Msg("unable to connect to server")
		}
		defer client.Close()

		readlinePrompt(log, client, output)
	},
}

func filterStringSlice(s []string, prefix string) []string {
	retList := []string{}
	for i := range s {
		if strings.HasPrefix(s[i], prefix) {
			retList = append(retList, s[i])
		}
	}
	return retList
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func newCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("exit"),
	}
	for _, c := range repl.Commands {
		items = append(items, readline.PcItem(c))
	}
	return readline.NewPrefixCompleter(items...)
}

// Serve answers one REPL line. It reports false once the session should end.
func Serve(log zerolog.Logger, c sigc.Client, writer repl.OutputWriter, out, errOut io.Writer, line string) bool {
	switch strings.ToUpper(line) {
	case "":
		return true
	case "HELP":
		fmt.Fprintln(out, "usage:")
		fmt.Fprintln(out, newCompleter().Tree("    "))
		fmt.Fprintln(out, "    <expression>")
		return true
	case "EXIT", "QUIT":
		return false
	}

	replMsg, err := repl.ParseREPLCommand([]byte(line))
	if err != nil {
		log.Error().Err(err).Send()
		return true
	}

	msg, err := c.Send(replMsg)
	if err != nil {
		log.Error().Err(err).Msg("error sending message to server")
		return false
	}

	if err := repl.Render(writer, errOut, replMsg.Command, msg); err != nil {
		log.Error().Err(err).Object("msg", msg).Msg("unable to render response")
	}
	return true
}

func readlinePrompt(log zerolog.Logger, c sigc.Client, output string) {
	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("unable to start readline")
	}
	defer rl.Close()

	// Configure output writer
	writer := repl.NewOutputWriter(os.Stdout, output)

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		if !Serve(log, c, writer, os.Stdout, os.Stderr, strings.TrimSpace(ln.Line)) {
			break
		}
		fmt.Println()
	}
	rl.Clean()
}
