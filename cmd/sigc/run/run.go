/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dburkart/sigc/pkg/calc"
	"github.com/dburkart/sigc/pkg/calc/ast"
	"github.com/dburkart/sigc/pkg/common/parse"
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/dburkart/sigc/pkg/repl"
	"github.com/dburkart/sigc/pkg/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Command = &cobra.Command{
		Use:   "run [file]",
		Short: "Evaluate a program and print its result",
		Args:  cobra.MaximumNArgs(1),

		Run: func(cmd *cobra.Command, args []string) {
			log := viper.Get("logger").(zerolog.Logger)
			src := resolve(cmd, args, log)
			os.Exit(Program(cmd.OutOrStdout(), cmd.ErrOrStderr(), calc.NewPipeline(log), src))
		},
	}

	TokensCommand = &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a program",
		Args:  cobra.MaximumNArgs(1),

		Run: func(cmd *cobra.Command, args []string) {
			log := viper.Get("logger").(zerolog.Logger)
			src := resolve(cmd, args, log)
			writer := repl.NewOutputWriter(cmd.OutOrStdout(), viper.GetString("sigc.output"))
			os.Exit(Tokens(writer, cmd.ErrOrStderr(), src))
		},
	}

	ASTCommand = &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a program",
		Args:  cobra.MaximumNArgs(1),

		Run: func(cmd *cobra.Command, args []string) {
			log := viper.Get("logger").(zerolog.Logger)
			src := resolve(cmd, args, log)
			os.Exit(Tree(cmd.OutOrStdout(), cmd.ErrOrStderr(), src))
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{Command, TokensCommand, ASTCommand} {
		c.Flags().StringP("expr", "e", "", "Expression to use instead of a file")
	}
}

func resolve(cmd *cobra.Command, args []string, log zerolog.Logger) source.Source {
	expr, _ := cmd.Flags().GetString("expr")

	src, err := source.Resolve(args, expr, os.Stdin, source.IsTerminal(os.Stdin), viper.GetString("run.file"))
	if err != nil {
		log.Error().Err(err).Msg("unable to read program")
		os.Exit(1)
	}
	log.Debug().Str("source", src.Name).Int("bytes", len(src.Text)).Msg("read program")

	return src
}

// Program evaluates src and prints the result. The return value is the
// process exit status.
func Program(out, errOut io.Writer, p calc.Pipeline, src source.Source) int {
	outcome := p.Run(src.Text)
	if !outcome.Ok() {
		Report(errOut, src, outcome.Err)
		return 1
	}

	fmt.Fprintf(out, "Program result: %d\n", outcome.Value)
	return 0
}

func Tokens(w repl.OutputWriter, errOut io.Writer, src source.Source) int {
	if err := w.Write(proto.NewTokensResponse(calc.Tokenize(src.Text))); err != nil {
		fmt.Fprintf(errOut, "unable to write tokens: %s\n", err)
		return 1
	}
	return 0
}

func Tree(out, errOut io.Writer, src source.Source) int {
	node, err := calc.Parse(calc.Tokenize(src.Text))
	if err != nil {
		Report(errOut, src, err)
		return 1
	}

	fmt.Fprint(out, ast.Dump(node))
	return 0
}

// Report prints err. Syntax errors are shown under the line of src they
// point into.
func Report(w io.Writer, src source.Source, err error) {
	var syntaxError parse.SyntaxError
	if !errors.As(err, &syntaxError) {
		fmt.Fprintf(w, "Error evaluating %s: %s\n", src.Name, err)
		return
	}

	line, offset := lineAt(src.Text, syntaxError.Location.Start)
	syntaxError.Location.Start -= offset
	syntaxError.Location.End -= offset
	if syntaxError.Location.End > len(line) {
		syntaxError.Location.End = len(line)
	}
	fmt.Fprint(w, syntaxError.FormatError(line))
}

// lineAt returns the line of text holding pos and the offset it starts at
func lineAt(text string, pos int) (string, int) {
	if pos > len(text) {
		pos = len(text)
	}

	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[start:], '\n')
	if end == -1 {
		return strings.TrimRight(text[start:], "\r"), start
	}
	return strings.TrimRight(text[start:start+end], "\r"), start
}
