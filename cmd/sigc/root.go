/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sigc

import (
	"fmt"
	"os"

	"github.com/dburkart/sigc/cmd/sigc/bench"
	"github.com/dburkart/sigc/cmd/sigc/client"
	"github.com/dburkart/sigc/cmd/sigc/run"
	"github.com/dburkart/sigc/cmd/sigc/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "sigc",
		Short: "sigc evaluates integer arithmetic expressions",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		Version: Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("host", "H", "local", "Where to evaluate: local or sigc://host[:port]")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the sigc config file (default ./config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format of tables [csv, json, text]")

	// Bind viper config to the root flags
	viper.BindPFlag("sigc.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("sigc.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("sigc.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("sigc.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("sigc version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, c := range []*cobra.Command{
		run.Command,
		run.TokensCommand,
		run.ASTCommand,
		client.Command,
		server.Command,
		bench.Command,
	} {
		c.Version = rootCmd.Version
		rootCmd.AddCommand(c)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
