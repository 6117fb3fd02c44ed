/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/dburkart/sigc/pkg/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "server",
	Short: "Evaluate expressions for remote clients",

	Run: func(cmd *cobra.Command, args []string) {
		logger := viper.Get("logger").(zerolog.Logger)
		server.Version = cmd.Version

		srv := server.New(
			logger,
			viper.GetInt("server.port"),
			viper.GetInt("server.prom-port"),
		)

		// Serve the metrics endpoint
		go func() {
			if err := srv.ServeMetrics(); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()

		if err := srv.ServeCalculator(); err != nil {
			logger.Fatal().Err(err).Msg("error listening and serving")
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8001, "Server port for client connections")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")

	// Bind flags to viper
	viper.BindPFlag("server.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("server.prom-port", Command.Flags().Lookup("prom-port"))
}
