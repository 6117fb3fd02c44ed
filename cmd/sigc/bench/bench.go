/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sigc "github.com/dburkart/sigc/api"
	"github.com/dburkart/sigc/pkg/proto"
)

var Command = &cobra.Command{
	Use:   "bench",
	Short: "Send a series of evaluations to the server and time them",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		host := viper.GetString("sigc.host")
		target, err := proto.ParseConnectionString(host)
		if err != nil {
			log.Fatal().Err(err).Msg("error parsing URL")
		}

		workers := viper.GetInt("bench.workers")
		if workers < 1 {
			workers = 1
		}

		client, err := sigc.NewClientWithLogger(log, host, uint(workers))
		if err != nil {
			log.Fatal().Err(err).Str("address", target.Address).Msg("unable to connect to server")
		}
		defer client.Close()

		expr, _ := cmd.Flags().GetString("expr")
		timeIt(log, "Evaluate", viper.GetInt("bench.count"), workers, func() error {
			_, err := client.Evaluate(expr)
			return err
		})
	},
}

func init() {
	// Flags for this command
	Command.Flags().Int("count", 1000, "Number of expressions to send")
	Command.Flags().Int("workers", 1, "Number of concurrent connections")
	Command.Flags().StringP("expr", "e", "(1 + 2) * 3 - 4 / 2", "Expression to evaluate")

	// Bind flags to viper
	viper.BindPFlag("bench.count", Command.Flags().Lookup("count"))
	viper.BindPFlag("bench.workers", Command.Flags().Lookup("workers"))
}

// timeIt runs f count times spread over workers goroutines and logs how
// long it took. Failed runs are counted but don't stop the loop.
func timeIt(log zerolog.Logger, name string, count, workers int, f func() error) (time.Duration, int) {
	var failed atomic.Int64
	var wg sync.WaitGroup

	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	t := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := f(); err != nil {
					failed.Add(1)
					log.Debug().Err(err).Int("i", i).Msg("request failed")
				}
			}
		}()
	}
	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	dur := time.Since(t)

	perSecond := int64(0)
	if dur > 0 {
		perSecond = int64(float64(count) / dur.Seconds())
	}

	log.Info().
		Str("name", name).
		Str("dur", dur.String()).
		Str("requests", humanize.Comma(int64(count))).
		Int("workers", workers).
		Int64("failed", failed.Load()).
		Str("per-second", humanize.Comma(perSecond)).
		Send()

	return dur, int(failed.Load())
}
