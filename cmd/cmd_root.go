// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var httpTrace bool

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&httpTrace, "http-trace", false, "dump provider HTTP traffic to stderr")
}

var rootCmd = &cobra.Command{
	Use:   "hanap",
	Short: "Philippine address resolution",
	Long: `
hanap resolves loosely-specified Philippine postal addresses into coordinates
by combining OpenStreetMap boundary data, fuzzy street matching and a
configurable chain of geocoding providers.
`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
