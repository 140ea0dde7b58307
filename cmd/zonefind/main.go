/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

// Command zonefind is a small demonstration CLI around the zone
// package: it loads a zone file, then answers a single find/findNSEC3
// query against the in-memory lookup core and prints the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string
var verbose, debug bool

var rootCmd = &cobra.Command{
	Use:   "zonefind",
	Short: "Look up a name in a pre-loaded authoritative zone",
}

func main() {
	cobra.OnInitialize(func() {
		setupLogging("", verbose, debug)
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (required)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug output")
	rootCmd.MarkPersistentFlagRequired("config")

	rootCmd.AddCommand(findCmd, findNSEC3Cmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
