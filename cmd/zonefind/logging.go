/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package main

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging configures standard log output, rotating through
// lumberjack when a logfile is configured and falling back to plain
// stderr otherwise, mirroring the teacher's SetupLogging/SetupCliLogging
// split between a file-backed server log and an interactive CLI log.
func setupLogging(logfile string, verbose, debug bool) {
	if logfile != "" {
		log.SetFlags(log.Lshortfile | log.Ltime)
		log.SetOutput(&lumberjack.Logger{
			Filename:   logfile,
			MaxSize:    20,
			MaxBackups: 3,
			MaxAge:     14,
		})
		return
	}

	if verbose || debug {
		log.SetFlags(log.Lshortfile | log.Ltime)
	} else {
		log.SetFlags(0)
	}
}
