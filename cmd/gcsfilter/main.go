// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

// cfg is the parsed configuration shared by the commands.
var cfg *config

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	defaults := defaultConfig()
	cfg = &defaults
	parser := flags.NewParser(cfg, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		defer func() {
			if logRotator != nil {
				logRotator.Close()
			}
		}()
		return command.Execute(args)
	}

	_, err := parser.Parse()
	return err
}

func main() {
	if err := realMain(); err != nil {
		if errors.Is(err, errSubsystemsShown) {
			os.Exit(0)
		}
		var e *flags.Error
		if errors.As(err, &e) {
			// The parser already printed the error.
			if e.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
