// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// mddocx converts Markdown files into word-processing documents.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"zombiezen.com/go/mddocx/internal/config"
	"zombiezen.com/go/mddocx/internal/logging"
)

var version = "dev"

type app struct {
	cfgPath string
	verbose bool
	cfg     *config.Config
	log     zerolog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	rootCmd := &cobra.Command{
		Use:               "mddocx",
		Short:             "Convert Markdown to word-processing documents",
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", os.Getenv("MDDOCX_CONFIG"), "config file `path`")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(
		a.convertCmd(),
		a.previewCmd(),
		a.inspectCmd(),
		a.fmtCmd(),
		a.configCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "mddocx %s\n", version)
			},
		},
	)
	return rootCmd
}

// init loads the configuration and sets up logging.
// It runs before every subcommand.
func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.log = logging.New(cmd.ErrOrStderr(), level, isTerminal(cmd.ErrOrStderr()))
	a.log.Debug().Str("config", a.cfgPath).Msg("Loaded configuration")
	return nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
