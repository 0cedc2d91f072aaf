// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func loadConfigOrDefaults() *Config {
	config, err := LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v. Using default settings.", err)
	}
	return config
}

func browse(cmd *cobra.Command, args []string) error {
	config := loadConfigOrDefaults()
	index, err := loadHistoryIndex(config)
	if err != nil {
		return fmt.Errorf("error reading history: %w", err)
	}
	return runBrowser(index, config)
}

func newRootCmd() *cobra.Command {
	banner := fmt.Sprintf("avlmap %s: an AVL tree ordered map with a shell history browser", version)

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Browse shell history ranked by frequency and recency",
		Long:  fmt.Sprintf("%s\n\n%s", banner, "Run indexes your shell history into an AVL tree and opens the browser"),
		Args:  cobra.NoArgs,
		RunE:  browse,
	}

	var cmdHistory = &cobra.Command{
		Use:   "history",
		Short: "Print ranked history matches for a query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfigOrDefaults()
			index, err := loadHistoryIndex(config)
			if err != nil {
				return fmt.Errorf("error reading history: %w", err)
			}

			match, _ := cmd.Flags().GetString("match")
			limit, _ := cmd.Flags().GetInt("limit")
			if !cmd.Flags().Changed("limit") {
				limit = config.History.Limit
			}
			printRanked(cmd.OutOrStdout(), index.Ranked(match, config.History.EnableFuzzing, limit))
			return nil
		},
	}
	cmdHistory.Flags().String("match", "", "match string prefix to look in history")
	cmdHistory.Flags().Int("limit", 0, "maximum number of matches (default from settings)")

	var cmdLoad = &cobra.Command{
		Use:   "load [FILE]",
		Short: "Load \"key value\" lines into a tree and print it",
		Long: fmt.Sprintf("%s\n\n%s", banner,
			"Load reads one entry per line from FILE, or stdin when FILE is omitted or \"-\".\n"+
				"The first shell word is the key and the rest is the value."),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				r = file
			}

			erase, _ := cmd.Flags().GetStringSlice("erase")
			levels, _ := cmd.Flags().GetBool("levels")
			opts := loadOptions{Erase: erase, Levels: levels}
			if trace, _ := cmd.Flags().GetBool("trace"); trace {
				opts.Trace = log.New(cmd.ErrOrStderr(), "avl: ", 0)
			}
			return runLoad(cmd.OutOrStdout(), r, opts)
		},
	}
	cmdLoad.Flags().StringSlice("erase", nil, "keys to erase after loading")
	cmdLoad.Flags().Bool("levels", false, "print the tree level by level instead of in key order")
	cmdLoad.Flags().Bool("trace", false, "log inserts, erases and rotations to stderr")

	var cmdDemo = &cobra.Command{
		Use:   "demo",
		Short: "Walk through inserts, a rebalancing erase and iteration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var trace *log.Logger
			if on, _ := cmd.Flags().GetBool("trace"); on {
				trace = log.New(cmd.ErrOrStderr(), "avl: ", 0)
			}
			return runDemo(cmd.OutOrStdout(), trace)
		},
	}
	cmdDemo.Flags().Bool("trace", false, "log inserts, erases and rotations to stderr")

	var cmdBench = &cobra.Command{
		Use:   "bench",
		Short: "Time random inserts, finds and erases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfigOrDefaults()
			size, seed := config.Bench.Size, config.Bench.Seed
			if cmd.Flags().Changed("size") {
				size, _ = cmd.Flags().GetInt("size")
			}
			if cmd.Flags().Changed("seed") {
				seed, _ = cmd.Flags().GetUint64("seed")
			}
			quiet, _ := cmd.Flags().GetBool("quiet")

			report, err := runBench(cmd.ErrOrStderr(), size, seed, !quiet)
			if report != nil {
				printBenchReport(cmd.OutOrStdout(), report, NewStyles())
			}
			return err
		},
	}
	cmdBench.Flags().Int("size", 0, "number of random keys (default from settings)")
	cmdBench.Flags().Uint64("seed", 0, "random seed (default from settings)")
	cmdBench.Flags().Bool("quiet", false, "hide progress bars")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show avlmap configuration, creating the default file if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displaySettings(cmd.OutOrStdout())
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avlmap usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlmap version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:          "avlmap",
		Version:      version,
		Long:         banner,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		// Default to run command when no subcommand is provided
		RunE: browse,
	}
	rootCmd.AddCommand(cmdRun, cmdHistory, cmdLoad, cmdDemo, cmdBench, cmdSettings, cmdUsage, cmdVersion)
	return rootCmd
}

func printRanked(w io.Writer, ranked []RankedCommand) {
	commands := make([]string, len(ranked))
	for i, r := range ranked {
		commands[i] = r.Command
	}
	if len(commands) > 0 {
		fmt.Fprintln(w, strings.Join(commands, "\n"))
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
