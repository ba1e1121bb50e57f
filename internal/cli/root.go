/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the dresp command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"dirpx.dev/dresp/config"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	cfgPath string
	debug   bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the dresp command tree. Command output goes to the
// command's configured output; logs go to its error stream.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "dresp",
		Short: "Inspect how driver failures are classified",
		Long: `dresp runs simulated driver failures through the response pipeline and
shows the labels, notes and session effects they produce.

Example usage:
  dresp classify --kind socket_error --state in_progress
  dresp classify --kind operation_failure --code 91 --state committing --explain
  dresp map UNAVAILABLE`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "config file (default searches ./dresp.yaml and $HOME/.config/dresp)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored log output")

	cmd.AddCommand(newClassifyCommand(opts), newMapCommand(opts))
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	os.Exit(exitCode(NewRootCommand()))
}

// exitCode executes cmd and returns the process exit code. Failures are
// printed to the command's error stream.
func exitCode(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

func (o *rootOptions) init(w io.Writer) error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = newLogger(w, cfg, o.debug, o.noColor)
	o.logger.Debug("configuration loaded",
		"retry_writes", cfg.RetryWrites,
		"max_write_retries", cfg.MaxWriteRetries,
		"unpin_policy", cfg.UnpinPolicy,
	)
	return nil
}

func newLogger(w io.Writer, cfg *config.Config, debug, noColor bool) *slog.Logger {
	level := cfg.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}))
}
