/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/consetl/internal/iorun"
	"github.com/gnames/consetl/internal/iosink"
	"github.com/gnames/consetl/internal/iosources"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRunCmd() *cobra.Command {
	var (
		src       sourceFlags
		outputDir string
		sinks     []string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Build people and acquisition_facts tables",
		Long: `Load source tables, transform them and save results.

This command:
  1. Loads cons, cons_email and cons_email_chapter_subscription tables
     (local files, http(s) URLs or s3://bucket/key)
  2. Keeps primary emails of constituents
  3. Marks emails that unsubscribed from the chosen chapter
  4. Counts acquisitions per calendar date
  5. Saves people and acquisition_facts to every configured sink

Sinks:
  csv       people.csv and acquisition_facts.csv in the output directory
  sqlite    SQLite file (sqlite.path in config)
  postgres  PostgreSQL database (database section in config)

Examples:
  # Use sources and sinks from config.yaml
  consetl run

  # Chapter 2, local files, CSV and SQLite output
  consetl run -c 2 --cons cons.csv --emails cons_email.csv \
    --subscriptions cons_email_chapter_subscription.csv -s csv,sqlite

  # Read from S3 and write to PostgreSQL
  consetl run --cons s3://bucket/cons.csv -s postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRun(cmd, src, outputDir, sinks)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	src.register(runCmd)
	runCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"directory for output files",
	)
	runCmd.Flags().StringSliceVarP(
		&sinks, "sink", "s", []string{},
		"sinks to write results to (csv, sqlite, postgres)",
	)

	return runCmd
}

func runOptions(
	cmd *cobra.Command,
	src sourceFlags,
	outputDir string,
	sinks []string,
) []config.Option {
	res := src.options(cmd)
	if cmd.Flags().Changed("output-dir") {
		res = append(res, config.OptOutputDir(outputDir))
	}
	if cmd.Flags().Changed("sink") {
		res = append(res, config.OptOutputSinks(sinks))
	}
	return res
}

func runRun(
	cmd *cobra.Command,
	src sourceFlags,
	outputDir string,
	sinks []string,
) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	runOpts := runOptions(cmd, src, outputDir, sinks)
	runOpts = append(runOpts, config.OptRunID(uuid.New().String()))
	cfg.Update(runOpts)

	loader, err := iosources.New(cfg)
	if err != nil {
		return err
	}

	snks, err := iosink.FromConfig(cfg)
	if err != nil {
		return err
	}

	r := iorun.New(cfg, loader, snks)
	if _, err = r.Run(ctx); err != nil {
		return err
	}

	gn.Info("Run <em>%s</em> finished", cfg.RunID)
	return nil
}
