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
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/consetl/internal/iorun"
	"github.com/gnames/consetl/internal/iosources"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// statsReport is the YAML document printed by the stats command.
type statsReport struct {
	RunID        string           `yaml:"run_id"`
	ChapterID    int              `yaml:"chapter_id"`
	Rows         rowsReport       `yaml:"rows"`
	Acquisitions []acquisitionRow `yaml:"acquisitions,omitempty"`
}

type rowsReport struct {
	Constituents         int `yaml:"constituents"`
	Emails               int `yaml:"emails"`
	Subscriptions        int `yaml:"subscriptions"`
	ChapterSubscriptions int `yaml:"chapter_subscriptions"`
	PrimaryRows          int `yaml:"primary_rows"`
	People               int `yaml:"people"`
	Unsubscribed         int `yaml:"unsubscribed"`
	AcquisitionDates     int `yaml:"acquisition_dates"`
}

type acquisitionRow struct {
	Date  string `yaml:"date"`
	Count int    `yaml:"count"`
}

// getStatsCmd returns the stats command.
func getStatsCmd() *cobra.Command {
	var (
		src       sourceFlags
		withDates bool
	)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics of a transformation without saving it",
		Long: `Load source tables and transform them, then print row counts of
every step as YAML. Nothing is written to sinks.

Examples:
  consetl stats
  consetl stats -c 2 --dates`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStats(cmd, src, withDates)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	src.register(statsCmd)
	statsCmd.Flags().BoolVarP(
		&withDates, "dates", "d", false,
		"include acquisitions per date",
	)

	return statsCmd
}

func runStats(cmd *cobra.Command, src sourceFlags, withDates bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	statsOpts := src.options(cmd)
	statsOpts = append(statsOpts, config.OptRunID(uuid.New().String()))
	cfg.Update(statsOpts)

	loader, err := iosources.New(cfg)
	if err != nil {
		return err
	}

	res, err := iorun.New(cfg, loader, nil).Transform(ctx)
	if err != nil {
		return err
	}

	return writeStats(cmd.OutOrStdout(), cfg.RunID, res, withDates)
}

func newStatsReport(runID string, res *etl.Result, withDates bool) statsReport {
	st := res.Stats
	rep := statsReport{
		RunID:     runID,
		ChapterID: st.ChapterID,
		Rows: rowsReport{
			Constituents:         st.Constituents,
			Emails:               st.Emails,
			Subscriptions:        st.Subscriptions,
			ChapterSubscriptions: st.ChapterSubscriptions,
			PrimaryRows:          st.PrimaryRows,
			People:               st.People,
			Unsubscribed:         st.Unsubscribed,
			AcquisitionDates:     st.AcquisitionDates,
		},
	}
	if !withDates {
		return rep
	}
	for _, v := range res.Acquisitions {
		rep.Acquisitions = append(rep.Acquisitions, acquisitionRow{
			Date:  v.AcquisitionDate.Format(etl.DateFormat),
			Count: v.Acquisitions,
		})
	}
	return rep
}

func writeStats(
	w io.Writer,
	runID string,
	res *etl.Result,
	withDates bool,
) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newStatsReport(runID, res, withDates)); err != nil {
		return err
	}
	return enc.Close()
}
