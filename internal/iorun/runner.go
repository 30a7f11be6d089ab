// Package iorun implements lifecycle.Runner. It connects source loaders,
// the pure pipeline from pkg/etl and sinks.
package iorun

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/consetl/pkg/lifecycle"
	"github.com/gnames/consetl/pkg/sink"
	"github.com/gnames/consetl/pkg/sources"
	"github.com/gnames/consetl/pkg/table"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

type runner struct {
	cfg    *config.Config
	loader sources.Loader
	sinks  []sink.Sink
}

// New creates a Runner. Sinks are used in the given order.
func New(
	cfg *config.Config,
	loader sources.Loader,
	sinks []sink.Sink,
) lifecycle.Runner {
	return &runner{cfg: cfg, loader: loader, sinks: sinks}
}

// Transform loads the three tables and runs the pipeline.
func (r *runner) Transform(ctx context.Context) (*etl.Result, error) {
	start := time.Now()
	log := slog.With("run_id", r.cfg.RunID)

	gn.Info("(1/3) Loading source tables...")
	in, err := r.load(ctx)
	if err != nil {
		log.Error("Cannot load sources", "error", err)
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	gn.Info("(2/3) Transforming data for chapter <em>%d</em>...",
		r.cfg.Sources.ChapterID)
	res, err := etl.Run(in, r.cfg.Sources.ChapterID)
	if err != nil {
		log.Error("Cannot transform data", "error", err)
		return nil, err
	}

	st := res.Stats
	log.Info("Transformed data",
		"constituents", st.Constituents,
		"emails", st.Emails,
		"subscriptions", st.Subscriptions,
		"chapter_subscriptions", st.ChapterSubscriptions,
		"people", st.People,
		"unsubscribed", st.Unsubscribed,
		"acquisition_dates", st.AcquisitionDates,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Message("<em>Created %s people rows and %s acquisition dates</em>",
		humanize.Comma(int64(st.People)),
		humanize.Comma(int64(st.AcquisitionDates)),
	)
	return res, nil
}

// Run transforms data and writes results to all sinks.
func (r *runner) Run(ctx context.Context) (*etl.Result, error) {
	start := time.Now()
	log := slog.With("run_id", r.cfg.RunID)

	res, err := r.Transform(ctx)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	gn.Info("(3/3) Writing results...")
	var written []string
	for _, s := range r.sinks {
		if err = s.Write(ctx, res); err != nil {
			log.Error("Sink failed",
				"sink", s.Name(),
				"written", written,
				"error", err,
			)
			if len(written) > 0 {
				gn.Warn("Results were already saved to: %v", written)
			}
			return nil, err
		}
		written = append(written, s.Name())
		gn.Message("<em>Saved results to %s</em>", s.Name())
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	log.Info("Run complete", "sinks", written, "duration", dur)
	gn.Info("Run complete. Elapsed time: <em>%s</em>", dur)
	return res, nil
}

func (r *runner) load(ctx context.Context) (etl.Input, error) {
	var res etl.Input
	src := r.cfg.Sources

	jobs := []struct {
		name     string
		location string
		dest     **table.Table
	}{
		{"cons", src.Constituents, &res.Constituents},
		{"cons_email", src.Emails, &res.Emails},
		{"cons_email_chapter_subscription", src.Subscriptions, &res.Subscriptions},
	}

	for _, v := range jobs {
		if err := ctx.Err(); err != nil {
			return res, CancelledError(err)
		}
		tbl, err := r.loader.Load(ctx, v.name, v.location)
		if err != nil {
			return res, err
		}
		*v.dest = tbl
		gn.Message("<em>%s: %s rows</em>", v.name, humanize.Comma(int64(tbl.Len())))
	}
	return res, nil
}
