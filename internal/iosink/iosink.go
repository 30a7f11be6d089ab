// Package iosink implements sink.Sink for CSV files, PostgreSQL and
// SQLite.
package iosink

import (
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/sink"
)

// New creates a sink by its name.
func New(name string, cfg *config.Config) (sink.Sink, error) {
	switch name {
	case "csv":
		return NewCSV(cfg), nil
	case "postgres":
		return NewPostgres(cfg), nil
	case "sqlite":
		return NewSQLite(cfg), nil
	default:
		return nil, UnknownSinkError(name)
	}
}

// FromConfig creates all sinks listed in cfg.Output.Sinks, in order.
func FromConfig(cfg *config.Config) ([]sink.Sink, error) {
	res := make([]sink.Sink, 0, len(cfg.Output.Sinks))
	for _, v := range cfg.Output.Sinks {
		s, err := New(v, cfg)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}
