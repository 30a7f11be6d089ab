package iosink

import (
	"fmt"

	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownSinkError creates an error for a sink name that has no
// implementation.
func UnknownSinkError(name string) error {
	msg := `Unknown sink <em>%s</em>

<em>How to fix:</em>
  Use one of: csv, postgres, sqlite`

	return &gn.Error{
		Code: errcode.SinkUnknownError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("unknown sink %q", name),
	}
}

// WriteError creates an error for a failure to write output files.
func WriteError(path string, err error) error {
	msg := `Cannot write output to <em>%s</em>

<em>Possible causes:</em>
  - Output directory is not writable
  - Disk is full

<em>How to fix:</em>
  1. Check permissions of the output directory
  2. Use another directory with <em>--output-dir</em>`

	return &gn.Error{
		Code: errcode.SinkWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

// SQLiteOpenError creates an error for a SQLite file that cannot be
// opened or initialized.
func SQLiteOpenError(path string, err error) error {
	msg := "Cannot open SQLite database <em>%s</em>"

	return &gn.Error{
		Code: errcode.SinkSQLiteOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open SQLite %s: %w", path, err),
	}
}

// DBLoadError creates an error for a failed load of a table into a
// database. Nothing is committed when it happens.
func DBLoadError(sink, table string, err error) error {
	msg := `Cannot load <em>%s</em> table into %s, no changes were saved`

	return &gn.Error{
		Code: errcode.SinkDBLoadError,
		Msg:  msg,
		Vars: []any{table, sink},
		Err:  fmt.Errorf("%s: load %s: %w", sink, table, err),
	}
}
