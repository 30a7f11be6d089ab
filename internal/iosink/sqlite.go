package iosink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/consetl/pkg/schema"
	"github.com/gnames/consetl/pkg/sink"
	"github.com/gnames/gnsys"
	_ "modernc.org/sqlite"
)

type sqliteSink struct {
	path  string
	runID string
}

// NewSQLite creates a sink that stores results in a SQLite file.
// Existing people and acquisition facts are replaced, runs are appended.
func NewSQLite(cfg *config.Config) sink.Sink {
	return &sqliteSink{
		path:  cfg.OutputPath(cfg.SQLite.Path),
		runID: cfg.RunID,
	}
}

func (s *sqliteSink) Name() string {
	return "sqlite"
}

func (s *sqliteSink) Write(ctx context.Context, res *etl.Result) error {
	if err := gnsys.MakeDir(filepath.Dir(s.path)); err != nil {
		return SQLiteOpenError(s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return SQLiteOpenError(s.path, err)
	}
	defer db.Close()

	if err = db.PingContext(ctx); err != nil {
		return SQLiteOpenError(s.path, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return SQLiteOpenError(s.path, err)
	}
	defer tx.Rollback()

	for _, v := range schema.AllGenerators() {
		stmts := append([]string{v.TableDDL()}, v.IndexDDL()...)
		for _, q := range stmts {
			if _, err = tx.ExecContext(ctx, q); err != nil {
				return SQLiteOpenError(s.path, err)
			}
		}
	}

	if err = s.savePeople(ctx, tx, res.People); err != nil {
		return DBLoadError(s.Name(), schema.Person{}.TableName(), err)
	}
	if err = s.saveAcquisitions(ctx, tx, res.Acquisitions); err != nil {
		return DBLoadError(s.Name(), schema.AcquisitionFact{}.TableName(), err)
	}
	if err = s.saveRun(ctx, tx, res.Stats); err != nil {
		return DBLoadError(s.Name(), schema.Run{}.TableName(), err)
	}

	if err = tx.Commit(); err != nil {
		return DBLoadError(s.Name(), "all", err)
	}

	slog.Info("Saved SQLite database",
		"path", s.path,
		"people", len(res.People),
		"acquisition_dates", len(res.Acquisitions),
	)
	return nil
}

func (s *sqliteSink) savePeople(
	ctx context.Context,
	tx *sql.Tx,
	people []etl.Person,
) error {
	table := schema.Person{}.TableName()
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, schema.Columns(schema.Person{})))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, v := range people {
		_, err = stmt.ExecContext(ctx,
			i+1,
			EmailID(v.Email),
			v.Email,
			v.Code,
			v.IsUnsub,
			FormatDateTime(v.CreatedDt),
			FormatDateTime(v.UpdatedDt),
		)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *sqliteSink) saveAcquisitions(
	ctx context.Context,
	tx *sql.Tx,
	acq []etl.AcquisitionCount,
) error {
	table := schema.AcquisitionFact{}.TableName()
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		insertSQL(table, schema.Columns(schema.AcquisitionFact{})))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range acq {
		_, err = stmt.ExecContext(ctx,
			v.AcquisitionDate.Format(etl.DateFormat),
			v.Acquisitions,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteSink) saveRun(
	ctx context.Context,
	tx *sql.Tx,
	stats etl.Stats,
) error {
	if s.runID == "" {
		return nil
	}
	table := schema.Run{}.TableName()
	q := "INSERT OR REPLACE" + strings.TrimPrefix(
		insertSQL(table, schema.Columns(schema.Run{})), "INSERT",
	)
	_, err := tx.ExecContext(ctx, q,
		s.runID,
		stats.ChapterID,
		stats.People,
		stats.Unsubscribed,
		stats.AcquisitionDates,
		time.Now().UTC().Format(etl.DateTimeFormat),
	)
	return err
}

// insertSQL builds an INSERT statement with positional parameters.
func insertSQL(table string, columns []string) string {
	params := make([]string, len(columns))
	for i := range params {
		params[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(params, ", "))
}
