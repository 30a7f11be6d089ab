package iosink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/consetl/internal/iodb"
	"github.com/gnames/consetl/internal/ioschema"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/db"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/consetl/pkg/schema"
	"github.com/gnames/consetl/pkg/sink"
	"github.com/jackc/pgx/v5"
)

var errMissingTable = errors.New("table does not exist after schema creation")

type pgSink struct {
	cfg *config.Config
	op  db.Operator
}

// NewPostgres creates a sink that loads results into PostgreSQL.
// Tables are created with GORM AutoMigrate, people and acquisition
// facts are replaced in one transaction.
func NewPostgres(cfg *config.Config) sink.Sink {
	return &pgSink{
		cfg: cfg,
		op:  iodb.NewPgxOperator(),
	}
}

func (s *pgSink) Name() string {
	return "postgres"
}

func (s *pgSink) Write(ctx context.Context, res *etl.Result) error {
	if err := s.op.Connect(ctx, &s.cfg.Database); err != nil {
		return err
	}
	defer s.op.Close()

	if err := ioschema.NewManager(s.op).Create(ctx); err != nil {
		return err
	}
	if err := checkTables(ctx, s.Name(), s.op); err != nil {
		return err
	}

	tx, err := s.op.Pool().Begin(ctx)
	if err != nil {
		return DBLoadError(s.Name(), "all", err)
	}
	defer tx.Rollback(ctx)

	if err = s.savePeople(ctx, tx, res.People); err != nil {
		return DBLoadError(s.Name(), schema.Person{}.TableName(), err)
	}
	if err = s.saveAcquisitions(ctx, tx, res.Acquisitions); err != nil {
		return DBLoadError(s.Name(), schema.AcquisitionFact{}.TableName(), err)
	}
	if err = s.saveRun(ctx, tx, res.Stats); err != nil {
		return DBLoadError(s.Name(), schema.Run{}.TableName(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return DBLoadError(s.Name(), "all", err)
	}

	slog.Info("Saved results to PostgreSQL",
		"database", s.cfg.Database.Database,
		"people", humanize.Comma(int64(len(res.People))),
		"acquisition_dates", len(res.Acquisitions),
	)
	return nil
}

// checkTables makes sure every table of the schema exists before data
// is loaded.
func checkTables(ctx context.Context, sinkName string, op db.Operator) error {
	for _, v := range schema.AllGenerators() {
		exists, err := op.TableExists(ctx, v.TableName())
		if err != nil {
			return err
		}
		if !exists {
			return DBLoadError(sinkName, v.TableName(), errMissingTable)
		}
	}
	return nil
}

// savePeople replaces the people table using CopyFrom in batches.
func (s *pgSink) savePeople(
	ctx context.Context,
	tx pgx.Tx,
	people []etl.Person,
) error {
	table := schema.Person{}.TableName()
	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}

	batchSize := s.cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 10_000
	}
	columns := schema.Columns(schema.Person{})

	bar := newProgressBar(len(people), "Saving people: ")
	defer bar.Finish()

	for i := 0; i < len(people); i += batchSize {
		end := min(i+batchSize, len(people))
		batch := people[i:end]

		rows := make([][]any, len(batch))
		for j, v := range batch {
			rows[j] = []any{
				i + j + 1,
				EmailID(v.Email),
				v.Email,
				v.Code,
				v.IsUnsub,
				v.CreatedDt,
				v.UpdatedDt,
			}
		}

		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("copy from: %w", err)
		}
		if int(n) != len(batch) {
			return fmt.Errorf("copied %d rows out of %d", n, len(batch))
		}
		bar.Add(len(batch))
	}
	return nil
}

func (s *pgSink) saveAcquisitions(
	ctx context.Context,
	tx pgx.Tx,
	acq []etl.AcquisitionCount,
) error {
	table := schema.AcquisitionFact{}.TableName()
	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		schema.Columns(schema.AcquisitionFact{}),
		pgx.CopyFromSlice(len(acq), func(i int) ([]any, error) {
			return []any{acq[i].AcquisitionDate, acq[i].Acquisitions}, nil
		}),
	)
	return err
}

func (s *pgSink) saveRun(
	ctx context.Context,
	tx pgx.Tx,
	stats etl.Stats,
) error {
	if s.cfg.RunID == "" {
		return nil
	}
	q := `INSERT INTO etl_runs
	(id, chapter_id, people, unsubscribed, acquisition_dates, loaded_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		people = EXCLUDED.people,
		unsubscribed = EXCLUDED.unsubscribed,
		acquisition_dates = EXCLUDED.acquisition_dates,
		loaded_at = EXCLUDED.loaded_at`
	_, err := tx.Exec(ctx, q,
		s.cfg.RunID,
		stats.ChapterID,
		stats.People,
		stats.Unsubscribed,
		stats.AcquisitionDates,
		time.Now().UTC(),
	)
	return err
}
