package iosink_test

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/consetl/internal/iodb"
	"github.com/gnames/consetl/internal/iosink"
	"github.com/gnames/consetl/internal/iotesting"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() *etl.Result {
	created := time.Date(2020, 1, 1, 10, 11, 12, 0, time.UTC)
	updated := time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)
	return &etl.Result{
		People: []etl.Person{
			{Email: "a@x.com", Code: "web", IsUnsub: true,
				CreatedDt: created, UpdatedDt: updated},
			{Email: "b@x.com", Code: "ad", IsUnsub: false,
				CreatedDt: created, UpdatedDt: updated},
		},
		Acquisitions: []etl.AcquisitionCount{
			{AcquisitionDate: etl.DateOf(created), Acquisitions: 2},
		},
		Stats: etl.Stats{People: 2, Unsubscribed: 1, AcquisitionDates: 1, ChapterID: 1},
	}
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptOutputDir(t.TempDir()),
		config.OptRunID("0b3b3bd0-7f3a-4a33-9a0b-4a5f3b3c2d1e"),
	})
	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	res, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return res
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	for _, v := range []string{"csv", "postgres", "sqlite"} {
		s, err := iosink.New(v, cfg)
		require.NoError(t, err)
		assert.Equal(t, v, s.Name())
	}

	_, err := iosink.New("parquet", cfg)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SinkUnknownError, gnErr.Code)
}

func TestFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Update([]config.Option{config.OptOutputSinks([]string{"sqlite", "csv"})})

	sinks, err := iosink.FromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.Equal(t, "sqlite", sinks[0].Name())
	assert.Equal(t, "csv", sinks[1].Name())
}

func TestCSVSink(t *testing.T) {
	cfg := testConfig(t)
	s := iosink.NewCSV(cfg)

	err := s.Write(context.Background(), testResult())
	require.NoError(t, err)

	people := readCSV(t, filepath.Join(cfg.Output.Dir, "people.csv"))
	assert.Equal(t, [][]string{
		{"email", "code", "is_unsub", "created_dt", "updated_dt"},
		{"a@x.com", "web", "True", "2020-01-01 10:11:12", "2020-02-03 04:05:06"},
		{"b@x.com", "ad", "False", "2020-01-01 10:11:12", "2020-02-03 04:05:06"},
	}, people)

	acq := readCSV(t, filepath.Join(cfg.Output.Dir, "acquisition_facts.csv"))
	assert.Equal(t, [][]string{
		{"acquisition_date", "acquisitions"},
		{"2020-01-01", "2"},
	}, acq)

	entries, err := os.ReadDir(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files are removed")
}

func TestCSVSinkSecondRenameFails(t *testing.T) {
	cfg := testConfig(t)
	peoplePath := filepath.Join(cfg.Output.Dir, "people.csv")
	acqPath := filepath.Join(cfg.Output.Dir, "acquisition_facts.csv")

	old := "email,code,is_unsub,created_dt,updated_dt\nold@x.com,tv,False,x,y\n"
	require.NoError(t, os.WriteFile(peoplePath, []byte(old), 0644))

	// a non-empty directory in place of the acquisitions file
	require.NoError(t, os.MkdirAll(filepath.Join(acqPath, "keep"), 0755))

	err := iosink.NewCSV(cfg).Write(context.Background(), testResult())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SinkWriteError, gnErr.Code)

	content, err := os.ReadFile(peoplePath)
	require.NoError(t, err)
	assert.Equal(t, old, string(content), "previous people file is restored")

	entries, err := os.ReadDir(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary and backup files are removed")
}

func TestCSVSinkNoPreviousFile(t *testing.T) {
	cfg := testConfig(t)
	acqPath := filepath.Join(cfg.Output.Dir, "acquisition_facts.csv")
	require.NoError(t, os.MkdirAll(filepath.Join(acqPath, "keep"), 0755))

	err := iosink.NewCSV(cfg).Write(context.Background(), testResult())
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "people.csv"))
	assert.True(t, os.IsNotExist(err), "new people file is removed")
}

func TestCSVSinkEmpty(t *testing.T) {
	cfg := testConfig(t)
	s := iosink.NewCSV(cfg)

	err := s.Write(context.Background(), &etl.Result{})
	require.NoError(t, err)

	people := readCSV(t, filepath.Join(cfg.Output.Dir, "people.csv"))
	assert.Equal(t, [][]string{etl.PeopleHeader}, people)
}

func TestCSVSinkNewDir(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(cfg.Output.Dir, "nested", "out")
	cfg.Update([]config.Option{config.OptOutputDir(dir)})

	err := iosink.NewCSV(cfg).Write(context.Background(), testResult())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "people.csv"))
}

func TestSQLiteSink(t *testing.T) {
	cfg := testConfig(t)
	s := iosink.NewSQLite(cfg)
	ctx := context.Background()

	// second write replaces people and appends a run
	require.NoError(t, s.Write(ctx, testResult()))
	require.NoError(t, s.Write(ctx, testResult()))

	db, err := sql.Open("sqlite", filepath.Join(cfg.Output.Dir, "consetl.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT count(*) FROM people").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var email, emailID, created string
	var unsub bool
	err = db.QueryRow(
		"SELECT email, email_id, is_unsub, created_dt FROM people WHERE id = 1",
	).Scan(&email, &emailID, &unsub, &created)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
	assert.Equal(t, iosink.EmailID("A@X.com "), emailID)
	assert.True(t, unsub)
	assert.Equal(t, "2020-01-01 10:11:12", created)

	var date string
	err = db.QueryRow(
		"SELECT acquisition_date, acquisitions FROM acquisition_facts",
	).Scan(&date, &count)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", date)
	assert.Equal(t, 2, count)

	err = db.QueryRow("SELECT count(*) FROM etl_runs").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "same run id is stored once")
}

func TestPostgresSink(t *testing.T) {
	iotesting.SkipWithoutDB(t)

	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{
		config.OptRunID("5f0a4c38-8d5d-4a8c-b6a2-4b0c8f1e9a11"),
		config.OptDatabaseBatchSize(1),
	})
	ctx := context.Background()

	s := iosink.NewPostgres(cfg)
	require.NoError(t, s.Write(ctx, testResult()))

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	var count int
	err := op.Pool().QueryRow(ctx, "SELECT count(*) FROM people").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = op.Pool().QueryRow(ctx,
		"SELECT acquisitions FROM acquisition_facts WHERE acquisition_date = '2020-01-01'",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, _ = op.Pool().Exec(ctx, "DELETE FROM etl_runs WHERE id = $1", cfg.RunID)
}
