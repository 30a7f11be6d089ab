package iosink

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOperator struct {
	tables map[string]bool
	err    error
}

func (f *fakeOperator) Connect(context.Context, *config.DatabaseConfig) error {
	return nil
}

func (f *fakeOperator) Close() error { return nil }

func (f *fakeOperator) Pool() *pgxpool.Pool { return nil }

func (f *fakeOperator) TableExists(_ context.Context, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.tables[name], nil
}

func TestCheckTables(t *testing.T) {
	ctx := context.Background()
	all := map[string]bool{
		"people":            true,
		"acquisition_facts": true,
		"etl_runs":          true,
	}

	t.Run("all tables exist", func(t *testing.T) {
		op := &fakeOperator{tables: all}
		assert.NoError(t, checkTables(ctx, "postgres", op))
	})

	t.Run("missing table", func(t *testing.T) {
		op := &fakeOperator{tables: map[string]bool{"people": true}}
		err := checkTables(ctx, "postgres", op)
		require.Error(t, err)

		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(t, errcode.SinkDBLoadError, gnErr.Code)
		assert.Equal(t, []any{"acquisition_facts", "postgres"}, gnErr.Vars)
		assert.ErrorIs(t, gnErr.Err, errMissingTable)
	})

	t.Run("check fails", func(t *testing.T) {
		boom := errors.New("boom")
		op := &fakeOperator{err: boom}
		err := checkTables(ctx, "postgres", op)
		assert.ErrorIs(t, err, boom)
	})
}
