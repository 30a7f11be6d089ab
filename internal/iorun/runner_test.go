package iorun_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/consetl/internal/iorun"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/consetl/pkg/sink"
	"github.com/gnames/consetl/pkg/table"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var data = map[string]*table.Table{
	"cons.csv": table.New("cons",
		[]string{"cons_id", "source", "create_dt", "modified_dt"},
		[][]string{
			{"1", "web", "2020-01-01", "2020-01-02"},
			{"2", "ad", "2020-01-01", "2020-01-02"},
		},
	),
	"cons_email.csv": table.New("cons_email",
		[]string{"cons_id", "cons_email_id", "email", "is_primary"},
		[][]string{
			{"1", "10", "a@x.com", "1"},
			{"2", "20", "b@x.com", "1"},
		},
	),
	"subs.csv": table.New("cons_email_chapter_subscription",
		[]string{"cons_email_id", "chapter_id", "isunsub"},
		[][]string{{"10", "1", "1"}},
	),
}

type fakeLoader struct {
	calls []string
	fail  string
}

func (f *fakeLoader) Load(
	_ context.Context,
	name, location string,
) (*table.Table, error) {
	f.calls = append(f.calls, name)
	if location == f.fail {
		return nil, &gn.Error{
			Code: errcode.SourceUnavailableError,
			Err:  errors.New("not found"),
		}
	}
	return data[location], nil
}

type fakeSink struct {
	name   string
	err    error
	result *etl.Result
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(_ context.Context, res *etl.Result) error {
	if f.err != nil {
		return f.err
	}
	f.result = res
	return nil
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptSourcesConstituents("cons.csv"),
		config.OptSourcesEmails("cons_email.csv"),
		config.OptSourcesSubscriptions("subs.csv"),
		config.OptRunID("test-run"),
	})
	return cfg
}

func TestRun(t *testing.T) {
	loader := &fakeLoader{}
	s1 := &fakeSink{name: "csv"}
	s2 := &fakeSink{name: "sqlite"}

	r := iorun.New(testConfig(), loader, []sink.Sink{s1, s2})
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"cons", "cons_email", "cons_email_chapter_subscription"},
		loader.calls,
	)
	require.Len(t, res.People, 2)
	assert.True(t, res.People[0].IsUnsub)
	assert.False(t, res.People[1].IsUnsub)
	assert.Equal(t, []etl.AcquisitionCount{
		{AcquisitionDate: etl.DateOf(res.People[0].CreatedDt), Acquisitions: 2},
	}, res.Acquisitions)

	assert.Same(t, res, s1.result)
	assert.Same(t, res, s2.result)
}

func TestRunSourceUnavailable(t *testing.T) {
	loader := &fakeLoader{fail: "cons_email.csv"}
	s := &fakeSink{name: "csv"}

	r := iorun.New(testConfig(), loader, []sink.Sink{s})
	res, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceUnavailableError, gnErr.Code)
	assert.Equal(t, []string{"cons", "cons_email"}, loader.calls,
		"loading stops at the first failure")
	assert.Nil(t, s.result, "sinks are not called")
}

func TestRunSchemaErrorWritesNothing(t *testing.T) {
	cfg := testConfig()
	// subscriptions table used as emails has wrong columns
	cfg.Update([]config.Option{config.OptSourcesEmails("subs.csv")})
	s := &fakeSink{name: "csv"}

	_, err := iorun.New(cfg, &fakeLoader{}, []sink.Sink{s}).Run(context.Background())
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.TransformSchemaError, gnErr.Code)
	assert.Nil(t, s.result)
}

func TestRunSinkFails(t *testing.T) {
	s1 := &fakeSink{name: "csv"}
	s2 := &fakeSink{name: "postgres", err: assert.AnError}
	s3 := &fakeSink{name: "sqlite"}

	r := iorun.New(testConfig(), &fakeLoader{}, []sink.Sink{s1, s2, s3})
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotNil(t, s1.result)
	assert.Nil(t, s3.result)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := iorun.New(testConfig(), &fakeLoader{}, nil).Run(ctx)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.RunCancelledError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)
}

func TestTransform(t *testing.T) {
	cfg := testConfig()
	cfg.Update([]config.Option{config.OptSourcesChapterID(2)})

	res, err := iorun.New(cfg, &fakeLoader{}, nil).Transform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.ChapterID)
	assert.Equal(t, 0, res.Stats.Unsubscribed)
}
