package iosink_test

import (
	"testing"
	"time"

	"github.com/gnames/consetl/internal/iosink"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "True", iosink.FormatBool(true))
	assert.Equal(t, "False", iosink.FormatBool(false))
}

func TestRecords(t *testing.T) {
	res := testResult()

	people := iosink.PeopleRecords(res.People)
	assert.Equal(t,
		[]string{"a@x.com", "web", "True", "2020-01-01 10:11:12", "2020-02-03 04:05:06"},
		people[0],
	)

	acq := iosink.AcquisitionRecords(res.Acquisitions)
	assert.Equal(t, [][]string{{"2020-01-01", "2"}}, acq)
}

func TestFormatDateTime(t *testing.T) {
	utc := time.Date(2020, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2020-01-01 23:30:00", iosink.FormatDateTime(utc))

	est := time.Date(2020, 1, 1, 23, 30, 0, 0, time.FixedZone("", -5*3600))
	assert.Equal(t, "2020-01-01 23:30:00-05:00", iosink.FormatDateTime(est))

	parsed, err := etl.ParseDateTime("2020-01-01T23:30:00-05:00")
	require.NoError(t, err)
	out := iosink.FormatDateTime(parsed)
	assert.Equal(t, "2020-01-01 23:30:00-05:00", out)

	back, err := etl.ParseDateTime(out)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(back), "offset survives a round trip")
}

func TestPeopleRecordsKeepOffset(t *testing.T) {
	est := time.FixedZone("", -5*3600)
	people := []etl.Person{{
		Email:     "a@x.com",
		Code:      "web",
		CreatedDt: time.Date(2020, 1, 1, 23, 30, 0, 0, est),
		UpdatedDt: time.Date(2020, 1, 2, 8, 0, 0, 0, time.UTC),
	}}
	res := iosink.PeopleRecords(people)
	assert.Equal(t,
		[]string{"a@x.com", "web", "False", "2020-01-01 23:30:00-05:00", "2020-01-02 08:00:00"},
		res[0],
	)
}

func TestEmailID(t *testing.T) {
	id := iosink.EmailID("a@x.com")
	assert.Len(t, id, 36)
	assert.Equal(t, id, iosink.EmailID("  A@X.COM"))
	assert.NotEqual(t, id, iosink.EmailID("b@x.com"))
}
