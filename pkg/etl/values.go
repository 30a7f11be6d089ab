package etl

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DateTimeFormat is the layout used to write date-time values.
const DateTimeFormat = "2006-01-02 15:04:05"

// DateFormat is the layout used to write calendar dates.
const DateFormat = "2006-01-02"

// layouts are tried before falling back to cast, which knows most of the
// standard library layouts.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02T15:04:05",
	"Mon, 2006-01-02 15:04:05",
	"Mon, 2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05.999999999",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

var errEmptyDate = errors.New("empty date-time value")

// NormalizeKey brings a join key to a canonical form. Surrounding spaces
// are removed and integral numbers lose their fractional part, so
// "10", " 10 " and "10.0" compare equal.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// IsPrimary reports whether an is_primary cell equals 1.
// Boolean literals are accepted, anything else is false.
func IsPrimary(s string) bool {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f == 1
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return false
}

// IsUnsub converts an isunsub cell to a boolean. An empty cell means the
// value is missing and counts as false. Numbers are true when nonzero,
// boolean literals keep their value, any other text is true.
func IsUnsub(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) {
			return false
		}
		return f != 0
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return true
}

// ParseDateTime parses a date-time cell. Values without a zone are
// interpreted as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return cast.ToTimeInDefaultLocationE(s, time.UTC)
}

// DateOf drops the time-of-day part of a date-time, keeping the calendar
// date as it reads in the value's own zone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
