package iosink

import (
	"strconv"
	"strings"
	"time"

	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/gnuuid"
)

// FormatBool renders booleans the way pandas writes them to CSV.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// dateTimeZoneFormat keeps the zone offset of values that are not in UTC.
const dateTimeZoneFormat = etl.DateTimeFormat + "-07:00"

// FormatDateTime renders a date-time without zone when it is in UTC and
// with its offset otherwise, the way pandas writes timestamps.
func FormatDateTime(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format(etl.DateTimeFormat)
	}
	return t.Format(dateTimeZoneFormat)
}

// PeopleRecords converts people to CSV records without a header.
func PeopleRecords(people []etl.Person) [][]string {
	res := make([][]string, 0, len(people))
	for _, v := range people {
		res = append(res, []string{
			v.Email,
			v.Code,
			FormatBool(v.IsUnsub),
			FormatDateTime(v.CreatedDt),
			FormatDateTime(v.UpdatedDt),
		})
	}
	return res
}

// AcquisitionRecords converts acquisition counts to CSV records without
// a header.
func AcquisitionRecords(acq []etl.AcquisitionCount) [][]string {
	res := make([][]string, 0, len(acq))
	for _, v := range acq {
		res = append(res, []string{
			v.AcquisitionDate.Format(etl.DateFormat),
			strconv.Itoa(v.Acquisitions),
		})
	}
	return res
}

// EmailID returns a UUIDv5 for an email address. Case and surrounding
// spaces are ignored.
func EmailID(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	return gnuuid.New(email).String()
}
