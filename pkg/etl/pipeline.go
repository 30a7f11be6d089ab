// Package etl turns constituents, their emails and chapter subscriptions
// into a people roster and a daily acquisitions table.
//
// The package is pure: it works on in-memory tables and does not read or
// write anything. Steps can be called one by one or all together with Run.
package etl

import (
	"slices"
	"strconv"
	"time"

	"github.com/gnames/consetl/pkg/table"
)

// Input holds the three raw tables read from sources.
type Input struct {
	Constituents  *table.Table
	Emails        *table.Table
	Subscriptions *table.Table
}

// Result holds both output tables and statistics about the run.
type Result struct {
	People       []Person
	Acquisitions []AcquisitionCount
	Stats        Stats
}

// Stats describe how many rows survived each step.
type Stats struct {
	Constituents         int
	Emails               int
	Subscriptions        int
	ChapterSubscriptions int
	PrimaryRows          int
	People               int
	Unsubscribed         int
	AcquisitionDates     int
	ChapterID            int
}

// Run executes the whole pipeline for one chapter. It either returns both
// tables or an error, never a partial result.
func Run(in Input, chapterID int) (*Result, error) {
	cons, err := DecodeConstituents(in.Constituents)
	if err != nil {
		return nil, err
	}
	emails, err := DecodeEmails(in.Emails)
	if err != nil {
		return nil, err
	}
	subs, err := DecodeSubscriptions(in.Subscriptions)
	if err != nil {
		return nil, err
	}

	chapterSubs := FilterSubscriptions(subs, chapterID)
	merged := MergePeople(cons, emails, chapterSubs)
	people, err := CleanPeople(merged)
	if err != nil {
		return nil, err
	}
	acq := AcquisitionCounts(people)

	stats := Stats{
		Constituents:         len(cons),
		Emails:               len(emails),
		Subscriptions:        len(subs),
		ChapterSubscriptions: len(chapterSubs),
		PrimaryRows:          len(merged),
		People:               len(people),
		AcquisitionDates:     len(acq),
		ChapterID:            chapterID,
	}
	for _, v := range people {
		if v.IsUnsub {
			stats.Unsubscribed++
		}
	}

	res := Result{
		People:       people,
		Acquisitions: acq,
		Stats:        stats,
	}
	return &res, nil
}

// FilterSubscriptions keeps subscriptions of the given chapter.
// An empty result is valid: then nobody is marked as unsubscribed.
func FilterSubscriptions(subs []Subscription, chapterID int) []Subscription {
	key := strconv.Itoa(chapterID)
	res := make([]Subscription, 0, len(subs))
	for _, v := range subs {
		if v.ChapterID == key {
			res = append(res, v)
		}
	}
	return res
}

// MergePeople joins constituents with their primary emails and marks
// emails that unsubscribed.
//
// Constituents and emails are inner-joined on cons_id, so constituents
// without emails and emails without constituents disappear. Only primary
// emails are kept; a constituent with several primary emails gives one
// row per primary email. Subscriptions are left-joined on cons_email_id,
// an email with several matching subscriptions gives one row per match.
// Output order follows constituents, then emails, then subscriptions.
func MergePeople(
	cons []Constituent,
	emails []Email,
	subs []Subscription,
) []MergedRow {
	emailsByCons := make(map[string][]Email)
	for _, v := range emails {
		emailsByCons[v.ConsID] = append(emailsByCons[v.ConsID], v)
	}

	subsByEmail := make(map[string][]Subscription)
	for _, v := range subs {
		subsByEmail[v.ConsEmailID] = append(subsByEmail[v.ConsEmailID], v)
	}

	var res []MergedRow
	for _, c := range cons {
		for _, e := range emailsByCons[c.ConsID] {
			if !e.IsPrimary {
				continue
			}
			row := MergedRow{
				Email:      e.Email,
				Source:     c.Source,
				CreateDt:   c.CreateDt,
				ModifiedDt: c.ModifiedDt,
			}

			matched := subsByEmail[e.ConsEmailID]
			if len(matched) == 0 {
				res = append(res, row)
				continue
			}
			for _, s := range matched {
				row.IsUnsub = IsUnsub(s.IsUnsub)
				res = append(res, row)
			}
		}
	}
	return res
}

// CleanPeople renames merged rows to people and parses their dates.
// The first value that cannot be parsed aborts the conversion.
func CleanPeople(rows []MergedRow) ([]Person, error) {
	res := make([]Person, 0, len(rows))
	for i, v := range rows {
		created, err := ParseDateTime(v.CreateDt)
		if err != nil {
			return nil, ParseError(i+1, "created_dt", v.CreateDt, err)
		}
		updated, err := ParseDateTime(v.ModifiedDt)
		if err != nil {
			return nil, ParseError(i+1, "updated_dt", v.ModifiedDt, err)
		}
		res = append(res, Person{
			Email:     v.Email,
			Code:      v.Source,
			IsUnsub:   v.IsUnsub,
			CreatedDt: created,
			UpdatedDt: updated,
		})
	}
	return res, nil
}

// AcquisitionCounts counts people by the calendar date of their creation.
// Dates come in ascending order, dates without people are absent.
func AcquisitionCounts(people []Person) []AcquisitionCount {
	counts := make(map[int64]int)
	for _, v := range people {
		counts[DateOf(v.CreatedDt).Unix()]++
	}

	days := make([]int64, 0, len(counts))
	for k := range counts {
		days = append(days, k)
	}
	slices.Sort(days)

	res := make([]AcquisitionCount, 0, len(days))
	for _, v := range days {
		res = append(res, AcquisitionCount{
			AcquisitionDate: time.Unix(v, 0).UTC(),
			Acquisitions:    counts[v],
		})
	}
	return res
}
