package etl

import (
	"time"

	"github.com/gnames/consetl/pkg/table"
)

// Column names of the input tables.
const (
	ColConsID      = "cons_id"
	ColSource      = "source"
	ColCreateDt    = "create_dt"
	ColModifiedDt  = "modified_dt"
	ColConsEmailID = "cons_email_id"
	ColEmail       = "email"
	ColIsPrimary   = "is_primary"
	ColChapterID   = "chapter_id"
	ColIsUnsub     = "isunsub"
)

// Column names of the output tables.
var (
	PeopleHeader      = []string{"email", "code", "is_unsub", "created_dt", "updated_dt"}
	AcquisitionHeader = []string{"acquisition_date", "acquisitions"}
)

// Constituent is a person-identity record keyed by ConsID.
type Constituent struct {
	ConsID     string
	Source     string
	CreateDt   string
	ModifiedDt string
}

// Email is an address that belongs to a constituent.
type Email struct {
	ConsID      string
	ConsEmailID string
	Email       string
	IsPrimary   bool
}

// Subscription is the state of one email in one chapter.
// IsUnsub keeps the raw cell, it is converted only for joined rows.
type Subscription struct {
	ConsEmailID string
	ChapterID   string
	IsUnsub     string
}

// MergedRow is a primary email joined with its constituent and
// subscription. Every field names the record it comes from.
type MergedRow struct {
	// Email comes from Email.
	Email string
	// Source comes from Constituent.
	Source string
	// IsUnsub is computed from Subscription.IsUnsub, false when no
	// subscription matched.
	IsUnsub bool
	// CreateDt comes from Constituent.
	CreateDt string
	// ModifiedDt comes from Constituent.
	ModifiedDt string
}

// Person is a row of the people roster.
type Person struct {
	Email     string
	Code      string
	IsUnsub   bool
	CreatedDt time.Time
	UpdatedDt time.Time
}

// AcquisitionCount is the number of people created on a calendar date.
type AcquisitionCount struct {
	AcquisitionDate time.Time
	Acquisitions    int
}

// DecodeConstituents converts a cons table into records.
func DecodeConstituents(t *table.Table) ([]Constituent, error) {
	cols, err := requireColumns(t, ColConsID, ColSource, ColCreateDt, ColModifiedDt)
	if err != nil {
		return nil, err
	}

	res := make([]Constituent, 0, t.Len())
	for _, row := range t.Rows {
		res = append(res, Constituent{
			ConsID:     NormalizeKey(row[cols[ColConsID]]),
			Source:     row[cols[ColSource]],
			CreateDt:   row[cols[ColCreateDt]],
			ModifiedDt: row[cols[ColModifiedDt]],
		})
	}
	return res, nil
}

// DecodeEmails converts a cons_email table into records.
func DecodeEmails(t *table.Table) ([]Email, error) {
	cols, err := requireColumns(t, ColConsID, ColConsEmailID, ColEmail, ColIsPrimary)
	if err != nil {
		return nil, err
	}

	res := make([]Email, 0, t.Len())
	for _, row := range t.Rows {
		res = append(res, Email{
			ConsID:      NormalizeKey(row[cols[ColConsID]]),
			ConsEmailID: NormalizeKey(row[cols[ColConsEmailID]]),
			Email:       row[cols[ColEmail]],
			IsPrimary:   IsPrimary(row[cols[ColIsPrimary]]),
		})
	}
	return res, nil
}

// DecodeSubscriptions converts a cons_email_chapter_subscription table
// into records.
func DecodeSubscriptions(t *table.Table) ([]Subscription, error) {
	cols, err := requireColumns(t, ColConsEmailID, ColChapterID, ColIsUnsub)
	if err != nil {
		return nil, err
	}

	res := make([]Subscription, 0, t.Len())
	for _, row := range t.Rows {
		res = append(res, Subscription{
			ConsEmailID: NormalizeKey(row[cols[ColConsEmailID]]),
			ChapterID:   NormalizeKey(row[cols[ColChapterID]]),
			IsUnsub:     row[cols[ColIsUnsub]],
		})
	}
	return res, nil
}

func requireColumns(t *table.Table, columns ...string) (map[string]int, error) {
	name := "<nil>"
	if t != nil {
		name = t.Name
	}
	if missing := t.Missing(columns...); len(missing) > 0 {
		return nil, SchemaError(name, missing)
	}
	cols, _ := t.Columns(columns...)
	return cols, nil
}
