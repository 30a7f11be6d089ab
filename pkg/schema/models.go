// Package schema provides database models for the consetl output tables.
// The same models drive GORM AutoMigrate for PostgreSQL and generated DDL
// for SQLite.
package schema

import (
	"time"
)

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Person is a row of the people roster.
type Person struct {
	// ID is the position of the row in the roster, starting at 1.
	ID int `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`

	// EmailID is a UUIDv5 generated from the lowercased email. Several
	// rows can share it.
	EmailID string `db:"email_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`

	// Email is the primary email address of a constituent.
	Email string `db:"email" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`

	// Code is the source code of the constituent.
	Code string `db:"code" ddl:"TEXT" gorm:"type:varchar(255)"`

	// IsUnsub is true when the email unsubscribed from the chapter.
	IsUnsub bool `db:"is_unsub" ddl:"BOOLEAN NOT NULL DEFAULT 0" gorm:"not null;default:false"`

	// CreatedDt is when the constituent was created.
	CreatedDt time.Time `db:"created_dt" ddl:"TEXT NOT NULL" gorm:"type:timestamptz;not null;index"`

	// UpdatedDt is when the constituent was last modified.
	UpdatedDt time.Time `db:"updated_dt" ddl:"TEXT NOT NULL" gorm:"type:timestamptz;not null"`
}

// AcquisitionFact is the number of people created on a date.
type AcquisitionFact struct {
	AcquisitionDate time.Time `db:"acquisition_date" ddl:"TEXT PRIMARY KEY" gorm:"type:date;primaryKey"`
	Acquisitions    int       `db:"acquisitions" ddl:"INTEGER NOT NULL" gorm:"not null"`
}

// Run records one execution of the pipeline that reached a database.
type Run struct {
	// ID is the run UUID.
	ID string `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"type:uuid;primaryKey"`

	// ChapterID is the chapter used to filter subscriptions.
	ChapterID int `db:"chapter_id" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// People is the number of rows in the roster.
	People int `db:"people" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// Unsubscribed is the number of unsubscribed people.
	Unsubscribed int `db:"unsubscribed" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// AcquisitionDates is the number of rows in acquisition facts.
	AcquisitionDates int `db:"acquisition_dates" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// LoadedAt is when the data were written.
	LoadedAt time.Time `db:"loaded_at" ddl:"TEXT NOT NULL" gorm:"type:timestamptz;not null"`
}
