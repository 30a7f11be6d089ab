package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns the column names of a model in field order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Person DDL methods
func (p Person) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (p Person) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_people_email_id ON people(email_id);",
		"CREATE INDEX IF NOT EXISTS idx_people_created_dt ON people(created_dt);",
	}
}

func (p Person) TableName() string {
	return "people"
}

// AcquisitionFact DDL methods
func (a AcquisitionFact) TableDDL() string {
	return generateDDL(a, a.TableName())
}

func (a AcquisitionFact) IndexDDL() []string {
	return []string{}
}

func (a AcquisitionFact) TableName() string {
	return "acquisition_facts"
}

// Run DDL methods
func (r Run) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r Run) IndexDDL() []string {
	return []string{}
}

func (r Run) TableName() string {
	return "etl_runs"
}
