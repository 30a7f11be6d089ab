package etl

import (
	"fmt"
	"strings"

	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/gn"
)

// SchemaError creates an error for an input table that lacks columns
// required by the pipeline.
func SchemaError(tableName string, missing []string) error {
	msg := `Table <em>%s</em> misses required columns: <em>%s</em>

<em>How to fix:</em>
  1. Check the header row of the source file
  2. Verify the source location points to the right table`

	cols := strings.Join(missing, ", ")
	vars := []any{tableName, cols}

	return &gn.Error{
		Code: errcode.TransformSchemaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("table %s: missing columns [%s]",
			tableName, cols),
	}
}

// ParseError creates an error for a value that cannot be converted to its
// target type. Row numbers start at 1 and refer to the people rows.
func ParseError(row int, column, value string, err error) error {
	msg := `Cannot parse <em>%s</em> value '%s' (people row %d)`
	vars := []any{column, value, row}

	return &gn.Error{
		Code: errcode.TransformParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("row %d: cannot parse %s %q: %w",
			row, column, value, err),
	}
}
