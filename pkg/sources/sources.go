// Package sources defines how raw input tables are obtained.
//
// A source location is a local path, an http(s) URL or an s3://bucket/key
// object. Implementations live in internal/iosources.
package sources

import (
	"context"

	"github.com/gnames/consetl/pkg/table"
)

// Loader reads one tabular dataset from a location.
type Loader interface {
	// Load retrieves and parses the dataset at location. The name is used
	// for the resulting table and in error messages.
	Load(ctx context.Context, name, location string) (*table.Table, error)
}
