// Package lifecycle contains contracts for components that prepare a
// database before data are written to it.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate, so creation is idempotent and safe to run
// before every load.
type SchemaManager interface {
	// Create creates or updates the output tables.
	Create(ctx context.Context) error
}
