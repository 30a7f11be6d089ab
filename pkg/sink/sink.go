// Package sink defines destinations for pipeline results.
package sink

import (
	"context"

	"github.com/gnames/consetl/pkg/etl"
)

// Sink persists the people roster and acquisition facts.
// A sink must leave its destination unchanged when Write fails.
type Sink interface {
	// Name returns the name of the sink as used in configuration.
	Name() string

	// Write stores both result tables.
	Write(ctx context.Context, res *etl.Result) error
}
