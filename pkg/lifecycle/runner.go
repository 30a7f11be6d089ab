package lifecycle

import (
	"context"

	"github.com/gnames/consetl/pkg/etl"
)

// Runner executes the whole ETL: it loads the three source tables,
// transforms them and writes results to sinks.
type Runner interface {
	// Transform loads sources and runs the pipeline without writing
	// anything.
	Transform(ctx context.Context) (*etl.Result, error)

	// Run transforms data and writes the result to every sink. Sinks are
	// not touched if loading or transformation fails.
	Run(ctx context.Context) (*etl.Result, error)
}
