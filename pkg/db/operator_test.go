package db_test

import (
	"testing"

	"github.com/gnames/consetl/internal/iodb"
	"github.com/gnames/consetl/pkg/db"
	"github.com/stretchr/testify/assert"
)

// TestOperatorContract verifies that iodb returns a usable db.Operator
// before a connection is made.
func TestOperatorContract(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool())
	assert.NoError(t, op.Close())
}
