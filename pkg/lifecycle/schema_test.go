package lifecycle_test

import (
	"context"
	"testing"

	"github.com/gnames/consetl/internal/iodb"
	"github.com/gnames/consetl/internal/ioschema"
	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/consetl/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchemaManagerContract ensures that the ioschema manager satisfies
// lifecycle.SchemaManager and refuses to work without a connection.
func TestSchemaManagerContract(t *testing.T) {
	var sm lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())

	err := sm.Create(context.Background())
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
