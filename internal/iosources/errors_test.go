package iosources_test

import (
	"errors"
	"testing"

	"github.com/gnames/consetl/internal/iosources"
	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourceUnavailableError verifies error structure.
func TestSourceUnavailableError(t *testing.T) {
	location := "https://example.org/cons.csv"
	originalErr := errors.New("connection refused")

	err := iosources.SourceUnavailableError("cons", location, originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SourceUnavailableError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 2)
	assert.Equal(t, "cons", gnErr.Vars[0])
	assert.Equal(t, location, gnErr.Vars[1])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestSourceReadError(t *testing.T) {
	originalErr := errors.New("bare quote")

	err := iosources.SourceReadError("cons_email", "/tmp/cons_email.csv", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceReadError, gnErr.Code)
	assert.Equal(t, "/tmp/cons_email.csv", gnErr.Vars[1])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestSourceCacheError(t *testing.T) {
	originalErr := errors.New("permission denied")

	err := iosources.SourceCacheError("/cache", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceCacheError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 2)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
