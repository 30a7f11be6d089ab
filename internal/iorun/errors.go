package iorun

import (
	"fmt"

	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/gn"
)

// CancelledError creates an error for a run interrupted by its context.
func CancelledError(err error) error {
	msg := "Run was cancelled, no output was written"

	return &gn.Error{
		Code: errcode.RunCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("run cancelled: %w", err),
	}
}
