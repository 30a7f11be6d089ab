package iosources

import (
	"fmt"

	"github.com/gnames/consetl/pkg/errcode"
	"github.com/gnames/gn"
)

// SourceUnavailableError creates an error for a source that cannot be
// retrieved from its location.
func SourceUnavailableError(name, location string, err error) error {
	msg := `Cannot retrieve <em>%s</em> table

<em>Location:</em> %s

<em>Possible causes:</em>
  - File does not exist or the URL is wrong
  - Network is not available
  - Missing permissions for the S3 bucket

<em>How to fix:</em>
  1. Check the location in config.yaml or command line flags
  2. Try to open the location manually`

	vars := []any{name, location}

	return &gn.Error{
		Code: errcode.SourceUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s at %s is unavailable: %w", name, location, err),
	}
}

// SourceReadError creates an error for a retrieved source that cannot be
// parsed as CSV.
func SourceReadError(name, path string, err error) error {
	msg := `Cannot read <em>%s</em> table from <em>%s</em>`
	vars := []any{name, path}

	return &gn.Error{
		Code: errcode.SourceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s as CSV: %w", path, err),
	}
}

// SourceCacheError creates an error for problems with the download
// cache directory.
func SourceCacheError(dir string, err error) error {
	msg := `Cannot prepare sources cache <em>%s</em>

<em>How to fix:</em>
  1. Check permissions: <em>ls -ld %s</em>
  2. Remove the directory and try again`

	vars := []any{dir, dir}

	return &gn.Error{
		Code: errcode.SourceCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("sources cache %s: %w", dir, err),
	}
}

// UnknownSchemeError creates an error for a location with a scheme that
// is not supported.
func UnknownSchemeError(name, location string, err error) error {
	msg := `Location of <em>%s</em> table has unsupported scheme: %s

<em>How to fix:</em>
  Use a local path, an http(s) URL or s3://bucket/key`

	vars := []any{name, location}

	return &gn.Error{
		Code: errcode.SourceUnknownSchemeError,
		Msg:  msg,
		Vars: vars,
		Err:  err,
	}
}
