package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Source errors
	SourceUnavailableError
	SourceReadError
	SourceCacheError
	SourceUnknownSchemeError

	// Transform errors
	TransformSchemaError
	TransformParseError

	// Sink errors
	SinkUnknownError
	SinkWriteError
	SinkSQLiteOpenError
	SinkDBLoadError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Run errors
	RunCancelledError
)
