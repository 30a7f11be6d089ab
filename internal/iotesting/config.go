// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"testing"

	"github.com/gnames/consetl/pkg/config"
	"github.com/spf13/cast"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "consetl_test"

	// EnvTestDB enables PostgreSQL integration tests when set to a true
	// value.
	EnvTestDB = "CONSETL_TEST_DB"
)

// SkipWithoutDB skips integration tests in short mode or when
// CONSETL_TEST_DB is not set to a true value.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    iotesting.SkipWithoutDB(t)
//	    cfg := iotesting.GetTestConfig(t)
//	    // ... use cfg for database operations
//	}
func SkipWithoutDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if !cast.ToBool(os.Getenv(EnvTestDB)) {
		t.Skipf("Skipping integration test, set %s=true to run it", EnvTestDB)
	}
}

// GetTestConfig returns a configuration suitable for tests. It uses
// defaults, a temporary home directory and CONSETL_DATABASE_* variables
// for connection settings. The database name is always TestDatabaseName.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	opts := []config.Option{config.OptHomeDir(t.TempDir())}
	if v := os.Getenv("CONSETL_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("CONSETL_DATABASE_PORT"); v != "" {
		opts = append(opts, config.OptDatabasePort(cast.ToInt(v)))
	}
	if v := os.Getenv("CONSETL_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("CONSETL_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig(t *testing.T) *config.DatabaseConfig {
	cfg := GetTestConfig(t)
	return &cfg.Database
}
