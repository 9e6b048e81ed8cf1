// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"os"
	"testing"

	"github.com/gnames/biolexica/pkg/config"
)

// TestDatabaseEnv names the environment variable with the name of a
// database for integration tests. Tests that need PostgreSQL are skipped
// when it is empty, so they never touch a production database.
const TestDatabaseEnv = "BIOLEXICA_TEST_DB"

// DatabaseConfig returns connection settings for integration tests or
// skips the test. Other settings come from BIOLEXICA_DATABASE_* variables
// or defaults.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.DatabaseConfig(t)
//	    // ... use cfg for database operations
//	}
func DatabaseConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	name := os.Getenv(TestDatabaseEnv)
	if testing.Short() || name == "" {
		t.Skipf("%s is not set, skipping integration test", TestDatabaseEnv)
	}

	cfg := config.New()
	var opts []config.Option
	if s := os.Getenv("BIOLEXICA_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("BIOLEXICA_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("BIOLEXICA_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(name))
	cfg.Update(opts)

	return &cfg.Database
}
