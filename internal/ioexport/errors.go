package ioexport

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// GORMConnectionError creates an error for GORM connection failures.
func GORMConnectionError(err error) error {
	msg := "Cannot connect to database with GORM"
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// MigrateSchemaError creates an error for schema migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>How to fix:</em>
  1. Check database user has CREATE and ALTER permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// CollationError creates an error for collation setting failures.
func CollationError(table, column string, err error) error {
	msg := "Cannot set collation on <em>%s.%s</em>"
	vars := []any{table, column}
	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to set collation on %s.%s: %w", table, column, err,
		),
	}
}

// ExportError is returned when records cannot be written.
func ExportError(lexicon string, err error) error {
	msg := "Cannot export lexicon <em>%s</em> to the database"
	vars := []any{lexicon}
	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to export %s: %w", lexicon, err),
	}
}
