package ioexport

import (
	"context"
	"fmt"

	"github.com/gnames/biolexica/internal/iodb"
	"github.com/gnames/biolexica/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// migrate creates the schema with GORM AutoMigrate and sets "C" collation
// on text columns.
func (e *Exporter) migrate(ctx context.Context) error {
	pool := e.operator.Pool()
	if pool == nil {
		return iodb.NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return e.setCollation(ctx)
}

// setCollation makes sorting and comparison of texts and CURIEs bytewise.
func (e *Exporter) setCollation(ctx context.Context) error {
	pool := e.operator.Pool()

	type columnDef struct {
		table, column, typ string
	}

	table := schema.LiteralMapping{}.TableName()
	columns := []columnDef{
		{table, "text", "TEXT"},
		{table, "curie", "VARCHAR(255)"},
	}

	for _, col := range columns {
		q := formatCollationSQL(col.table, col.column, col.typ)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	return nil
}

func formatCollationSQL(table, column, typ string) string {
	return fmt.Sprintf(
		`ALTER TABLE %s ALTER COLUMN %s TYPE %s COLLATE "C"`,
		table, column, typ,
	)
}
