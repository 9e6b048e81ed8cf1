// Package ioexport writes lexica to a PostgreSQL database.
package ioexport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/internal/iodb"
	"github.com/gnames/biolexica/pkg/db"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/schema"
	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5"
)

const defaultBatchSize = 50_000

// Exporter copies lexicon records into the literal_mappings table.
type Exporter struct {
	operator  db.Operator
	batchSize int
	progress  bool
}

// Option configures Exporter.
type Option func(*Exporter)

// OptBatchSize sets the number of rows sent per CopyFrom call.
func OptBatchSize(i int) Option {
	return func(e *Exporter) {
		if i > 0 {
			e.batchSize = i
		}
	}
}

// OptProgress enables a progress bar.
func OptProgress(b bool) Option {
	return func(e *Exporter) {
		e.progress = b
	}
}

// New creates an Exporter that uses a connected operator.
func New(op db.Operator, opts ...Option) *Exporter {
	res := &Exporter{operator: op, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Export replaces rows of the lexicon with records. The table is created
// on the first export only. Records that produce the same row ID are
// written once. It returns the number of written rows.
func (e *Exporter) Export(
	ctx context.Context,
	lexicon string,
	lms []literal.LiteralMapping,
) (int, error) {
	start := time.Now()
	table := schema.LiteralMapping{}.TableName()
	exists, err := e.operator.TableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	pool := e.operator.Pool()
	if pool == nil {
		return 0, iodb.NotConnectedError()
	}

	if !exists {
		if err = e.migrate(ctx); err != nil {
			return 0, err
		}
		slog.Info("Created table", "table", table)
	}

	rows := Rows(lexicon, lms)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, ExportError(lexicon, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := fmt.Sprintf("DELETE FROM %s WHERE lexicon = $1", table)
	tag, err := tx.Exec(ctx, q, lexicon)
	if err != nil {
		return 0, ExportError(lexicon, err)
	}
	replaced := tag.RowsAffected()

	var bar *pb.ProgressBar
	if e.progress {
		bar = pb.Full.Start(len(rows))
		bar.Set("prefix", "Exporting: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	var total int
	for i := 0; i < len(rows); i += e.batchSize {
		end := min(i+e.batchSize, len(rows))
		batch := make([][]any, 0, end-i)
		for _, r := range rows[i:end] {
			batch = append(batch, r.Values())
		}

		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			schema.Columns(),
			pgx.CopyFromRows(batch),
		)
		if err != nil {
			return 0, ExportError(lexicon, err)
		}
		total += int(n)
		if bar != nil {
			bar.Add(len(batch))
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, ExportError(lexicon, err)
	}

	slog.Info("Lexicon exported",
		"lexicon", lexicon,
		"rows", humanize.Comma(int64(total)),
		"replaced", humanize.Comma(replaced),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return total, nil
}

// Rows converts records to database rows, dropping rows with repeated IDs.
func Rows(lexicon string, lms []literal.LiteralMapping) []schema.LiteralMapping {
	seen := make(map[string]struct{}, len(lms))
	res := make([]schema.LiteralMapping, 0, len(lms))
	for _, lm := range lms {
		row := schema.NewLiteralMapping(lexicon, lm)
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		res = append(res, row)
	}
	return res
}
