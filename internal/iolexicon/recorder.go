package iolexicon

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/pkg/ent/literal"
)

// Recorder saves assembly results to files. Empty paths are skipped.
type Recorder struct {
	// OutputPath receives processed records.
	OutputPath string

	// RawPath receives records before identifiers are rewritten.
	RawPath string

	// GildaPath receives processed records as Gilda terms.
	GildaPath string

	// SummaryPath receives a JSON summary of processed records.
	SummaryPath string
}

// Raw implements assembler.Recorder.
func (r Recorder) Raw(_ context.Context, lms []literal.LiteralMapping) error {
	if r.RawPath == "" {
		return nil
	}
	if err := WriteFile(r.RawPath, lms); err != nil {
		return err
	}
	logWritten("raw", r.RawPath, len(lms))
	return nil
}

// Processed implements assembler.Recorder.
func (r Recorder) Processed(
	ctx context.Context,
	lms []literal.LiteralMapping,
) error {
	if r.OutputPath != "" {
		if err := WriteFile(r.OutputPath, lms); err != nil {
			return err
		}
		logWritten("lexicon", r.OutputPath, len(lms))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if r.GildaPath != "" {
		if err := WriteGildaFile(r.GildaPath, lms); err != nil {
			return err
		}
		logWritten("gilda", r.GildaPath, len(lms))
	}

	if r.SummaryPath != "" {
		if err := WriteSummary(r.SummaryPath, literal.Summarize(lms)); err != nil {
			return err
		}
		slog.Info("Summary written", "path", r.SummaryPath)
	}
	return nil
}

func logWritten(kind, path string, n int) {
	slog.Info("Records written",
		"kind", kind,
		"path", path,
		"records", humanize.Comma(int64(n)),
	)
}
