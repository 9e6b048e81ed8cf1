package assembler

import (
	"context"

	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/ent/mapping"
	"github.com/gnames/biolexica/pkg/lexconf"
)

// TermSource reads literal mappings of one input.
//
// Implementations return all terms of the source when the input has no
// ancestors, and only descendants of the ancestors (inclusive) otherwise.
// Failures to reach or read the source are reported as SourceUnavailable
// errors.
type TermSource interface {
	Fetch(ctx context.Context, inp lexconf.Input) ([]literal.LiteralMapping, error)
}

// Oracle produces priority pairs from an equivalence configuration.
// The pairs it returns are expected to form a closed projection.
type Oracle interface {
	Resolve(ctx context.Context, eq *lexconf.Equivalence) ([]mapping.Pair, error)
}

// Recorder receives intermediate and final records of an assembly.
// It is used for audit files and does not change the records.
type Recorder interface {
	// Raw is called with all fetched records before rewriting.
	Raw(ctx context.Context, lms []literal.LiteralMapping) error

	// Processed is called with the final records.
	Processed(ctx context.Context, lms []literal.LiteralMapping) error
}
