// Package assembler consolidates literal mappings from several term
// sources into a single lexicon.
//
// Assembly runs in fixed steps: fetch every input, append extra records,
// record raw records, obtain and validate priority pairs, rewrite
// identifiers one hop, drop excluded identifiers, record processed
// records. Nothing is deduplicated.
package assembler

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/ent/mapping"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// Assembler builds lexica using registered term sources.
type Assembler struct {
	sources         map[lexconf.Processor]TermSource
	oracle          Oracle
	recorder        Recorder
	jobsNumber      int
	continueOnError bool
}

// Option configures an Assembler.
type Option func(*Assembler)

// OptTermSource registers an adapter for a processor.
func OptTermSource(p lexconf.Processor, ts TermSource) Option {
	return func(a *Assembler) {
		if ts != nil {
			a.sources[p] = ts
		}
	}
}

// OptOracle sets the equivalence oracle.
func OptOracle(o Oracle) Option {
	return func(a *Assembler) {
		a.oracle = o
	}
}

// OptRecorder sets the audit recorder.
func OptRecorder(r Recorder) Option {
	return func(a *Assembler) {
		a.recorder = r
	}
}

// OptJobsNumber limits how many inputs are fetched at the same time.
func OptJobsNumber(i int) Option {
	return func(a *Assembler) {
		if i > 0 {
			a.jobsNumber = i
		}
	}
}

// OptContinueOnError makes failing inputs to be skipped instead of
// aborting the assembly.
func OptContinueOnError(b bool) Option {
	return func(a *Assembler) {
		a.continueOnError = b
	}
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	res := &Assembler{
		sources:    make(map[lexconf.Processor]TermSource),
		jobsNumber: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Assemble builds a lexicon according to conf. Extra records are appended
// after fetched ones, extra pairs are added to pairs from the oracle.
//
// The result depends only on the inputs: records keep the order of
// configuration inputs, and the rewrite does not depend on pair order.
func (a *Assembler) Assemble(
	ctx context.Context,
	conf lexconf.Configuration,
	extraRecords []literal.LiteralMapping,
	extraPairs []mapping.Pair,
) ([]literal.LiteralMapping, error) {
	start := time.Now()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	for _, inp := range conf.Inputs {
		if _, ok := a.sources[inp.Processor]; !ok {
			return nil, lexconf.UnknownProcessorError(
				string(inp.Processor), inp.Source,
			)
		}
	}

	lms, err := a.fetchAll(ctx, conf.Inputs)
	if err != nil {
		return nil, err
	}
	lms = append(lms, extraRecords...)
	rawCount := len(lms)

	if a.recorder != nil {
		if err = a.recorder.Raw(ctx, lms); err != nil {
			return nil, err
		}
	}

	pairs, err := a.pairs(ctx, conf.Equivalence)
	if err != nil {
		return nil, err
	}
	pairs = append(pairs, extraPairs...)

	proj, err := mapping.NewProjection(pairs)
	if err != nil {
		return nil, err
	}

	lms, rewritten := proj.Remap(lms)
	lms = Exclude(lms, conf.ExcludeSet())

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if a.recorder != nil {
		if err = a.recorder.Processed(ctx, lms); err != nil {
			return nil, err
		}
	}

	slog.Info("Lexicon assembled",
		"name", conf.Name,
		"raw", rawCount,
		"pairs", proj.Len(),
		"rewritten", rewritten,
		"excluded", rawCount-len(lms),
		"records", len(lms),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return lms, nil
}

// Exclude returns records whose identifiers are not in the set.
func Exclude(
	lms []literal.LiteralMapping,
	excludes map[string]struct{},
) []literal.LiteralMapping {
	if len(excludes) == 0 {
		return lms
	}
	res := make([]literal.LiteralMapping, 0, len(lms))
	for _, lm := range lms {
		if _, ok := excludes[lm.Reference.Curie()]; ok {
			continue
		}
		res = append(res, lm)
	}
	return res
}

func (a *Assembler) fetchAll(
	ctx context.Context,
	inputs []lexconf.Input,
) ([]literal.LiteralMapping, error) {
	results := make([][]literal.LiteralMapping, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobsNumber)
	for i, inp := range inputs {
		g.Go(func() error {
			lms, err := a.fetch(ctx, inp)
			if err == nil {
				results[i] = lms
				return nil
			}
			if a.continueOnError && !errors.Is(err, context.Canceled) {
				slog.Warn("Skipping term source",
					"processor", inp.Processor,
					"source", inp.Source,
					"error", err,
				)
				gn.Warn("Skipping term source <em>%s</em>", inp.Source)
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var count int
	for _, v := range results {
		count += len(v)
	}
	res := make([]literal.LiteralMapping, 0, count)
	for _, v := range results {
		res = append(res, v...)
	}
	return res, nil
}

func (a *Assembler) fetch(
	ctx context.Context,
	inp lexconf.Input,
) ([]literal.LiteralMapping, error) {
	start := time.Now()
	lms, err := a.sources[inp.Processor].Fetch(ctx, inp)
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, SourceUnavailableError(inp, err)
	}

	res := make([]literal.LiteralMapping, 0, len(lms))
	for _, lm := range lms {
		if err := lm.Validate(); err != nil {
			slog.Debug("Dropping invalid record",
				"source", inp.Source, "error", err)
			continue
		}
		res = append(res, lm)
	}

	slog.Info("Term source fetched",
		"processor", inp.Processor,
		"source", inp.Source,
		"records", len(res),
		"dropped", len(lms)-len(res),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (a *Assembler) pairs(
	ctx context.Context,
	eq *lexconf.Equivalence,
) ([]mapping.Pair, error) {
	if eq == nil {
		return nil, nil
	}
	if a.oracle == nil {
		return nil, EquivalenceResolveError(
			eq.Name, errors.New("no equivalence oracle is set"),
		)
	}
	res, err := a.oracle.Resolve(ctx, eq)
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return nil, err
		}
		return nil, EquivalenceResolveError(eq.Name, err)
	}
	return res, nil
}
