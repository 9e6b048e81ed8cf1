package iotermsource

import (
	"context"
	"errors"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/lexconf"
)

// SSSLM reads lexicon TSV files.
type SSSLM struct {
	fetcher *iofetch.Fetcher
}

// NewSSSLM creates an SSSLM term source.
func NewSSSLM(f *iofetch.Fetcher) *SSSLM {
	return &SSSLM{fetcher: f}
}

// Fetch implements assembler.TermSource. The source of an input is a
// path or a URL of the file. Records without a source label get the file
// name of the input.
func (s *SSSLM) Fetch(
	ctx context.Context,
	inp lexconf.Input,
) ([]literal.LiteralMapping, error) {
	if len(inp.Ancestors) > 0 {
		return nil, lexconf.InvalidError("ancestors",
			"tabular sources have no hierarchy")
	}
	path, err := location(ctx, s.fetcher, inp, inp.Source)
	if err != nil {
		return nil, err
	}

	f, err := iofetch.Open(path)
	if err != nil {
		return nil, FormatError(inp, err)
	}
	defer f.Close()

	var res []literal.LiteralMapping
	err = iolexicon.NewReader(f).Each(func(lm literal.LiteralMapping) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		remapPrefix(inp, &lm)
		if lm.Source == "" {
			lm.Source = sourceLabel(inp.Source)
		}
		res = append(res, lm)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, FormatError(inp, err)
	}
	return res, nil
}

// Gilda reads Gilda terms files.
type Gilda struct {
	fetcher *iofetch.Fetcher
}

// NewGilda creates a Gilda term source.
func NewGilda(f *iofetch.Fetcher) *Gilda {
	return &Gilda{fetcher: f}
}

// Fetch implements assembler.TermSource.
func (g *Gilda) Fetch(
	ctx context.Context,
	inp lexconf.Input,
) ([]literal.LiteralMapping, error) {
	if len(inp.Ancestors) > 0 {
		return nil, lexconf.InvalidError("ancestors",
			"tabular sources have no hierarchy")
	}
	path, err := location(ctx, g.fetcher, inp, inp.Source)
	if err != nil {
		return nil, err
	}

	f, err := iofetch.Open(path)
	if err != nil {
		return nil, FormatError(inp, err)
	}
	defer f.Close()

	var res []literal.LiteralMapping
	err = iolexicon.ReadGilda(f, func(lm literal.LiteralMapping) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		remapPrefix(inp, &lm)
		if lm.Source == "" {
			lm.Source = sourceLabel(inp.Source)
		}
		res = append(res, lm)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, FormatError(inp, err)
	}
	return res, nil
}
