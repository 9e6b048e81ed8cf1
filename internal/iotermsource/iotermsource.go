// Package iotermsource implements term sources that read literal mappings
// from tabular lexicon files, Gilda term files, OBO flat files and Species
// File Group Archives.
package iotermsource

import (
	"context"
	"errors"
	"strings"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/pkg/assembler"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/biolexica/pkg/parserpool"
)

// Options returns assembler options that register every term source.
// The parser pool is used for canonical forms of SFGA names and may be
// nil if no input asks for them. SFGA sources show a progress bar only
// when downloads do.
func Options(
	cfg *config.Config,
	pool parserpool.Pool,
	opts ...iofetch.Option,
) []assembler.Option {
	fetcher := iofetch.New(config.SourcesCacheDir(cfg.HomeDir), opts...)
	sfga := NewSFGA(
		config.SFGACacheDir(cfg.HomeDir), pool,
		OptSFGAProgress(fetcher.Progress()),
	)
	return []assembler.Option{
		assembler.OptTermSource(lexconf.SSSLM, NewSSSLM(fetcher)),
		assembler.OptTermSource(lexconf.Gilda, NewGilda(fetcher)),
		assembler.OptTermSource(lexconf.OBO, NewOBO(fetcher)),
		assembler.OptTermSource(lexconf.SFGA, sfga),
	}
}

// location returns a local copy of a source file.
func location(
	ctx context.Context,
	f *iofetch.Fetcher,
	inp lexconf.Input,
	loc string,
) (string, error) {
	path, err := f.Local(ctx, loc)
	if err == nil || errors.Is(err, context.Canceled) {
		return path, err
	}
	return "", assembler.SourceUnavailableError(inp, err)
}

// remapPrefix renames prefixes of references according to the tabular
// options of an input.
func remapPrefix(inp lexconf.Input, lm *literal.LiteralMapping) {
	if inp.Tabular == nil || len(inp.Tabular.PrefixMap) == 0 {
		return
	}
	pm := inp.Tabular.PrefixMap
	if to, ok := lookupPrefix(pm, lm.Reference.Prefix); ok {
		lm.Reference = curie.New(to, lm.Reference.Identifier)
	}
}

func lookupPrefix(pm map[string]string, prefix string) (string, bool) {
	if to, ok := pm[prefix]; ok {
		return to, true
	}
	for k, v := range pm {
		if strings.EqualFold(k, prefix) {
			return v, true
		}
	}
	return "", false
}

// sourceLabel derives a source label from a file path or URL:
// the file name up to its first dot.
func sourceLabel(source string) string {
	if i := strings.LastIndexAny(source, `/\`); i >= 0 {
		source = source[i+1:]
	}
	if i := strings.IndexByte(source, '.'); i > 0 {
		source = source[:i]
	}
	return source
}
