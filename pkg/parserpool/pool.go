// Package parserpool provides a pool of gnparser instances used to derive
// canonical forms of scientific names for taxonomic lexica.
// This is a pure package, parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances for concurrent parsing.
// It keeps separate parsers for botanical and zoological codes.
type Pool interface {
	// Parse parses a scientific name string using the specified nomenclatural
	// code. Codes other than botanical are parsed as zoological names.
	// This method is safe for concurrent use.
	Parse(nameString string, code nomcode.Code) parsed.Parsed

	// Canonical returns the simple canonical form of a name, or an empty
	// string if the name cannot be parsed or is already canonical.
	Canonical(nameString string, code nomcode.Code) string

	// Close shuts down the parser pools and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

type pool struct {
	botanicalCh  chan gnparser.GNparser
	zoologicalCh chan gnparser.GNparser
}

// NewPool creates a new parser pool with jobsNum parsers per code.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	if jobsNum <= 0 {
		jobsNum = runtime.NumCPU()
	}

	botanicalCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	zoologicalCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Zoological))

	return &pool{
		botanicalCh:  gnparser.NewPool(botanicalCfg, jobsNum),
		zoologicalCh: gnparser.NewPool(zoologicalCfg, jobsNum),
	}
}

func (p *pool) Parse(nameString string, code nomcode.Code) parsed.Parsed {
	ch := p.zoologicalCh
	if code == nomcode.Botanical {
		ch = p.botanicalCh
	}

	parser := <-ch
	res := parser.ParseName(nameString)
	ch <- parser
	return res
}

func (p *pool) Canonical(nameString string, code nomcode.Code) string {
	res := p.Parse(nameString, code)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	if res.Canonical.Simple == strings.TrimSpace(nameString) {
		return ""
	}
	return res.Canonical.Simple
}

func (p *pool) Close() {
	for _, ch := range []chan gnparser.GNparser{p.botanicalCh, p.zoologicalCh} {
		close(ch)
		for range ch {
		}
	}
}

// CodeFromID converts a col__code_id value of an SFGA archive to a
// nomenclatural code. Unknown values are treated as zoological.
func CodeFromID(codeID string) nomcode.Code {
	switch strings.ToUpper(codeID) {
	case "BOTANICAL", "ICN", "ICNAFP":
		return nomcode.Botanical
	case "BACTERIAL", "ICNP":
		return nomcode.Bacterial
	default:
		return nomcode.Zoological
	}
}
