package assembler

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
)

// SourceUnavailableError is returned when a term source cannot be read.
func SourceUnavailableError(inp lexconf.Input, err error) error {
	msg := "Term source <em>%s</em> (%s) is unavailable"
	vars := []any{inp.Source, string(inp.Processor)}
	return &gn.Error{
		Code: errcode.SourceUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot fetch %s with processor %s: %w",
			inp.Source, inp.Processor, err),
	}
}

// EquivalenceResolveError is returned when priority pairs cannot be
// obtained.
func EquivalenceResolveError(name string, err error) error {
	msg := "Cannot resolve equivalences <em>%s</em>"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.EquivalenceResolveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot resolve equivalence %q: %w", name, err),
	}
}
