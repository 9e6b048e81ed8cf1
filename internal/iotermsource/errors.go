package iotermsource

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
)

// FormatError is returned when a source is reachable but its content
// cannot be parsed.
func FormatError(inp lexconf.Input, err error) error {
	msg := "Cannot parse term source <em>%s</em> (%s)"
	vars := []any{inp.Source, string(inp.Processor)}
	return &gn.Error{
		Code: errcode.SourceFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed %s source %s: %w", inp.Processor, inp.Source, err),
	}
}
