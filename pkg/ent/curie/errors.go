package curie

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// ParseError is returned when a string cannot be converted to a Reference.
func ParseError(s, reason string) error {
	return &gn.Error{
		Code: errcode.InvalidCurieError,
		Msg:  "Invalid CURIE <em>%s</em>: %s",
		Vars: []any{s, reason},
		Err:  fmt.Errorf("cannot parse CURIE %q: %s", s, reason),
	}
}
