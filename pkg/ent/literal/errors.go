package literal

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// InvalidMappingError reports a literal mapping without text or identifier.
func InvalidMappingError(what, reason string) error {
	return &gn.Error{
		Code: errcode.SourceFormatError,
		Msg:  "Invalid literal mapping <em>%s</em>: %s",
		Vars: []any{what, reason},
		Err:  fmt.Errorf("invalid literal mapping %q: %s", what, reason),
	}
}
