package lexconf

import (
	"errors"
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownProcessorError is returned for an input with an unsupported
// processor.
func UnknownProcessorError(processor, source string) error {
	msg := "Unknown processor <em>%s</em> for source %s"
	vars := []any{processor, source}
	return &gn.Error{
		Code: errcode.UnknownProcessorError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown processor %q", processor),
	}
}

// InvalidError is returned when a configuration field has a bad value.
func InvalidError(field, reason string) error {
	msg := "Invalid lexicon configuration, <em>%s</em>: %s"
	vars := []any{field, reason}
	return &gn.Error{
		Code: errcode.ConfigurationInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid configuration field %s: %s", field, reason),
	}
}

// wrapInput adds the position of the offending input to the error,
// keeping its code.
func wrapInput(idx int, err error) error {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return fmt.Errorf("input %d: %w", idx, err)
	}
	res := *gnErr
	res.Err = fmt.Errorf("input %d: %w", idx, gnErr.Err)
	return &res
}
