package iolexconf

import (
	"fmt"
	"strings"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
)

// ReadError is returned when a configuration file cannot be read.
func ReadError(path string, err error) error {
	msg := `Cannot read lexicon configuration <em>%s</em>

<em>Possible causes:</em>
  - File does not exist
  - Permission denied`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ConfigurationReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read configuration %s: %w", path, err),
	}
}

// NotPredefinedError is returned for an unknown predefined configuration.
func NotPredefinedError(name string) error {
	msg := "No configuration for <em>%s</em>, known configurations: %s"
	vars := []any{name, "anatomy, cell, phenotype"}
	return &gn.Error{
		Code: errcode.ConfigurationReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("configuration %q is not one of %s",
			name, strings.Join(lexconf.Predefined, ", ")),
	}
}
