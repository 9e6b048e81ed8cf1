package iolexicon

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// NotFoundError is returned when a lexicon file does not exist.
func NotFoundError(hint string, err error) error {
	msg := `Lexicon <em>%s</em> is not found

Use a name of a predefined lexicon (cell, anatomy, phenotype, obo),
a path to a lexicon file, or its URL.`
	vars := []any{hint}
	return &gn.Error{
		Code: errcode.LexiconNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("lexicon %s not found: %w", hint, err),
	}
}

// FetchError is returned when a remote lexicon cannot be downloaded.
func FetchError(url string, err error) error {
	msg := "Cannot download lexicon from <em>%s</em>"
	vars := []any{url}
	return &gn.Error{
		Code: errcode.LexiconFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot fetch lexicon %s: %w", url, err),
	}
}

// ReadError is returned when a lexicon file is malformed.
func ReadError(path string, err error) error {
	msg := "Cannot read lexicon <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LexiconReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read lexicon %s: %w", path, err),
	}
}

// WriteError is returned when a lexicon file cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write lexicon <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LexiconWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write lexicon %s: %w", path, err),
	}
}
