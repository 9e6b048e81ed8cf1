package iopubmed

import (
	"fmt"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
)

// SearchError is returned when PubMed search fails.
func SearchError(query string, err error) error {
	msg := "Cannot search PubMed for <em>%s</em>"
	vars := []any{query}
	return &gn.Error{
		Code: errcode.LiteratureSearchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("pubmed search %q: %w", query, err),
	}
}

// RetrieveError is returned when articles cannot be downloaded.
func RetrieveError(n int, err error) error {
	msg := "Cannot retrieve <em>%d</em> articles from PubMed"
	vars := []any{n}
	return &gn.Error{
		Code: errcode.LiteratureRetrieveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("pubmed retrieve %d articles: %w", n, err),
	}
}
