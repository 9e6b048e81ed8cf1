// Package iolexicon reads and writes lexicon files and loads grounders
// from them.
package iolexicon

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
)

// Header lists the columns of a lexicon TSV file.
var Header = []string{
	"text", "curie", "name", "predicate", "type", "provenance",
	"contributor", "date", "language", "comment", "source", "taxon",
}

// Writer streams literal mappings as TSV rows.
type Writer struct {
	w      *csv.Writer
	header bool
}

// NewWriter creates a Writer. The header is written before the first row.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &Writer{w: cw}
}

// Write adds one row.
func (w *Writer) Write(lm literal.LiteralMapping) error {
	if !w.header {
		if err := w.w.Write(Header); err != nil {
			return err
		}
		w.header = true
	}
	prov := make([]string, len(lm.Provenance))
	for i, v := range lm.Provenance {
		prov[i] = v.Curie()
	}
	row := []string{
		lm.Text,
		lm.Reference.Curie(),
		lm.Name,
		lm.Predicate.String(),
		lm.Type.Curie(),
		strings.Join(prov, "|"),
		lm.Contributor.Curie(),
		lm.Date,
		lm.Language,
		lm.Comment,
		lm.Source,
		lm.Taxon.Curie(),
	}
	return w.w.Write(row)
}

// Flush writes buffered rows. A Writer that received no rows writes the
// header only.
func (w *Writer) Flush() error {
	if !w.header {
		if err := w.w.Write(Header); err != nil {
			return err
		}
		w.header = true
	}
	w.w.Flush()
	return w.w.Error()
}

// Reader streams literal mappings from TSV rows. Columns are found by
// their names in the header, so their order does not matter and missing
// optional columns are allowed.
type Reader struct {
	r *csv.Reader
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return &Reader{r: cr}
}

// Each calls fn for every row. It stops at the first error returned by fn.
// Rows with a malformed curie column are passed with a zero Reference, so
// validation downstream can drop them.
func (r *Reader) Each(fn func(literal.LiteralMapping) error) error {
	header, err := r.r.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	idx := make(map[string]int, len(header))
	for i, v := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))] = i
	}
	if _, ok := idx["curie"]; !ok {
		return errors.New("column 'curie' is missing")
	}
	if _, ok := idx["text"]; !ok {
		return errors.New("column 'text' is missing")
	}

	for {
		row, err := r.r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = fn(parseRow(idx, row)); err != nil {
			return err
		}
	}
}

// ReadAll collects all rows.
func (r *Reader) ReadAll() ([]literal.LiteralMapping, error) {
	var res []literal.LiteralMapping
	err := r.Each(func(lm literal.LiteralMapping) error {
		res = append(res, lm)
		return nil
	})
	return res, err
}

func parseRow(idx map[string]int, row []string) literal.LiteralMapping {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	predicate := get("predicate")
	if predicate == "" {
		predicate = get("scope")
	}

	return literal.LiteralMapping{
		Text:        get("text"),
		Reference:   parseRef(get("curie")),
		Name:        get("name"),
		Predicate:   literal.NewPredicate(predicate),
		Type:        parseRef(get("type")),
		Provenance:  parseRefs(get("provenance")),
		Contributor: parseRef(get("contributor")),
		Date:        get("date"),
		Language:    get("language"),
		Comment:     get("comment"),
		Source:      get("source"),
		Taxon:       parseRef(get("taxon")),
	}
}

func parseRef(s string) curie.Reference {
	if s == "" {
		return curie.Reference{}
	}
	res, err := curie.Parse(s)
	if err != nil {
		slog.Debug("Ignoring malformed CURIE", "value", s)
		return curie.Reference{}
	}
	return res
}

func parseRefs(s string) []curie.Reference {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ','
	})
	var res []curie.Reference
	for _, v := range fields {
		if ref := parseRef(v); !ref.IsZero() {
			res = append(res, ref)
		}
	}
	return res
}
