package iolexicon

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/grounder"
)

// GildaHeader lists the columns of a Gilda terms file.
var GildaHeader = []string{
	"norm_text", "text", "db", "id", "entry_name", "status", "source",
	"organism", "source_db", "source_id",
}

// WriteGilda writes records as Gilda terms.
func WriteGilda(w io.Writer, lms []literal.LiteralMapping) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(GildaHeader); err != nil {
		return err
	}
	for _, lm := range lms {
		name := lm.Name
		if name == "" {
			name = lm.Text
		}
		status := "synonym"
		if lm.Predicate == literal.Label {
			status = "name"
		}
		row := []string{
			grounder.Normalize(lm.Text),
			lm.Text,
			strings.ToUpper(lm.Reference.Prefix),
			lm.Reference.Identifier,
			name,
			status,
			lm.Source,
			lm.Taxon.Identifier,
			"",
			"",
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGilda reads Gilda terms. Statuses convert to predicates: name to
// label, synonym and curated to exact synonym, former_name to related
// synonym. Database names are lowercased to become prefixes.
func ReadGilda(r io.Reader, fn func(literal.LiteralMapping) error) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	idx := make(map[string]int, len(header))
	for i, v := range header {
		idx[strings.TrimSpace(v)] = i
	}
	for _, col := range []string{"text", "db", "id"} {
		if _, ok := idx[col]; !ok {
			return errors.New("column '" + col + "' is missing")
		}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id := get("id")
		// some Gilda files repeat the prefix in the identifier
		if pref, local, ok := strings.Cut(id, ":"); ok &&
			strings.EqualFold(pref, get("db")) {
			id = local
		}
		var ref curie.Reference
		if get("db") != "" && id != "" {
			ref = curie.New(get("db"), id)
		}
		lm := literal.LiteralMapping{
			Text:      get("text"),
			Reference: ref,
			Name:      get("entry_name"),
			Predicate: gildaPredicate(get("status")),
			Source:    get("source"),
		}
		if org := get("organism"); org != "" {
			lm.Taxon = curie.New("ncbitaxon", org)
		}
		if err = fn(lm); err != nil {
			return err
		}
	}
}

func gildaPredicate(status string) literal.Predicate {
	switch strings.ToLower(status) {
	case "name":
		return literal.Label
	case "synonym", "curated":
		return literal.ExactSynonym
	case "former_name":
		return literal.RelatedSynonym
	default:
		return literal.UnknownPredicate
	}
}
