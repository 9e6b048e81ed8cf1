package iotermsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/lexconf"
)

// OBOURLFormat is the default location of OBO files, %s is replaced by
// the source prefix.
const OBOURLFormat = "https://purl.obolibrary.org/obo/%s.obo"

// OBO reads ontologies in the OBO flat file format.
type OBO struct {
	fetcher *iofetch.Fetcher
}

// NewOBO creates an OBO term source.
func NewOBO(f *iofetch.Fetcher) *OBO {
	return &OBO{fetcher: f}
}

type oboSynonym struct {
	text       string
	scope      string
	typ        string
	provenance []string
}

type oboTerm struct {
	id       string
	name     string
	synonyms []oboSynonym
	parents  []string
	xrefs    []string
	obsolete bool
}

// Xref is a database cross-reference of an ontology term.
type Xref struct {
	Subject curie.Reference
	Object  curie.Reference
}

// ReadOBOXrefs returns cross-references of terms that are not obsolete.
// With a non-empty prefix only terms with that prefix are used. Xrefs that
// are not CURIEs (URLs, free text) are skipped.
func ReadOBOXrefs(
	ctx context.Context,
	r io.Reader,
	prefix string,
) ([]Xref, error) {
	terms, err := parseOBO(ctx, r)
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(prefix)
	var res []Xref
	for _, t := range terms {
		if t.obsolete {
			continue
		}
		subj, err := curie.Parse(t.id)
		if err != nil || (prefix != "" && subj.Prefix != prefix) {
			continue
		}
		for _, v := range t.xrefs {
			if strings.Contains(v, "://") {
				continue
			}
			obj, err := curie.Parse(v)
			if err != nil || obj == subj {
				continue
			}
			res = append(res, Xref{Subject: subj, Object: obj})
		}
	}
	return res, nil
}

// Fetch implements assembler.TermSource. Only terms with the source
// prefix are returned, terms imported from other ontologies are used
// for the hierarchy only.
func (o *OBO) Fetch(
	ctx context.Context,
	inp lexconf.Input,
) ([]literal.LiteralMapping, error) {
	loc := fmt.Sprintf(OBOURLFormat, strings.ToLower(inp.Source))
	var includeObsolete bool
	if inp.OBO != nil {
		includeObsolete = inp.OBO.IncludeObsolete
		if inp.OBO.Location != "" {
			loc = inp.OBO.Location
		}
	}

	path, err := location(ctx, o.fetcher, inp, loc)
	if err != nil {
		return nil, err
	}
	f, err := iofetch.Open(path)
	if err != nil {
		return nil, FormatError(inp, err)
	}
	defer f.Close()

	terms, err := parseOBO(ctx, f)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, FormatError(inp, err)
	}

	var keep map[string]struct{}
	if len(inp.Ancestors) > 0 {
		keep = descendants(terms, inp.Ancestors)
	}

	prefix := strings.ToLower(inp.Source)
	var res []literal.LiteralMapping
	var skipped int
	for _, t := range terms {
		ref, err := curie.Parse(t.id)
		if err != nil || ref.Prefix != prefix {
			continue
		}
		if t.obsolete && !includeObsolete {
			skipped++
			continue
		}
		if keep != nil {
			if _, ok := keep[ref.Curie()]; !ok {
				continue
			}
		}
		res = append(res, termMappings(ref, t, prefix)...)
	}

	slog.Info("OBO ontology parsed",
		"source", inp.Source,
		"terms", humanize.Comma(int64(len(terms))),
		"obsolete_skipped", skipped,
		"records", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

func termMappings(
	ref curie.Reference,
	t oboTerm,
	source string,
) []literal.LiteralMapping {
	res := make([]literal.LiteralMapping, 0, len(t.synonyms)+1)
	if t.name != "" {
		res = append(res, literal.LiteralMapping{
			Text:      t.name,
			Reference: ref,
			Name:      t.name,
			Predicate: literal.Label,
			Source:    source,
		})
	}
	for _, s := range t.synonyms {
		lm := literal.LiteralMapping{
			Text:      s.text,
			Reference: ref,
			Name:      t.name,
			Predicate: literal.NewPredicate(s.scope),
			Source:    source,
		}
		if lm.Predicate == literal.UnknownPredicate {
			lm.Predicate = literal.RelatedSynonym
		}
		if typ, err := curie.Parse(s.typ); err == nil {
			lm.Type = typ
		}
		for _, v := range s.provenance {
			if p, err := curie.Parse(v); err == nil {
				lm.Provenance = append(lm.Provenance, p)
			}
		}
		res = append(res, lm)
	}
	return res
}

// descendants returns CURIEs of the ancestors and all terms below them
// through is_a relations.
func descendants(
	terms []oboTerm,
	ancestors []curie.Reference,
) map[string]struct{} {
	children := make(map[string][]string)
	for _, t := range terms {
		id := normCurie(t.id)
		for _, p := range t.parents {
			p = normCurie(p)
			children[p] = append(children[p], id)
		}
	}

	res := make(map[string]struct{})
	var queue []string
	for _, v := range ancestors {
		queue = append(queue, v.Curie())
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := res[id]; ok {
			continue
		}
		res[id] = struct{}{}
		queue = append(queue, children[id]...)
	}
	return res
}

func normCurie(s string) string {
	ref, err := curie.Parse(s)
	if err != nil {
		return s
	}
	return ref.Curie()
}

// parseOBO reads [Term] stanzas of an OBO file.
func parseOBO(ctx context.Context, r io.Reader) ([]oboTerm, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var res []oboTerm
	var cur *oboTerm
	flush := func() {
		if cur != nil && cur.id != "" {
			res = append(res, *cur)
		}
		cur = nil
	}

	var line int
	for sc.Scan() {
		line++
		if line%100_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "!") {
			continue
		}
		if strings.HasPrefix(s, "[") {
			flush()
			if s == "[Term]" {
				cur = &oboTerm{}
			}
			continue
		}
		if cur == nil {
			continue
		}

		tag, value, ok := strings.Cut(s, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch tag {
		case "id":
			cur.id = stripTrailing(value)
		case "name":
			cur.name = stripTrailing(value)
		case "is_a":
			cur.parents = append(cur.parents, stripTrailing(value))
		case "xref":
			// xrefs may carry a quoted description
			if v, _, _ := strings.Cut(stripTrailing(value), " "); v != "" {
				cur.xrefs = append(cur.xrefs, v)
			}
		case "is_obsolete":
			cur.obsolete = stripTrailing(value) == "true"
		case "synonym":
			syn, err := parseSynonym(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if syn.text != "" {
				cur.synonyms = append(cur.synonyms, syn)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return res, nil
}

// stripTrailing removes trailing modifiers and comments from a tag value.
func stripTrailing(s string) string {
	if i := strings.Index(s, " !"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, " {"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// parseSynonym parses `"text" SCOPE [TYPE] [xref, ...]`.
func parseSynonym(s string) (oboSynonym, error) {
	var res oboSynonym
	if !strings.HasPrefix(s, `"`) {
		return res, fmt.Errorf("synonym without quoted text: %s", s)
	}

	var b strings.Builder
	i := 1
	closed := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(s[i])
			continue
		}
		if c == '"' {
			closed = true
			i++
			break
		}
		b.WriteByte(c)
	}
	if !closed {
		return res, fmt.Errorf("unterminated synonym text: %s", s)
	}
	res.text = strings.TrimSpace(b.String())

	rest := strings.TrimSpace(s[i:])
	xrefs := ""
	if j := strings.IndexByte(rest, '['); j >= 0 {
		xrefs = rest[j+1:]
		if k := strings.LastIndexByte(xrefs, ']'); k >= 0 {
			xrefs = xrefs[:k]
		}
		rest = rest[:j]
	}

	fields := strings.Fields(rest)
	if len(fields) > 0 {
		res.scope = fields[0]
	}
	if len(fields) > 1 {
		res.typ = fields[1]
	}
	for _, v := range strings.Split(xrefs, ",") {
		if v = strings.TrimSpace(v); v != "" {
			// xrefs may carry a quoted description
			v, _, _ = strings.Cut(v, " ")
			res.provenance = append(res.provenance, v)
		}
	}
	return res, nil
}
