// Package ioequiv resolves equivalence configurations into priority pairs
// using SSSOM mapping files and ontology cross-references.
package ioequiv

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/internal/iotermsource"
	"github.com/gnames/biolexica/pkg/assembler"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/mapping"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gnfmt"
)

const (
	dbXref     = "oboinowl:hasdbxref"
	exactMatch = "skos:exactmatch"
)

var exactPredicates = map[string]struct{}{
	exactMatch:            {},
	"owl:equivalentclass": {},
}

// Oracle implements assembler.Oracle.
type Oracle struct {
	fetcher *iofetch.Fetcher
}

// New creates an Oracle that reads mapping files with the fetcher.
func New(f *iofetch.Fetcher) *Oracle {
	return &Oracle{fetcher: f}
}

// Resolve returns priority pairs described by eq. Pairs from priority
// inputs are returned as they are. Mappings from sssom inputs are
// grouped into equivalence classes, and every member of a class is paired
// with the member whose prefix comes first in the priority list.
func (o *Oracle) Resolve(
	ctx context.Context,
	eq *lexconf.Equivalence,
) ([]mapping.Pair, error) {
	start := time.Now()
	var res []mapping.Pair
	var rows []row
	for _, inp := range eq.Inputs {
		rs, err := o.readInput(ctx, inp)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			return nil, assembler.EquivalenceResolveError(eq.Name, err)
		}

		switch inp.Kind {
		case lexconf.PriorityKind:
			for _, r := range rs {
				if r.subject != r.object {
					res = append(res, mapping.Pair{Subject: r.subject, Object: r.object})
				}
			}
		default:
			rows = append(rows, rs...)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inferred := infer(eq, rows)
	res = append(res, inferred...)

	slog.Info("Equivalences resolved",
		"name", eq.Name,
		"mappings", humanize.Comma(int64(len(rows))),
		"pairs", humanize.Comma(int64(len(res))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

// readInput reads mapping rows of an equivalence input. Ontology inputs
// give one oboInOwl:hasDbXref row per term xref.
func (o *Oracle) readInput(
	ctx context.Context,
	inp lexconf.EquivalenceInput,
) ([]row, error) {
	loc, prefix := inp.Source, ""
	if inp.Kind == lexconf.OBOKind && isPrefix(inp.Source) {
		prefix = strings.ToLower(inp.Source)
		loc = fmt.Sprintf(iotermsource.OBOURLFormat, prefix)
	}

	path, err := o.fetcher.Local(ctx, loc)
	if err != nil {
		return nil, err
	}
	if inp.Kind != lexconf.OBOKind {
		return readRows(path, inp.Confidence)
	}

	f, err := iofetch.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	xrefs, err := iotermsource.ReadOBOXrefs(ctx, f, prefix)
	if err != nil {
		return nil, fmt.Errorf("cannot read xrefs from %s: %w", loc, err)
	}
	conf := inp.Confidence
	if conf <= 0 {
		conf = 1
	}
	res := make([]row, 0, len(xrefs))
	for _, x := range xrefs {
		res = append(res, row{
			subject:    x.Subject,
			predicate:  dbXref,
			object:     x.Object,
			confidence: conf,
		})
	}
	return res, nil
}

// isPrefix tells an ontology prefix from a path or URL.
func isPrefix(s string) bool {
	return s != "" && !strings.ContainsAny(s, `./\:`)
}

// infer turns mappings into priority pairs. The result is closed: no
// object is a subject of another pair.
func infer(eq *lexconf.Equivalence, rows []row) []mapping.Pair {
	mutations := make(map[string]float64, len(eq.Mutations))
	for _, m := range eq.Mutations {
		mutations[strings.ToLower(m.Source)] = m.Confidence
	}

	uf := newUnionFind()
	for _, r := range rows {
		r = mutate(r, mutations)
		if _, ok := exactPredicates[r.predicate]; !ok {
			continue
		}
		if r.confidence < eq.MinConfidence {
			continue
		}
		if !eq.Keep(r.subject.Prefix) || !eq.Keep(r.object.Prefix) {
			continue
		}
		uf.union(r.subject, r.object)
	}

	var res []mapping.Pair
	for _, members := range uf.components() {
		rep, ok := representative(eq, members)
		if !ok {
			continue
		}
		for _, m := range members {
			if m != rep {
				res = append(res, mapping.Pair{Subject: m, Object: rep})
			}
		}
	}
	slices.SortFunc(res, func(a, b mapping.Pair) int {
		return curie.Compare(a.Subject, b.Subject)
	})
	return res
}

func mutate(r row, mutations map[string]float64) row {
	if r.predicate != dbXref {
		return r
	}
	conf, ok := mutations[r.subject.Prefix]
	if !ok {
		return r
	}
	r.predicate = exactMatch
	if conf > 0 {
		r.confidence = conf
	}
	return r
}

// representative picks the member with the best priority prefix, ties go
// to the smallest CURIE.
func representative(
	eq *lexconf.Equivalence,
	members []curie.Reference,
) (curie.Reference, bool) {
	var res curie.Reference
	best := -1
	for _, m := range members {
		rank := eq.PriorityRank(m.Prefix)
		if rank < 0 {
			continue
		}
		if best < 0 || rank < best ||
			(rank == best && curie.Compare(m, res) < 0) {
			res, best = m, rank
		}
	}
	return res, best >= 0
}

type unionFind struct {
	parent map[curie.Reference]curie.Reference
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[curie.Reference]curie.Reference)}
}

func (u *unionFind) find(r curie.Reference) curie.Reference {
	p, ok := u.parent[r]
	if !ok {
		u.parent[r] = r
		return r
	}
	if p == r {
		return r
	}
	root := u.find(p)
	u.parent[r] = root
	return root
}

func (u *unionFind) union(a, b curie.Reference) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	// the smaller root wins to keep the structure independent of order
	if curie.Compare(ra, rb) < 0 {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}

// components returns members of each set, sorted, in the order of roots.
func (u *unionFind) components() [][]curie.Reference {
	groups := make(map[curie.Reference][]curie.Reference)
	for r := range u.parent {
		root := u.find(r)
		groups[root] = append(groups[root], r)
	}
	res := make([][]curie.Reference, 0, len(groups))
	for _, v := range groups {
		slices.SortFunc(v, curie.Compare)
		res = append(res, v)
	}
	slices.SortFunc(res, func(a, b []curie.Reference) int {
		return cmp.Compare(a[0].Curie(), b[0].Curie())
	})
	return res
}
