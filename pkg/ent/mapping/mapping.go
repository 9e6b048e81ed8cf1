// Package mapping handles priority mappings between equivalent entities and
// uses them to rewrite identifiers of literal mappings.
package mapping

import (
	"maps"
	"slices"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
)

// Pair says that Subject should be replaced by Object, its prioritized
// representative.
type Pair struct {
	Subject curie.Reference `json:"subject_id"`
	Object  curie.Reference `json:"object_id"`
}

// Projection is a validated, closed subject-to-object mapping.
// Keys are subject CURIEs.
type Projection struct {
	data map[string]curie.Reference
}

// NewProjection validates pairs and builds a Projection.
//
// A subject mapped to two different objects gives an ambiguous
// equivalence error. An identity pair counts as a target too, so a subject
// mapped both to itself and to another object is ambiguous. An object that
// is itself rewritten by another pair gives a chain error. Repeated
// identical pairs are accepted. Identity pairs rewrite nothing.
func NewProjection(pairs []Pair) (*Projection, error) {
	targets := make(map[string]curie.Reference, len(pairs))
	for _, p := range pairs {
		subj := p.Subject.Curie()
		if obj, ok := targets[subj]; ok {
			if obj == p.Object {
				continue
			}
			return nil, AmbiguousEquivalenceError(p.Subject, obj, p.Object)
		}
		targets[subj] = p.Object
	}

	data := make(map[string]curie.Reference, len(targets))
	for subj, obj := range targets {
		if subj != obj.Curie() {
			data[subj] = obj
		}
	}

	for _, subj := range slices.Sorted(maps.Keys(data)) {
		obj := data[subj]
		if next, ok := data[obj.Curie()]; ok {
			return nil, EquivalenceChainError(subj, obj, next)
		}
	}
	return &Projection{data: data}, nil
}

// Len returns the number of non-identity subjects.
func (p *Projection) Len() int {
	if p == nil {
		return 0
	}
	return len(p.data)
}

// Lookup returns the representative of ref and whether ref is rewritten.
func (p *Projection) Lookup(ref curie.Reference) (curie.Reference, bool) {
	if p == nil {
		return ref, false
	}
	obj, ok := p.data[ref.Curie()]
	if !ok {
		return ref, false
	}
	return obj, true
}

// Pairs returns the projection as pairs sorted by subject.
func (p *Projection) Pairs() []Pair {
	if p == nil {
		return nil
	}
	keys := slices.Sorted(maps.Keys(p.data))
	res := make([]Pair, 0, len(keys))
	for _, k := range keys {
		res = append(res, Pair{Subject: curie.MustParse(k), Object: p.data[k]})
	}
	return res
}

// Remap returns a new slice where every mapping whose reference is a
// subject gets the subject's representative. Only the reference changes,
// and a single pass is made, so applying Remap twice gives the same
// result as applying it once. The second value is the number of rewritten
// mappings.
func (p *Projection) Remap(
	lms []literal.LiteralMapping,
) ([]literal.LiteralMapping, int) {
	res := make([]literal.LiteralMapping, len(lms))
	var count int
	for i, lm := range lms {
		if obj, ok := p.Lookup(lm.Reference); ok {
			lm.Reference = obj
			count++
		}
		res[i] = lm
	}
	return res, count
}
