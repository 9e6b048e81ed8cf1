package literal

import (
	"strings"
)

// Predicate describes how a text relates to the entity it names.
type Predicate int

const (
	UnknownPredicate Predicate = iota
	Label
	ExactSynonym
	NarrowSynonym
	BroadSynonym
	RelatedSynonym
	AltLabel
)

var predicateCuries = map[Predicate]string{
	Label:          "rdfs:label",
	ExactSynonym:   "oboInOwl:hasExactSynonym",
	NarrowSynonym:  "oboInOwl:hasNarrowSynonym",
	BroadSynonym:   "oboInOwl:hasBroadSynonym",
	RelatedSynonym: "oboInOwl:hasRelatedSynonym",
	AltLabel:       "skos:altLabel",
}

var predicateAliases = map[string]Predicate{
	"rdfs:label":                 Label,
	"label":                      Label,
	"name":                       Label,
	"skos:preflabel":             Label,
	"oboinowl:hasexactsynonym":   ExactSynonym,
	"exact":                      ExactSynonym,
	"synonym":                    ExactSynonym,
	"oboinowl:hasnarrowsynonym":  NarrowSynonym,
	"narrow":                     NarrowSynonym,
	"oboinowl:hasbroadsynonym":   BroadSynonym,
	"broad":                      BroadSynonym,
	"oboinowl:hasrelatedsynonym": RelatedSynonym,
	"related":                    RelatedSynonym,
	"skos:altlabel":              AltLabel,
	"altlabel":                   AltLabel,
}

// weights are multiplied by match quality to get a grounding score.
var predicateWeights = map[Predicate]float64{
	UnknownPredicate: 0.8,
	Label:            1.0,
	ExactSynonym:     0.95,
	AltLabel:         0.9,
	RelatedSynonym:   0.7,
	NarrowSynonym:    0.6,
	BroadSynonym:     0.5,
}

// NewPredicate converts a CURIE or a short scope name (as found in OBO
// synonym lines) to a Predicate. Unrecognized values give
// UnknownPredicate.
func NewPredicate(s string) Predicate {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := predicateAliases[s]; ok {
		return p
	}
	return UnknownPredicate
}

// String returns the CURIE of the predicate, or an empty string for
// UnknownPredicate.
func (p Predicate) String() string {
	return predicateCuries[p]
}

// Weight returns the relative trust given to texts with this predicate.
func (p Predicate) Weight() float64 {
	if w, ok := predicateWeights[p]; ok {
		return w
	}
	return predicateWeights[UnknownPredicate]
}

// MarshalText implements encoding.TextMarshaler.
func (p Predicate) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Predicate) UnmarshalText(b []byte) error {
	*p = NewPredicate(string(b))
	return nil
}
