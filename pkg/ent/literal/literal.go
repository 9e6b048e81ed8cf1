// Package literal describes literal mappings: pairings of a surface text
// with the entity it names, together with provenance of the pairing.
package literal

import (
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
)

// LiteralMapping connects a text to the entity it denotes.
type LiteralMapping struct {
	// Text is the surface string. Never empty.
	Text string `json:"text"`

	// Reference identifies the entity named by Text.
	Reference curie.Reference `json:"curie"`

	// Name is the preferred label of the Reference, if known.
	Name string `json:"name,omitempty"`

	// Predicate tells how Text relates to the entity.
	Predicate Predicate `json:"predicate,omitempty"`

	// Type is an optional synonym type, for example OMO:0003000
	// (abbreviation).
	Type curie.Reference `json:"type,omitzero"`

	// Provenance lists references (usually publications) supporting the
	// mapping.
	Provenance []curie.Reference `json:"provenance,omitempty"`

	// Contributor is an ORCID or another reference for the curator.
	Contributor curie.Reference `json:"contributor,omitzero"`

	// Date of the curation in YYYY-MM-DD format.
	Date string `json:"date,omitempty"`

	// Language is an ISO 639 language code of the Text.
	Language string `json:"language,omitempty"`

	// Comment is a free-form note.
	Comment string `json:"comment,omitempty"`

	// Source is the label of the term source that produced the mapping.
	// Merged records carry several labels separated by commas.
	Source string `json:"source,omitempty"`

	// Taxon restricts the mapping to an organism, for example
	// ncbitaxon:9606.
	Taxon curie.Reference `json:"taxon,omitzero"`
}

// Key is the identifier/text pair that makes two mappings duplicates.
type Key struct {
	Curie string
	Text  string
}

// Key returns the deduplication key of the mapping.
func (lm LiteralMapping) Key() Key {
	return Key{Curie: lm.Reference.Curie(), Text: lm.Text}
}

// Validate checks that the mapping has a text and a valid reference.
func (lm LiteralMapping) Validate() error {
	if strings.TrimSpace(lm.Text) == "" {
		return InvalidMappingError(lm.Reference.Curie(), "empty text")
	}
	if !lm.Reference.Valid() {
		return InvalidMappingError(lm.Text, "invalid reference")
	}
	return nil
}

// Sources splits Source into individual labels. Empty fields are skipped.
func (lm LiteralMapping) Sources() []string {
	var res []string
	for _, v := range strings.Split(lm.Source, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}

// Clone returns a copy that shares no slices with the receiver.
func (lm LiteralMapping) Clone() LiteralMapping {
	if lm.Provenance != nil {
		prov := make([]curie.Reference, len(lm.Provenance))
		copy(prov, lm.Provenance)
		lm.Provenance = prov
	}
	return lm
}
