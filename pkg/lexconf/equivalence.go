package lexconf

import (
	"strings"
)

// EquivalenceKind tells how an equivalence input is interpreted.
type EquivalenceKind string

const (
	// SSSOMKind inputs hold raw mappings that have to be clustered into
	// equivalence classes.
	SSSOMKind EquivalenceKind = "sssom"

	// PriorityKind inputs hold precomputed subject-to-representative
	// pairs.
	PriorityKind EquivalenceKind = "priority"

	// OBOKind inputs are ontologies whose term xrefs become
	// oboInOwl:hasDbXref mappings. Mutations turn them into exact matches.
	OBOKind EquivalenceKind = "obo"
)

// Equivalence configures how priority pairs are produced.
type Equivalence struct {
	// Name is an optional label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Inputs are mapping files.
	Inputs []EquivalenceInput `json:"inputs" yaml:"inputs"`

	// Priority lists prefixes in order of preference for the
	// representative of an equivalence class.
	Priority []string `json:"priority,omitempty" yaml:"priority,omitempty"`

	// KeepPrefixes restricts mappings to entities with these prefixes.
	// Empty means no restriction.
	KeepPrefixes []string `json:"keep_prefixes,omitempty" yaml:"keep_prefixes,omitempty"`

	// Mutations upgrade database cross-references from a source prefix
	// to exact matches.
	Mutations []Mutation `json:"mutations,omitempty" yaml:"mutations,omitempty"`

	// MinConfidence drops mappings with lower confidence.
	MinConfidence float64 `json:"min_confidence,omitempty" yaml:"min_confidence,omitempty"`
}

// EquivalenceInput is a mapping file.
type EquivalenceInput struct {
	// Kind of the file content.
	Kind EquivalenceKind `json:"kind" yaml:"kind"`

	// Source is a path or URL of a TSV file. For obo inputs it is also
	// allowed to be an ontology prefix.
	Source string `json:"source" yaml:"source"`

	// Confidence is assigned to mappings that do not carry one.
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Mutation upgrades cross-references of a prefix to exact matches.
type Mutation struct {
	// Source is the subject prefix of affected mappings.
	Source string `json:"source" yaml:"source"`

	// Confidence given to upgraded mappings.
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// PriorityRank returns the position of prefix in Priority, or -1.
func (e *Equivalence) PriorityRank(prefix string) int {
	prefix = strings.ToLower(prefix)
	for i, v := range e.Priority {
		if strings.ToLower(v) == prefix {
			return i
		}
	}
	return -1
}

// Keep checks if a prefix passes the KeepPrefixes filter.
func (e *Equivalence) Keep(prefix string) bool {
	if len(e.KeepPrefixes) == 0 {
		return true
	}
	prefix = strings.ToLower(prefix)
	for _, v := range e.KeepPrefixes {
		if strings.ToLower(v) == prefix {
			return true
		}
	}
	return false
}
