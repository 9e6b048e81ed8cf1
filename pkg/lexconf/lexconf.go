// Package lexconf describes how a lexicon is assembled: which term sources
// to read, which entities to drop, and how equivalent entities are merged.
//
// A Configuration is created once (usually from a JSON or YAML file) and
// is not modified during assembly.
package lexconf

import (
	"slices"

	"github.com/gnames/biolexica/pkg/ent/curie"
)

// Configuration is a recipe for a lexicon.
type Configuration struct {
	// Name is an optional label used in logs and summaries.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Inputs are term sources in the order their records are concatenated.
	Inputs []Input `json:"inputs" yaml:"inputs"`

	// Excludes are removed after identifiers are rewritten.
	Excludes []curie.Reference `json:"excludes,omitempty" yaml:"excludes,omitempty"`

	// Equivalence optionally configures how priority pairs are obtained.
	Equivalence *Equivalence `json:"equivalence_configuration,omitempty" yaml:"equivalence_configuration,omitempty"`
}

// Input is a single term source.
type Input struct {
	// Processor selects the adapter that reads the source.
	Processor Processor `json:"processor" yaml:"processor"`

	// Source is a vocabulary prefix (obo, sfga) or a path/URL to a
	// tabular file (ssslm, gilda).
	Source string `json:"source" yaml:"source"`

	// Ancestors restrict the terms to descendants of these entities.
	Ancestors Ancestors `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`

	// OBO contains options of the obo processor.
	OBO *OBOOptions `json:"obo,omitempty" yaml:"obo,omitempty"`

	// SFGA contains options of the sfga processor.
	SFGA *SFGAOptions `json:"sfga,omitempty" yaml:"sfga,omitempty"`

	// Tabular contains options of ssslm and gilda processors.
	Tabular *TabularOptions `json:"tabular,omitempty" yaml:"tabular,omitempty"`
}

// OBOOptions configure reading of OBO flat files.
type OBOOptions struct {
	// Location is a path or URL of the OBO file. Defaults to the OBO
	// Foundry PURL of the source prefix.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// IncludeObsolete keeps terms marked as obsolete.
	IncludeObsolete bool `json:"include_obsolete,omitempty" yaml:"include_obsolete,omitempty"`
}

// SFGAOptions configure reading of Species File Group Archives.
type SFGAOptions struct {
	// Location is a path or URL of the archive.
	Location string `json:"location" yaml:"location"`

	// Prefix of generated references. Defaults to the source.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Vernacular adds common names.
	Vernacular bool `json:"vernacular,omitempty" yaml:"vernacular,omitempty"`

	// Canonical adds canonical forms of scientific names.
	Canonical bool `json:"canonical,omitempty" yaml:"canonical,omitempty"`
}

// TabularOptions configure reading of tabular term files.
type TabularOptions struct {
	// PrefixMap renames prefixes found in the file.
	PrefixMap map[string]string `json:"prefix_map,omitempty" yaml:"prefix_map,omitempty"`
}

// Predefined are names of lexica published by the project.
var Predefined = []string{"cell", "anatomy", "phenotype", "obo"}

// IsPredefined checks if name is one of Predefined lexica.
func IsPredefined(name string) bool {
	return slices.Contains(Predefined, name)
}

// ExcludeSet returns the CURIEs of Excludes as a set.
func (c Configuration) ExcludeSet() map[string]struct{} {
	res := make(map[string]struct{}, len(c.Excludes))
	for _, v := range c.Excludes {
		res[v.Curie()] = struct{}{}
	}
	return res
}

// SFGAPrefix returns the prefix used for references of an sfga input.
func (inp Input) SFGAPrefix() string {
	if inp.SFGA != nil && inp.SFGA.Prefix != "" {
		return inp.SFGA.Prefix
	}
	return inp.Source
}
