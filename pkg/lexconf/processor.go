package lexconf

import (
	"encoding/json"
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"gopkg.in/yaml.v3"
)

// Processor names the adapter used to read an Input.
type Processor string

const (
	// SSSLM reads literal mappings from an SSSLM TSV file.
	SSSLM Processor = "ssslm"

	// Gilda reads a Gilda terms TSV file.
	Gilda Processor = "gilda"

	// OBO parses an ontology in OBO flat file format.
	OBO Processor = "obo"

	// SFGA reads a Species File Group Archive.
	SFGA Processor = "sfga"
)

// Processors lists all supported processors.
var Processors = []Processor{SSSLM, Gilda, OBO, SFGA}

// aliases of processors used by older configurations.
var processorAliases = map[string]Processor{
	"pyobo":         OBO,
	"bioontologies": OBO,
}

// NewProcessor normalizes a processor name. Unknown names are kept
// verbatim and fail Valid.
func NewProcessor(s string) Processor {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := processorAliases[s]; ok {
		return p
	}
	return Processor(s)
}

// Valid is true for supported processors.
func (p Processor) Valid() bool {
	for _, v := range Processors {
		if p == v {
			return true
		}
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Processor) UnmarshalText(b []byte) error {
	*p = NewProcessor(string(b))
	return nil
}

// Ancestors is a list of references. In configuration files it can be
// given either as a single CURIE or as a list of CURIEs.
type Ancestors []curie.Reference

// UnmarshalJSON implements json.Unmarshaler.
func (a *Ancestors) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		return a.set([]string{single})
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	return a.set(list)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Ancestors) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return a.set([]string{value.Value})
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	return a.set(list)
}

func (a *Ancestors) set(ss []string) error {
	refs, err := curie.ParseList(ss)
	if err != nil {
		return err
	}
	*a = refs
	return nil
}
