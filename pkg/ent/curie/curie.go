// Package curie provides compact URI references of the form
// prefix:identifier that name entities in biomedical vocabularies.
package curie

import (
	"strings"
)

// Reference identifies an entity by a vocabulary prefix and a local
// identifier within that vocabulary.
type Reference struct {
	// Prefix is the lower-cased vocabulary prefix, for example "doid".
	Prefix string

	// Identifier is the local identifier inside the vocabulary.
	Identifier string
}

// New creates a Reference normalizing the prefix.
func New(prefix, identifier string) Reference {
	return Reference{
		Prefix:     normPrefix(prefix),
		Identifier: strings.TrimSpace(identifier),
	}
}

// Parse converts a "prefix:identifier" string to a Reference.
// Only the first colon separates prefix from identifier, so identifiers
// containing colons are kept intact.
func Parse(s string) (Reference, error) {
	var res Reference
	s = strings.TrimSpace(s)
	prefix, id, ok := strings.Cut(s, ":")
	if !ok {
		return res, ParseError(s, "missing colon")
	}
	prefix = normPrefix(prefix)
	id = strings.TrimSpace(id)
	if prefix == "" {
		return res, ParseError(s, "empty prefix")
	}
	if id == "" {
		return res, ParseError(s, "empty identifier")
	}
	res = Reference{Prefix: prefix, Identifier: id}
	return res, nil
}

// MustParse is like Parse but panics on invalid input. It is meant for
// literals in tests and static tables.
func MustParse(s string) Reference {
	res, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return res
}

// ParseList converts a slice of CURIE strings to references, stopping at
// the first invalid one.
func ParseList(ss []string) ([]Reference, error) {
	res := make([]Reference, 0, len(ss))
	for _, s := range ss {
		ref, err := Parse(s)
		if err != nil {
			return nil, err
		}
		res = append(res, ref)
	}
	return res, nil
}

// Curie returns the textual prefix:identifier form.
func (r Reference) Curie() string {
	if r.IsZero() {
		return ""
	}
	return r.Prefix + ":" + r.Identifier
}

// String implements fmt.Stringer.
func (r Reference) String() string {
	return r.Curie()
}

// IsZero is true for an empty Reference.
func (r Reference) IsZero() bool {
	return r.Prefix == "" && r.Identifier == ""
}

// Valid is true when both prefix and identifier are present.
func (r Reference) Valid() bool {
	return r.Prefix != "" && r.Identifier != ""
}

// MarshalText implements encoding.TextMarshaler.
func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.Curie()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reference) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*r = Reference{}
		return nil
	}
	ref, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// Compare orders references lexically by their CURIE.
func Compare(a, b Reference) int {
	return strings.Compare(a.Curie(), b.Curie())
}

func normPrefix(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
