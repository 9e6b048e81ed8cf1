// Package schema provides database models for exported lexica.
package schema

import (
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/gnuuid"
)

// LiteralMapping is a lexicon record stored in PostgreSQL.
type LiteralMapping struct {
	// ID is a UUID v5 generated from the lexicon name and the content of
	// the record.
	ID string `gorm:"type:uuid;primaryKey"`

	// Lexicon is the name of the exported lexicon, for example 'cell'.
	Lexicon string `gorm:"type:varchar(100);not null;index"`

	// Text is the string that names the entity.
	Text string `gorm:"type:text;not null;index"`

	// Curie of the named entity.
	Curie string `gorm:"type:varchar(255);not null;index"`

	// Prefix of the CURIE.
	Prefix string `gorm:"type:varchar(100);not null"`

	// Identifier part of the CURIE.
	Identifier string `gorm:"type:varchar(255);not null"`

	// Name is the preferred label of the entity.
	Name string `gorm:"type:text"`

	// Predicate is the CURIE of the naming relation.
	Predicate string `gorm:"type:varchar(100)"`

	// Type is the synonym type CURIE.
	Type string `gorm:"type:varchar(255)"`

	// Provenance is a '|'-separated list of CURIEs.
	Provenance string `gorm:"type:text"`

	Contributor string `gorm:"type:varchar(255)"`

	Date string `gorm:"type:varchar(50)"`

	Language string `gorm:"type:varchar(20)"`

	Comment string `gorm:"type:text"`

	// Source is the label of the term source.
	Source string `gorm:"type:varchar(100);index"`

	// Taxon is the CURIE of the organism.
	Taxon string `gorm:"type:varchar(100)"`
}

// TableName returns the PostgreSQL table name.
func (LiteralMapping) TableName() string {
	return "literal_mappings"
}

// Columns returns column names in the order of Values.
func Columns() []string {
	return []string{
		"id", "lexicon", "text", "curie", "prefix", "identifier", "name",
		"predicate", "type", "provenance", "contributor", "date",
		"language", "comment", "source", "taxon",
	}
}

// Values returns field values in the order of Columns.
func (m LiteralMapping) Values() []any {
	return []any{
		m.ID, m.Lexicon, m.Text, m.Curie, m.Prefix, m.Identifier, m.Name,
		m.Predicate, m.Type, m.Provenance, m.Contributor, m.Date,
		m.Language, m.Comment, m.Source, m.Taxon,
	}
}

// NewLiteralMapping converts a lexicon record to a database row.
func NewLiteralMapping(
	lexicon string,
	lm literal.LiteralMapping,
) LiteralMapping {
	prov := make([]string, len(lm.Provenance))
	for i, v := range lm.Provenance {
		prov[i] = v.Curie()
	}
	res := LiteralMapping{
		Lexicon:     lexicon,
		Text:        lm.Text,
		Curie:       lm.Reference.Curie(),
		Prefix:      lm.Reference.Prefix,
		Identifier:  lm.Reference.Identifier,
		Name:        lm.Name,
		Predicate:   lm.Predicate.String(),
		Type:        lm.Type.Curie(),
		Provenance:  strings.Join(prov, "|"),
		Contributor: lm.Contributor.Curie(),
		Date:        lm.Date,
		Language:    lm.Language,
		Comment:     lm.Comment,
		Source:      lm.Source,
		Taxon:       lm.Taxon.Curie(),
	}
	res.ID = gnuuid.New(res.key()).String()
	return res
}

func (m LiteralMapping) key() string {
	return strings.Join([]string{
		m.Lexicon, m.Text, m.Curie, m.Predicate, m.Type, m.Source,
		m.Language, m.Taxon,
	}, "\t")
}

// Reference returns the entity reference of the row.
func (m LiteralMapping) Reference() curie.Reference {
	return curie.New(m.Prefix, m.Identifier)
}
