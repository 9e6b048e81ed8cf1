package iotermsource

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/biolexica/pkg/parserpool"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sfgaDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE name (
			col__id TEXT PRIMARY KEY, col__scientific_name TEXT,
			col__authorship TEXT, col__code_id TEXT, col__rank_id TEXT)`,
		`CREATE TABLE taxon (
			col__id TEXT PRIMARY KEY, col__name_id TEXT,
			col__parent_id TEXT, col__status_id TEXT)`,
		`CREATE TABLE synonym (
			col__id TEXT PRIMARY KEY, col__taxon_id TEXT, col__name_id TEXT)`,
		`CREATE TABLE vernacular (
			col__taxon_id TEXT, col__name TEXT, col__language TEXT)`,
		`INSERT INTO name VALUES
			('n1', 'Animalia', '', 'ZOOLOGICAL', 'kingdom'),
			('n2', 'Homo', 'Linnaeus, 1758', 'ZOOLOGICAL', 'genus'),
			('n3', 'Homo sapiens', 'Linnaeus, 1758', 'ZOOLOGICAL', 'species'),
			('n4', 'Homo sapiens sapiens', '', 'ZOOLOGICAL', 'subspecies'),
			('n5', 'Plantae', '', 'BOTANICAL', 'kingdom'),
			('n6', 'Homo neanderthalensis', '', 'ZOOLOGICAL', 'species')`,
		`INSERT INTO taxon VALUES
			('1', 'n1', '1', 'accepted'),
			('2', 'n2', '1', 'accepted'),
			('3', 'n3', '2', 'accepted'),
			('5', 'n5', NULL, 'accepted')`,
		`INSERT INTO synonym VALUES ('s1', '3', 'n6'), ('s2', '4', 'n4')`,
		`INSERT INTO vernacular VALUES
			('3', 'human', 'en'), ('3', 'human', 'en'), ('3', 'Mensch', 'de')`,
	}
	for _, v := range stmts {
		_, err = db.Exec(v)
		require.NoError(t, err, v)
	}
	return db
}

func TestSFGAFromDB(t *testing.T) {
	db := sfgaDB(t)
	src := NewSFGA(t.TempDir(), nil)
	inp := lexconf.Input{
		Processor: lexconf.SFGA,
		Source:    "col",
		SFGA:      &lexconf.SFGAOptions{Location: "unused", Vernacular: true},
	}

	res, err := src.fromDB(context.Background(), db, inp)
	require.NoError(t, err)

	var got []string
	for _, v := range res {
		got = append(got, v.Reference.Curie()+" "+v.Text+" "+v.Predicate.String())
	}
	assert.Equal(t, []string{
		"col:1 Animalia rdfs:label",
		"col:2 Homo rdfs:label",
		"col:3 Homo sapiens rdfs:label",
		"col:5 Plantae rdfs:label",
		"col:3 Homo neanderthalensis oboInOwl:hasExactSynonym",
		"col:3 Mensch skos:altLabel",
		"col:3 human skos:altLabel",
	}, got)
	assert.Equal(t, "Homo sapiens", res[4].Name)
	assert.Equal(t, "de", res[5].Language)
}

func TestSFGAAncestors(t *testing.T) {
	db := sfgaDB(t)
	src := NewSFGA(t.TempDir(), nil)
	inp := lexconf.Input{
		Processor: lexconf.SFGA,
		Source:    "col",
		Ancestors: lexconf.Ancestors{curie.MustParse("gbif:2")},
		SFGA:      &lexconf.SFGAOptions{Location: "unused", Prefix: "gbif"},
	}

	res, err := src.fromDB(context.Background(), db, inp)
	require.NoError(t, err)
	ids := make(map[string]int)
	for _, v := range res {
		ids[v.Reference.Curie()]++
		assert.Equal(t, "gbif", v.Source)
	}
	assert.Equal(t, map[string]int{"gbif:2": 1, "gbif:3": 2}, ids)
}

func TestSFGACanonical(t *testing.T) {
	db := sfgaDB(t)
	pool := parserpool.NewPool(2)
	defer pool.Close()

	_, err := db.Exec(`INSERT INTO name VALUES
		('n7', 'Homo sapiens var. alba', 'L.', 'BOTANICAL', 'variety')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO taxon VALUES ('7', 'n7', '3', 'accepted')`)
	require.NoError(t, err)

	src := NewSFGA(t.TempDir(), pool)
	inp := lexconf.Input{
		Processor: lexconf.SFGA,
		Source:    "col",
		SFGA:      &lexconf.SFGAOptions{Location: "unused", Canonical: true},
	}
	res, err := src.fromDB(context.Background(), db, inp)
	require.NoError(t, err)

	var canon []literal.LiteralMapping
	for _, v := range res {
		if v.Comment == "canonical form" {
			canon = append(canon, v)
		}
	}
	require.Len(t, canon, 1)
	assert.Equal(t, "Homo sapiens alba", canon[0].Text)
	assert.Equal(t, "col:7", canon[0].Reference.Curie())
	assert.Equal(t, literal.ExactSynonym, canon[0].Predicate)
}

func TestSFGAOptionsRequired(t *testing.T) {
	src := NewSFGA(t.TempDir(), nil)
	inp := lexconf.Input{
		Processor: lexconf.SFGA,
		Source:    "col",
		SFGA:      &lexconf.SFGAOptions{Location: "x.sqlite", Canonical: true},
	}
	_, err := src.Fetch(context.Background(), inp)
	require.Error(t, err)
	assert.Equal(t, errcode.ConfigurationInvalidError, err.(*gn.Error).Code)
}

func TestSFGAProgress(t *testing.T) {
	tests := []struct {
		msg      string
		progress bool
	}{
		{"no bar", false},
		{"bar", true},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			db := sfgaDB(t)
			src := NewSFGA(t.TempDir(), nil, OptSFGAProgress(tt.progress))
			assert.Equal(t, tt.progress, src.progress)

			taxa, err := loadTaxa(context.Background(), db, src.progress)
			require.NoError(t, err)
			assert.Len(t, taxa, 4)
			assert.Equal(t, "", taxa[0].parentID)
		})
	}
}
