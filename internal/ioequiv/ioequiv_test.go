package ioequiv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/mapping"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sssomData = `# curie_map:
#   doid: http://purl.obolibrary.org/obo/DOID_
#   mesh: http://id.nlm.nih.gov/mesh/
subject_id	predicate_id	object_id	confidence
MESH:D000544	skos:exactMatch	DOID:10652	0.95
UMLS:C0002395	skos:exactMatch	MESH:D000544	0.9
DOID:14330	owl:equivalentClass	MESH:D010300
MESH:D010300	skos:exactMatch	UMLS:C0030567	0.4
MESH:D000001	skos:broadMatch	DOID:1	0.99
bad curie	skos:exactMatch	DOID:1	0.99
`

func pairStrings(ps []mapping.Pair) []string {
	var res []string
	for _, v := range ps {
		res = append(res, v.Subject.Curie()+">"+v.Object.Curie())
	}
	return res
}

func TestParseRows(t *testing.T) {
	rows, err := parseRows(strings.NewReader(sssomData), 0.7)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "mesh:D000544", rows[0].subject.Curie())
	assert.Equal(t, exactMatch, rows[0].predicate)
	assert.Equal(t, 0.95, rows[0].confidence)
	assert.Equal(t, "owl:equivalentclass", rows[2].predicate)
	assert.Equal(t, 0.7, rows[2].confidence)

	rows, err = parseRows(strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = parseRows(strings.NewReader("a\tb\n1\t2\n"), 0)
	assert.Error(t, err)
}

func TestInfer(t *testing.T) {
	rows, err := parseRows(strings.NewReader(sssomData), 0)
	require.NoError(t, err)

	tests := []struct {
		msg string
		eq  lexconf.Equivalence
		res []string
	}{
		{
			"doid first",
			lexconf.Equivalence{Priority: []string{"doid", "mesh", "umls"}},
			[]string{
				"mesh:D000544>doid:10652",
				"mesh:D010300>doid:14330",
				"umls:C0002395>doid:10652",
				"umls:C0030567>doid:14330",
			},
		},
		{
			"min confidence",
			lexconf.Equivalence{
				Priority:      []string{"doid", "mesh", "umls"},
				MinConfidence: 0.5,
			},
			[]string{
				"mesh:D000544>doid:10652",
				"mesh:D010300>doid:14330",
				"umls:C0002395>doid:10652",
			},
		},
		{
			"keep prefixes",
			lexconf.Equivalence{
				Priority:     []string{"mesh"},
				KeepPrefixes: []string{"doid", "mesh"},
			},
			[]string{
				"doid:10652>mesh:D000544",
				"doid:14330>mesh:D010300",
			},
		},
		{
			"no priority member",
			lexconf.Equivalence{Priority: []string{"hgnc"}},
			nil,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res := infer(&v.eq, rows)
			assert.Equal(t, v.res, pairStrings(res))

			// the result must be accepted as a projection
			_, err := mapping.NewProjection(res)
			assert.NoError(t, err)
		})
	}
}

func TestInferTies(t *testing.T) {
	rows := []row{
		{curie.MustParse("doid:2"), exactMatch, curie.MustParse("doid:1"), 1},
		{curie.MustParse("doid:3"), exactMatch, curie.MustParse("doid:2"), 1},
	}
	eq := lexconf.Equivalence{Priority: []string{"doid"}}
	res := infer(&eq, rows)
	assert.Equal(t, []string{"doid:2>doid:1", "doid:3>doid:1"}, pairStrings(res))
}

func TestInferMutations(t *testing.T) {
	rows := []row{
		{curie.MustParse("cl:0000236"), dbXref, curie.MustParse("fma:62869"), 0.5},
		{curie.MustParse("uberon:1"), dbXref, curie.MustParse("fma:1"), 0.5},
	}
	eq := lexconf.Equivalence{
		Priority:      []string{"cl", "uberon", "fma"},
		Mutations:     []lexconf.Mutation{{Source: "CL", Confidence: 0.99}},
		MinConfidence: 0.9,
	}
	res := infer(&eq, rows)
	assert.Equal(t, []string{"fma:62869>cl:0000236"}, pairStrings(res))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	sssom := filepath.Join(dir, "mappings.sssom.tsv")
	prio := filepath.Join(dir, "priority.tsv")
	require.NoError(t, os.WriteFile(sssom, []byte(sssomData), 0644))
	require.NoError(t, os.WriteFile(prio, []byte(
		"subject_id\tobject_id\nhgnc:5\tncbigene:7\nx:1\tx:1\n",
	), 0644))

	o := New(iofetch.New(dir))
	eq := lexconf.Equivalence{
		Name: "test",
		Inputs: []lexconf.EquivalenceInput{
			{Kind: lexconf.PriorityKind, Source: prio},
			{Kind: lexconf.SSSOMKind, Source: sssom},
		},
		Priority:      []string{"doid"},
		MinConfidence: 0.5,
	}
	res, err := o.Resolve(context.Background(), &eq)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"hgnc:5>ncbigene:7",
		"mesh:D000544>doid:10652",
		"mesh:D010300>doid:14330",
		"umls:C0002395>doid:10652",
	}, pairStrings(res))
}

func TestResolveMissing(t *testing.T) {
	dir := t.TempDir()
	o := New(iofetch.New(dir))
	eq := lexconf.Equivalence{
		Name: "broken",
		Inputs: []lexconf.EquivalenceInput{
			{Kind: lexconf.PriorityKind, Source: filepath.Join(dir, "none.tsv")},
		},
	}
	_, err := o.Resolve(context.Background(), &eq)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, "broken", gnErr.Vars[0])
}

const xrefOBO = `format-version: 1.2

[Term]
id: DOID:10652
name: Alzheimer's disease
xref: MESH:D000544
xref: ICD10CM:G30

[Term]
id: DOID:14330
name: Parkinson's disease
xref: MESH:D010300 "MeSH"

[Term]
id: DOID:9999
name: old disease
xref: MESH:D000001
is_obsolete: true
`

func TestResolveOBOXrefs(t *testing.T) {
	dir := t.TempDir()
	obo := filepath.Join(dir, "doid.obo")
	require.NoError(t, os.WriteFile(obo, []byte(xrefOBO), 0644))
	o := New(iofetch.New(dir))

	tests := []struct {
		msg       string
		mutations []lexconf.Mutation
		minConf   float64
		res       []string
	}{
		{"xrefs alone are not exact", nil, 0, nil},
		{
			"mutation upgrades xrefs",
			[]lexconf.Mutation{{Source: "doid", Confidence: 0.7}},
			0.5,
			[]string{"mesh:D000544>doid:10652", "mesh:D010300>doid:14330"},
		},
		{
			"upgraded confidence is filtered",
			[]lexconf.Mutation{{Source: "doid", Confidence: 0.7}},
			0.8,
			nil,
		},
		{
			"mutation of another prefix",
			[]lexconf.Mutation{{Source: "mesh", Confidence: 0.7}},
			0,
			nil,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			eq := lexconf.Equivalence{
				Inputs: []lexconf.EquivalenceInput{
					{Kind: lexconf.OBOKind, Source: obo},
				},
				Priority:      []string{"doid", "mesh"},
				KeepPrefixes:  []string{"doid", "mesh"},
				Mutations:     v.mutations,
				MinConfidence: v.minConf,
			}
			res, err := o.Resolve(context.Background(), &eq)
			require.NoError(t, err)
			assert.Equal(t, v.res, pairStrings(res))
		})
	}
}

func TestIsPrefix(t *testing.T) {
	tests := []struct {
		source string
		res    bool
	}{
		{"doid", true},
		{"DOID", true},
		{"doid.obo", false},
		{"/data/doid", false},
		{"https://purl.obolibrary.org/obo/doid.obo", false},
		{"", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, isPrefix(v.source), v.source)
	}
}
