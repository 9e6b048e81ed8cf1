package grounder_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/grounder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lm(id, text string, p literal.Predicate) literal.LiteralMapping {
	return literal.LiteralMapping{
		Text:      text,
		Reference: curie.MustParse(id),
		Predicate: p,
		Source:    curie.MustParse(id).Prefix,
	}
}

func cellLexicon() []literal.LiteralMapping {
	return []literal.LiteralMapping{
		lm("cellosaurus:0030", "HeLa", literal.Label),
		lm("cellosaurus:0030", "HeLa cell", literal.ExactSynonym),
		lm("cellosaurus:0030", "Hela", literal.RelatedSynonym),
		lm("cl:0000236", "B cell", literal.Label),
		lm("cl:0000236", "B lymphocyte", literal.ExactSynonym),
		lm("cl:0000084", "T cell", literal.Label),
		lm("cl:0000000", "cell", literal.Label),
		lm("doid:10652", "Alzheimer's disease", literal.Label),
		lm("mesh:D000544", "Alzheimer Disease", literal.Label),
		lm("doid:14330", "Parkinson's disease", literal.Label),
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, res string
	}{
		{"HeLa", "hela"},
		{"  B   cell ", "b cell"},
		{"Alzheimer's disease", "alzheimer s disease"},
		{"Sjögren syndrome", "sjogren syndrome"},
		{"naïve T-cell", "naive t cell"},
		{"STRASSE", "strasse"},
		{"...", ""},
		{"", ""},
	}

	for _, v := range tests {
		t.Run(v.input, func(t *testing.T) {
			assert.Equal(t, v.res, grounder.Normalize(v.input))
		})
	}
}

func TestMatchHela(t *testing.T) {
	g := grounder.New(cellLexicon())

	for range 3 {
		res := g.MatchAll("hela")
		require.Len(t, res, 1)
		assert.Equal(t, "cellosaurus", res[0].Reference.Prefix)
		assert.Equal(t, "0030", res[0].Reference.Identifier)
		assert.Equal(t, "HeLa", res[0].Name)
	}
}

func TestMatchScore(t *testing.T) {
	g := grounder.New(cellLexicon())

	tests := []struct {
		msg, query string
		score      float64
		text       string
	}{
		{"exact label", "HeLa", 1.0, "HeLa"},
		{"case-insensitive label", "HELA", 0.95, "HeLa"},
		{"normalized synonym", "hela-cell", 0.855, "HeLa cell"},
		{"label outranks exact related synonym", "Hela", 0.95, "HeLa"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			m, ok := g.MatchBest(v.query)
			require.True(t, ok)
			assert.Equal(t, "cellosaurus:0030", m.Curie())
			assert.InDelta(t, v.score, m.Score, 1e-9)
			assert.Equal(t, v.text, m.Text)
		})
	}
}

func TestMatchAllOrder(t *testing.T) {
	lms := append(cellLexicon(),
		lm("mesh:D000544", "AD", literal.ExactSynonym),
		lm("doid:10652", "AD", literal.Label),
		lm("hgnc:1", "AD", literal.RelatedSynonym),
		lm("doid:10652", "ad", literal.Label),
	)
	g := grounder.New(lms)
	res := g.MatchAll("AD")
	require.Len(t, res, 3)
	assert.Equal(t, "doid:10652", res[0].Curie())
	assert.Equal(t, 1.0, res[0].Score)
	assert.Equal(t, "mesh:D000544", res[1].Curie())
	assert.Equal(t, "hgnc:1", res[2].Curie())

	// ties are ordered by CURIE
	g = grounder.New([]literal.LiteralMapping{
		lm("b:2", "x", literal.Label),
		lm("a:1", "x", literal.Label),
	})
	res = g.MatchAll("x")
	require.Len(t, res, 2)
	assert.Equal(t, "a:1", res[0].Curie())
	assert.Equal(t, "b:2", res[1].Curie())
}

func TestMatchEmpty(t *testing.T) {
	g := grounder.New(cellLexicon())
	assert.Empty(t, g.MatchAll(""))
	assert.Empty(t, g.MatchAll("   "))
	assert.Empty(t, g.MatchAll("unknown thing"))
	_, ok := g.MatchBest("")
	assert.False(t, ok)
}

func TestName(t *testing.T) {
	lms := []literal.LiteralMapping{
		lm("doid:10652", "AD", literal.ExactSynonym),
		lm("doid:10652", "Alzheimer's disease", literal.Label),
		{
			Text:      "presenile dementia",
			Reference: curie.MustParse("doid:10653"),
			Name:      "early-onset Alzheimer's",
		},
	}
	g := grounder.New(lms)
	m, ok := g.MatchBest("ad")
	require.True(t, ok)
	assert.Equal(t, "Alzheimer's disease", m.Name)

	m, ok = g.MatchBest("presenile dementia")
	require.True(t, ok)
	assert.Equal(t, "early-onset Alzheimer's", m.Name)
}

func TestRecordsAreCopied(t *testing.T) {
	lms := cellLexicon()
	g := grounder.New(lms)
	lms[0].Text = "changed"
	lms[0].Reference = curie.MustParse("x:1")

	m, ok := g.MatchBest("HeLa")
	require.True(t, ok)
	assert.Equal(t, "cellosaurus:0030", m.Curie())
	assert.Equal(t, len(lms), g.Size())
	assert.Equal(t, "HeLa", g.Records()[0].Text)
}

func TestSummary(t *testing.T) {
	g := grounder.New(cellLexicon())
	s := g.Summary()
	assert.Equal(t, 10, s.Count)
	assert.Equal(t, 3, s.SourceCounter["cellosaurus"])
	assert.Equal(t, 4, s.SourceCounter["cl"])
}

func TestOptNormalizer(t *testing.T) {
	g := grounder.New(cellLexicon(), grounder.OptNormalizer(strings.TrimSpace))
	assert.Empty(t, g.MatchAll("hela"))
	m, ok := g.MatchBest("HeLa")
	require.True(t, ok)
	assert.Equal(t, "cellosaurus:0030", m.Curie())
}

func TestConcurrentQueries(t *testing.T) {
	g := grounder.New(cellLexicon())
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m, ok := g.MatchBest("B lymphocyte")
				assert.True(t, ok)
				assert.Equal(t, "cl:0000236", m.Curie())
			}
		}()
	}
	wg.Wait()
}

func TestAnnotate(t *testing.T) {
	g := grounder.New(cellLexicon())
	ctx := context.Background()
	text := "HeLa cells and B cell lines differ from T cell, " +
		"unlike Alzheimer's disease."

	res, err := g.Annotate(ctx, text)
	require.NoError(t, err)

	var got []string
	for _, v := range res {
		got = append(got, v.Text+"="+v.Best().Curie())
		assert.Equal(t, v.Text, text[v.Start:v.End])
	}
	assert.Equal(t, []string{
		"HeLa=cellosaurus:0030",
		"B cell=cl:0000236",
		"T cell=cl:0000084",
		"Alzheimer's disease=doid:10652",
	}, got)

	for i := 1; i < len(res); i++ {
		assert.LessOrEqual(t, res[i-1].End, res[i].Start, "no overlaps")
	}
}

func TestAnnotateLongestMatch(t *testing.T) {
	g := grounder.New(cellLexicon())
	res, err := g.Annotate(context.Background(), "A HeLa cell sample")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "HeLa cell", res[0].Text)
	assert.Equal(t, 2, res[0].Start)
	assert.Equal(t, 11, res[0].End)
}

func TestAnnotateEmpty(t *testing.T) {
	g := grounder.New(cellLexicon())
	res, err := g.Annotate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = g.Annotate(context.Background(), "nothing to see here")
	require.NoError(t, err)
	assert.Empty(t, res)

	empty := grounder.New(nil)
	res, err = empty.Annotate(context.Background(), "HeLa")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestAnnotateCancel(t *testing.T) {
	g := grounder.New(cellLexicon())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Annotate(ctx, strings.Repeat("HeLa ", 100))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanRestartable(t *testing.T) {
	g := grounder.New(cellLexicon())
	seq := g.Scan("HeLa and B cell")

	var first, second []string
	for ann := range seq {
		first = append(first, ann.Text)
	}
	for ann := range seq {
		second = append(second, ann.Text)
	}
	assert.Equal(t, []string{"HeLa", "B cell"}, first)
	assert.Equal(t, first, second)

	// early stop
	var one []string
	for ann := range seq {
		one = append(one, ann.Text)
		break
	}
	assert.Equal(t, []string{"HeLa"}, one)
}

func TestAnnotateCompatibilityForms(t *testing.T) {
	g := grounder.New([]literal.LiteralMapping{
		lm("chebi:16526", "CO₂", literal.Label),
		lm("chebi:29108", "Ca²⁺", literal.Label),
	})

	tests := []struct {
		text, query, span, id string
	}{
		{"CO₂ levels rose", "CO₂", "CO₂", "chebi:16526"},
		{"influx of Ca²⁺ ions", "Ca²⁺", "Ca²", "chebi:29108"},
		{"co2 levels", "co2", "co2", "chebi:16526"},
	}

	for _, v := range tests {
		t.Run(v.text, func(t *testing.T) {
			require.Len(t, g.MatchAll(v.query), 1)
			res, err := g.Annotate(context.Background(), v.text)
			require.NoError(t, err)
			require.Len(t, res, 1)
			assert.Equal(t, v.span, res[0].Text)
			assert.Equal(t, v.id, res[0].Best().Curie())
		})
	}
}
