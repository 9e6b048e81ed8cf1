package literature_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/grounder"
	"github.com/gnames/biolexica/pkg/literature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrounder() *grounder.Grounder {
	lm := func(id, text string) literal.LiteralMapping {
		return literal.LiteralMapping{
			Text:      text,
			Reference: curie.MustParse(id),
			Predicate: literal.Label,
		}
	}
	return grounder.New([]literal.LiteralMapping{
		lm("doid:9351", "diabetes mellitus"),
		lm("doid:9351", "diabetes"),
		lm("hp:0000822", "hypertension"),
		lm("doid:9352", "type 2 diabetes mellitus"),
		lm("chebi:6801", "metformin"),
	})
}

type fakeSearcher struct {
	ids []string
	err error
}

func (f fakeSearcher) Search(
	_ context.Context,
	_ string,
	_ int,
) ([]string, error) {
	return f.ids, f.err
}

type fakeRetriever map[string]literature.Article

func (f fakeRetriever) Retrieve(
	_ context.Context,
	ids []string,
) ([]literature.Article, error) {
	var res []literature.Article
	for _, id := range ids {
		if a, ok := f[id]; ok {
			res = append(res, a)
		}
	}
	return res, nil
}

func articles() fakeRetriever {
	return fakeRetriever{
		"1": {
			PubMed:   "1",
			Title:    "Metformin\tand diabetes",
			Abstract: "Metformin treats type 2 diabetes mellitus.\nDiabetes and hypertension often co-occur.",
		},
		"2": {
			PubMed:   "2",
			Title:    "Hypertension",
			Abstract: "Hypertension in diabetes.",
		},
		"3": {
			PubMed: "3",
			Title:  "No abstract",
		},
	}
}

func TestClean(t *testing.T) {
	a, ok := literature.Clean(literature.Article{
		Title:    "A\ttitle\n",
		Abstract: "Line one.\r\nLine two.",
	})
	assert.True(t, ok)
	assert.Equal(t, "A title", a.Title)
	assert.Equal(t, "Line one. Line two.", a.Abstract)

	_, ok = literature.Clean(literature.Article{Title: "only title"})
	assert.False(t, ok)
	_, ok = literature.Clean(literature.Article{Abstract: "only abstract"})
	assert.False(t, ok)
}

func TestAnnotateSearch(t *testing.T) {
	ctx := context.Background()
	s := fakeSearcher{ids: []string{"1", "2", "3", "4"}}
	res, err := literature.AnnotateSearch(ctx, s, articles(), testGrounder(),
		"diabetes", 10)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Metformin and diabetes", res[0].Title)

	refs := res[0].References()
	dm := literature.Entity{
		Reference: curie.MustParse("doid:9351"),
		Name:      "diabetes mellitus",
	}
	assert.Equal(t, 1, refs[dm])
	assert.Len(t, refs, 4)

	_, err = literature.AnnotateSearch(ctx,
		fakeSearcher{err: errors.New("offline")}, articles(), testGrounder(),
		"diabetes", 10)
	assert.Error(t, err)
}

func TestAnnotateSearchLimit(t *testing.T) {
	s := fakeSearcher{ids: []string{"1", "2", "3"}}
	res, err := literature.AnnotateSearch(context.Background(), s, articles(),
		testGrounder(), "diabetes", 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "1", res[0].PubMed)
}

func TestCounts(t *testing.T) {
	s := fakeSearcher{ids: []string{"1", "2"}}
	res, err := literature.AnnotateSearch(context.Background(), s, articles(),
		testGrounder(), "diabetes", 0)
	require.NoError(t, err)

	refs := literature.CountReferences(res)
	var got []string
	for _, v := range refs {
		got = append(got, v.Reference.Curie())
	}
	assert.Equal(t, []string{
		"doid:9351", "hp:0000822", "chebi:6801", "doid:9352",
	}, got)
	assert.Equal(t, 2, refs[0].Count)
	assert.Equal(t, 2, refs[1].Count)
	assert.Equal(t, 1, refs[2].Count)

	pairs := literature.CountCooccurrences(res)
	require.NotEmpty(t, pairs)
	assert.Equal(t, "doid:9351", pairs[0].Left.Reference.Curie())
	assert.Equal(t, "hp:0000822", pairs[0].Right.Reference.Curie())
	assert.Equal(t, 2, pairs[0].Count)
	// 4 entities in the first article, 2 in the second, one pair repeats
	assert.Len(t, pairs, 6)
	for _, p := range pairs {
		assert.Negative(t,
			curie.Compare(p.Left.Reference, p.Right.Reference))
	}
}

func TestAnnotateCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	arts := []literature.Article{articles()["1"]}
	_, err := literature.Annotate(ctx, testGrounder(), arts)
	assert.ErrorIs(t, err, context.Canceled)
}
