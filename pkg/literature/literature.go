// Package literature annotates scientific abstracts with a lexicon and
// counts the entities they mention.
package literature

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/grounder"
)

// Article is a title and an abstract of a publication.
type Article struct {
	// PubMed is the PubMed identifier.
	PubMed   string
	Title    string
	Abstract string
}

// Searcher finds identifiers of articles that match a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// Retriever gets titles and abstracts of articles by their identifiers.
type Retriever interface {
	Retrieve(ctx context.Context, ids []string) ([]Article, error)
}

// Entity is a grounded reference with its name.
type Entity struct {
	Reference curie.Reference
	Name      string
}

// AnnotatedArticle is an article with entities found in its abstract.
type AnnotatedArticle struct {
	Article
	Annotations []grounder.Annotation
}

// References counts mentions of each entity in the article, using the
// best match of every annotation.
func (a AnnotatedArticle) References() map[Entity]int {
	res := make(map[Entity]int)
	for _, v := range a.Annotations {
		if len(v.Matches) == 0 {
			continue
		}
		m := v.Best()
		res[Entity{Reference: m.Reference, Name: m.Name}]++
	}
	return res
}

// RefCount is the number of mentions of an entity.
type RefCount struct {
	Entity
	Count int
}

// PairCount is the number of articles that mention both entities.
// Left is ordered before Right by CURIE.
type PairCount struct {
	Left, Right Entity
	Count       int
}

// Clean replaces tabs and new lines in title and abstract with spaces.
// Articles without a title or an abstract are rejected.
func Clean(a Article) (Article, bool) {
	a.Title = cleanText(a.Title)
	a.Abstract = cleanText(a.Abstract)
	if a.Title == "" || a.Abstract == "" {
		return a, false
	}
	return a, true
}

var whitespace = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func cleanText(s string) string {
	return strings.TrimSpace(whitespace.Replace(s))
}

// Annotate finds entities in abstracts of the articles.
func Annotate(
	ctx context.Context,
	g *grounder.Grounder,
	articles []Article,
) ([]AnnotatedArticle, error) {
	res := make([]AnnotatedArticle, 0, len(articles))
	for _, a := range articles {
		anns, err := g.Annotate(ctx, a.Abstract)
		if err != nil {
			return nil, err
		}
		res = append(res, AnnotatedArticle{Article: a, Annotations: anns})
	}
	return res, nil
}

// AnnotateSearch searches articles, retrieves them and annotates their
// abstracts. Articles without title or abstract are dropped.
func AnnotateSearch(
	ctx context.Context,
	s Searcher,
	r Retriever,
	g *grounder.Grounder,
	query string,
	limit int,
) ([]AnnotatedArticle, error) {
	ids, err := s.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	arts, err := r.Retrieve(ctx, ids)
	if err != nil {
		return nil, err
	}
	clean := arts[:0]
	for _, a := range arts {
		if a, ok := Clean(a); ok {
			clean = append(clean, a)
		}
	}
	return Annotate(ctx, g, clean)
}

// CountReferences sums mentions of entities over all articles. Results are
// ordered by count (descending) and CURIE.
func CountReferences(articles []AnnotatedArticle) []RefCount {
	counts := make(map[Entity]int)
	for _, a := range articles {
		for k, v := range a.References() {
			counts[k] += v
		}
	}
	res := make([]RefCount, 0, len(counts))
	for k, v := range counts {
		res = append(res, RefCount{Entity: k, Count: v})
	}
	slices.SortFunc(res, func(a, b RefCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return compareEntity(a.Entity, b.Entity)
	})
	return res
}

// CountCooccurrences counts articles for each pair of distinct entities
// mentioned together. Results are ordered by count (descending), then by
// the left and the right entity.
func CountCooccurrences(articles []AnnotatedArticle) []PairCount {
	type pair struct{ left, right Entity }
	counts := make(map[pair]int)
	for _, a := range articles {
		ents := make([]Entity, 0)
		for k := range a.References() {
			ents = append(ents, k)
		}
		slices.SortFunc(ents, compareEntity)
		for i := range ents {
			for j := i + 1; j < len(ents); j++ {
				counts[pair{ents[i], ents[j]}]++
			}
		}
	}

	res := make([]PairCount, 0, len(counts))
	for k, v := range counts {
		res = append(res, PairCount{Left: k.left, Right: k.right, Count: v})
	}
	slices.SortFunc(res, func(a, b PairCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := compareEntity(a.Left, b.Left); c != 0 {
			return c
		}
		return compareEntity(a.Right, b.Right)
	})
	return res
}

func compareEntity(a, b Entity) int {
	if c := curie.Compare(a.Reference, b.Reference); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}
