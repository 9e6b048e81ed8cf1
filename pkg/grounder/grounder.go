// Package grounder finds entities named in texts using a consolidated
// lexicon.
//
// A Grounder is built once from literal mappings and is read-only after
// that, so it can be queried from many goroutines.
package grounder

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
)

// Match is a candidate entity for a query text.
type Match struct {
	// Reference of the matched entity.
	Reference curie.Reference

	// Name is the preferred label of the entity.
	Name string

	// Score is in (0, 1], higher is better.
	Score float64

	// Text is the lexicon text that matched.
	Text string

	// Predicate of the matched lexicon record.
	Predicate literal.Predicate

	// Source of the matched lexicon record.
	Source string
}

// Curie of the matched entity.
func (m Match) Curie() string {
	return m.Reference.Curie()
}

// Match quality factors.
const (
	exactQuality      = 1.0
	caseFoldQuality   = 0.95
	normalizedQuality = 0.9
)

// Grounder is a frozen index of literal mappings by normalized text.
type Grounder struct {
	normalize Normalizer
	records   []literal.LiteralMapping
	index     map[string][]literal.LiteralMapping
	names     map[string]string
	maxWords  int
}

// Option configures a Grounder.
type Option func(*Grounder)

// OptNormalizer replaces the default Normalize function.
func OptNormalizer(n Normalizer) Option {
	return func(g *Grounder) {
		if n != nil {
			g.normalize = n
		}
	}
}

// New builds a Grounder from records. Records are copied, the caller may
// reuse the slice. Records that normalize to an empty key are kept for
// summaries but cannot be matched.
func New(lms []literal.LiteralMapping, opts ...Option) *Grounder {
	res := &Grounder{
		normalize: Normalize,
		records:   make([]literal.LiteralMapping, len(lms)),
		index:     make(map[string][]literal.LiteralMapping),
		names:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(res)
	}

	labels := make(map[string]string)
	for i, lm := range lms {
		lm = lm.Clone()
		res.records[i] = lm

		id := lm.Reference.Curie()
		if lm.Name != "" {
			if _, ok := res.names[id]; !ok {
				res.names[id] = lm.Name
			}
		}
		if lm.Predicate == literal.Label {
			if _, ok := labels[id]; !ok {
				labels[id] = lm.Text
			}
		}

		key := res.normalize(lm.Text)
		if key == "" {
			continue
		}
		res.index[key] = append(res.index[key], lm)
		res.maxWords = max(res.maxWords, wordCount(key))
	}

	for id, label := range labels {
		if _, ok := res.names[id]; !ok {
			res.names[id] = label
		}
	}
	return res
}

// Size returns the number of records in the lexicon.
func (g *Grounder) Size() int {
	return len(g.records)
}

// Keys returns the number of distinct normalized texts.
func (g *Grounder) Keys() int {
	return len(g.index)
}

// Records returns a copy of the lexicon records.
func (g *Grounder) Records() []literal.LiteralMapping {
	return slices.Clone(g.records)
}

// Summary counts lexicon records.
func (g *Grounder) Summary() literal.Summary {
	return literal.Summarize(g.records)
}

// MatchAll returns entities whose lexicon texts are equal to text after
// normalization. There is one Match per entity, carrying the best score
// among its records. Matches are ordered by score (descending) and CURIE.
// Blank text gives no matches.
func (g *Grounder) MatchAll(text string) []Match {
	text = strings.TrimSpace(text)
	key := g.normalize(text)
	if key == "" {
		return nil
	}
	return g.matchKey(key, text)
}

// MatchBest returns the highest ranked Match, if any.
func (g *Grounder) MatchBest(text string) (Match, bool) {
	res := g.MatchAll(text)
	if len(res) == 0 {
		return Match{}, false
	}
	return res[0], true
}

func (g *Grounder) matchKey(key, text string) []Match {
	lms, ok := g.index[key]
	if !ok {
		return nil
	}

	best := make(map[string]Match)
	for _, lm := range lms {
		m := g.newMatch(lm, text)
		id := m.Curie()
		if prev, ok := best[id]; ok && !better(m, prev) {
			continue
		}
		best[id] = m
	}

	res := make([]Match, 0, len(best))
	for _, v := range best {
		res = append(res, v)
	}
	slices.SortFunc(res, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Curie(), b.Curie())
	})
	return res
}

func (g *Grounder) newMatch(lm literal.LiteralMapping, text string) Match {
	quality := normalizedQuality
	switch {
	case lm.Text == text:
		quality = exactQuality
	case strings.EqualFold(lm.Text, text):
		quality = caseFoldQuality
	}
	score := lm.Predicate.Weight() * quality
	score = math.Round(score*10_000) / 10_000

	name := g.names[lm.Reference.Curie()]
	if name == "" {
		name = lm.Text
	}
	return Match{
		Reference: lm.Reference,
		Name:      name,
		Score:     score,
		Text:      lm.Text,
		Predicate: lm.Predicate,
		Source:    lm.Source,
	}
}

// better decides between two matches of the same entity.
func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Predicate != b.Predicate {
		return a.Predicate.Weight() > b.Predicate.Weight()
	}
	return a.Text < b.Text
}
