package grounder

import (
	"context"
	"iter"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Annotation is a span of a text that names one or more entities.
type Annotation struct {
	// Start is the byte offset of the span.
	Start int

	// End is the byte offset right after the span.
	End int

	// Text is the span content.
	Text string

	// Matches are entities for the span, best first.
	Matches []Match
}

// Best returns the top Match of the annotation.
func (a Annotation) Best() Match {
	if len(a.Matches) == 0 {
		return Match{}
	}
	return a.Matches[0]
}

type token struct {
	start, end int
}

// Scan returns a sequence of non-overlapping annotations in the order they
// appear in text. At every word the longest run of words known to the
// lexicon wins, and scanning continues after it. Each range over the
// sequence starts a new scan.
func (g *Grounder) Scan(text string) iter.Seq[Annotation] {
	return func(yield func(Annotation) bool) {
		_ = g.scan(context.Background(), text, yield)
	}
}

// Annotate collects all annotations of text. It stops with the context
// error when ctx is cancelled. Empty text gives no annotations.
func (g *Grounder) Annotate(
	ctx context.Context,
	text string,
) ([]Annotation, error) {
	var res []Annotation
	err := g.scan(ctx, text, func(ann Annotation) bool {
		res = append(res, ann)
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (g *Grounder) scan(
	ctx context.Context,
	text string,
	yield func(Annotation) bool,
) error {
	toks := tokenize(text)
	for i := 0; i < len(toks); {
		if err := ctx.Err(); err != nil {
			return err
		}
		ann, n := g.longestAt(text, toks, i)
		if n == 0 {
			i++
			continue
		}
		if !yield(ann) {
			return nil
		}
		i += n
	}
	return ctx.Err()
}

// longestAt tries word windows starting at toks[i], longest first, and
// returns the first one present in the index with its length in words.
func (g *Grounder) longestAt(
	text string,
	toks []token,
	i int,
) (Annotation, int) {
	limit := min(g.maxWords, len(toks)-i)
	for n := limit; n > 0; n-- {
		start, end := toks[i].start, toks[i+n-1].end
		span := text[start:end]
		key := g.normalize(span)
		if key == "" {
			continue
		}
		matches := g.matchKey(key, span)
		if len(matches) == 0 {
			continue
		}
		ann := Annotation{
			Start:   start,
			End:     end,
			Text:    span,
			Matches: matches,
		}
		return ann, n
	}
	return Annotation{}, 0
}

// tokenize splits text into runs of word runes, see isWordRune.
func tokenize(text string) []token {
	var res []token
	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		word := isWordRune(r)
		switch {
		case word && start < 0:
			start = i
		case !word && start >= 0:
			res = append(res, token{start: start, end: i})
			start = -1
		}
		i += size
	}
	if start >= 0 {
		res = append(res, token{start: start, end: len(text)})
	}
	return res
}

// isWordRune agrees with Normalize: a rune belongs to a word if it is a
// combining mark or its NFKD form has a letter or a digit. This keeps
// subscripts, superscripts and letter-numbers ("CO₂", "Ca²⁺", "Ⅻ")
// inside words.
func isWordRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) {
		return true
	}
	if r < utf8.RuneSelf {
		return false
	}
	for _, d := range norm.NFKD.String(string(r)) {
		if unicode.IsLetter(d) || unicode.IsDigit(d) {
			return true
		}
	}
	return false
}
