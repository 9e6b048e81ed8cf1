package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gnames/biolexica/pkg/grounder"
	"github.com/gnames/gnfmt"
	"github.com/go-chi/chi/v5"
)

// Match is a grounding result in API responses.
type Match struct {
	Curie      string  `json:"curie"`
	Prefix     string  `json:"prefix"`
	Identifier string  `json:"identifier"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
	Predicate  string  `json:"predicate"`
	Source     string  `json:"source"`
}

// Annotation is a span of a text with its matches.
type Annotation struct {
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Text    string  `json:"text"`
	Matches []Match `json:"matches"`
}

// SizeResponse is the body of /api/summarize.
type SizeResponse struct {
	NumberTerms int `json:"number_terms"`
}

// NewMatches converts grounder matches to the API format.
func NewMatches(ms []grounder.Match) []Match {
	res := make([]Match, len(ms))
	for i, m := range ms {
		res[i] = Match{
			Curie:      m.Curie(),
			Prefix:     m.Reference.Prefix,
			Identifier: m.Reference.Identifier,
			Name:       m.Name,
			Score:      m.Score,
			Text:       m.Text,
			Predicate:  m.Predicate.String(),
			Source:     m.Source,
		}
	}
	return res
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) ground(w http.ResponseWriter, r *http.Request) {
	text := chi.URLParam(r, "text")
	if t, err := url.PathUnescape(text); err == nil {
		text = t
	}
	ms := s.grounder.MatchAll(text)
	s.metrics.matches.Observe(float64(len(ms)))
	writeJSON(w, http.StatusOK, NewMatches(ms))
}

func (s *Server) annotate(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	anns, err := s.grounder.Annotate(r.Context(), text)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		slog.Warn("Annotation interrupted", "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	writeJSON(w, http.StatusOK, NewAnnotations(anns))
}

// NewAnnotations converts grounder annotations to the API format.
func NewAnnotations(anns []grounder.Annotation) []Annotation {
	res := make([]Annotation, len(anns))
	for i, v := range anns {
		res[i] = Annotation{
			Start:   v.Start,
			End:     v.End,
			Text:    v.Text,
			Matches: NewMatches(v.Matches),
		}
	}
	return res
}

func (s *Server) summarize(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SizeResponse{NumberTerms: s.grounder.Size()})
}

func (s *Server) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.grounder.Summary())
}

func writeJSON(w http.ResponseWriter, status int, obj any) {
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(obj)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}
