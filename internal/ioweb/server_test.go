package ioweb_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gnames/biolexica/internal/ioweb"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/grounder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	lms := []literal.LiteralMapping{
		{
			Text:      "HeLa",
			Reference: curie.MustParse("cellosaurus:0030"),
			Predicate: literal.Label,
			Source:    "cellosaurus",
		},
		{
			Text:      "B cell",
			Reference: curie.MustParse("cl:0000236"),
			Predicate: literal.Label,
			Source:    "cl",
		},
		{
			Text:      "B lymphocyte",
			Reference: curie.MustParse("cl:0000236"),
			Predicate: literal.ExactSynonym,
			Source:    "cl",
		},
	}
	srv := ioweb.New(grounder.New(lms))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, rawURL string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestPing(t *testing.T) {
	ts := testServer(t)
	code, body := get(t, ts.URL+"/api/ping")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", string(body))
}

func TestGround(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		msg, text, curie string
		score            float64
	}{
		{"label", "HeLa", "cellosaurus:0030", 1.0},
		{"lower case", "hela", "cellosaurus:0030", 0.95},
		{"synonym with space", "B lymphocyte", "cl:0000236", 0.95},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			code, body := get(t, ts.URL+"/api/ground/"+url.PathEscape(v.text))
			require.Equal(t, http.StatusOK, code)
			var res []ioweb.Match
			require.NoError(t, json.Unmarshal(body, &res))
			require.Len(t, res, 1)
			assert.Equal(t, v.curie, res[0].Curie)
			assert.InDelta(t, v.score, res[0].Score, 1e-9)
			assert.Equal(t, strings.Split(v.curie, ":")[0], res[0].Prefix)
		})
	}

	code, body := get(t, ts.URL+"/api/ground/unknown")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(body))
}

func TestAnnotate(t *testing.T) {
	ts := testServer(t)
	q := url.Values{"text": {"HeLa cells are not B cell lines"}}
	code, body := get(t, ts.URL+"/api/annotate?"+q.Encode())
	require.Equal(t, http.StatusOK, code)

	var res []ioweb.Annotation
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res, 2)
	assert.Equal(t, "HeLa", res[0].Text)
	assert.Equal(t, 0, res[0].Start)
	assert.Equal(t, "B cell", res[1].Text)
	assert.Equal(t, "cl:0000236", res[1].Matches[0].Curie)
}

func TestSummarize(t *testing.T) {
	ts := testServer(t)
	code, body := get(t, ts.URL+"/api/summarize")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"number_terms":3}`, string(body))

	code, body = get(t, ts.URL+"/api/summary")
	require.Equal(t, http.StatusOK, code)
	var s literal.Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.SourceCounter["cl"])
}

func TestMetrics(t *testing.T) {
	ts := testServer(t)
	get(t, ts.URL+"/api/ping")
	get(t, ts.URL+"/api/ground/HeLa")

	code, body := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)
	txt := string(body)
	assert.Contains(t, txt, `biolexica_requests_total{code="200",route="/api/ping"} 1`)
	assert.Contains(t, txt, `biolexica_requests_total{code="200",route="/api/ground/{text}"} 1`)
	assert.Contains(t, txt, "biolexica_lexicon_terms 3")
}

func TestRunShutdown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping server start in short mode")
	}
	srv := ioweb.New(grounder.New(nil))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, 0) }()
	cancel()
	assert.NoError(t, <-done)
}
