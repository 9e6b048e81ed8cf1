package iopubmed_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gnames/biolexica/internal/iopubmed"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const efetchTemplate = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2024//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_240101.dtd">
<PubmedArticleSet>%s</PubmedArticleSet>`

func article(id string) string {
	return fmt.Sprintf(`<PubmedArticle><MedlineCitation Status="MEDLINE">
<PMID Version="1">%s</PMID>
<Article>
<ArticleTitle>Role of <i>TP53</i> in diabetes %s.</ArticleTitle>
<Abstract>
<AbstractText Label="BACKGROUND">Diabetes is common.</AbstractText>
<AbstractText Label="RESULTS">Metformin helps.</AbstractText>
</Abstract>
</Article>
</MedlineCitation></PubmedArticle>`, id, id)
}

func testServer(t *testing.T, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "pubmed", q.Get("db"))
		assert.Equal(t, "json", q.Get("retmode"))
		assert.Equal(t, "key", q.Get("api_key"))
		if q.Get("term") == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"header":{},"esearchresult":{"count":"12345",`+
			`"retmax":"%s","idlist":["1","2","3"]}}`, q.Get("retmax"))
	})
	mux.HandleFunc("/efetch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		var arts []string
		for _, id := range strings.Split(r.URL.Query().Get("id"), ",") {
			arts = append(arts, article(id))
		}
		fmt.Fprintf(w, efetchTemplate, strings.Join(arts, "\n"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestSearch(t *testing.T) {
	var fetches atomic.Int32
	ts := testServer(t, &fetches)
	c := iopubmed.New(
		iopubmed.OptBaseURL(ts.URL),
		iopubmed.OptAPIKey("key"),
		iopubmed.OptDelay(1),
	)

	ids, err := c.Search(context.Background(), "diabetes", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	_, err = c.Search(context.Background(), "fail", 3)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, "fail", gnErr.Vars[0])
}

func TestRetrieve(t *testing.T) {
	var fetches atomic.Int32
	ts := testServer(t, &fetches)
	c := iopubmed.New(
		iopubmed.OptBaseURL(ts.URL),
		iopubmed.OptAPIKey("key"),
		iopubmed.OptBatchSize(2),
		iopubmed.OptDelay(1),
	)

	arts, err := c.Retrieve(context.Background(), []string{"1", "2", "3"})
	require.NoError(t, err)
	require.Len(t, arts, 3)
	assert.Equal(t, int32(2), fetches.Load())

	assert.Equal(t, "1", arts[0].PubMed)
	assert.Equal(t, "Role of TP53 in diabetes 1.", arts[0].Title)
	assert.Equal(t, "Diabetes is common. Metformin helps.", arts[0].Abstract)
	assert.Equal(t, "3", arts[2].PubMed)
}

func TestRetrieveCancel(t *testing.T) {
	var fetches atomic.Int32
	ts := testServer(t, &fetches)
	c := iopubmed.New(iopubmed.OptBaseURL(ts.URL), iopubmed.OptBatchSize(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Retrieve(ctx, []string{"1", "2"})
	assert.Error(t, err)
}
