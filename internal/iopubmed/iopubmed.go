// Package iopubmed is a client of NCBI E-utilities that searches PubMed and
// downloads titles and abstracts.
package iopubmed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/biolexica/pkg/literature"
	"github.com/gnames/gnfmt"
)

// BaseURL of NCBI E-utilities.
const BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client implements literature.Searcher and literature.Retriever.
type Client struct {
	baseURL   string
	apiKey    string
	batchSize int
	delay     time.Duration
	progress  bool
	client    *http.Client
}

// Option configures Client.
type Option func(*Client)

// OptBaseURL changes the E-utilities location.
func OptBaseURL(s string) Option {
	return func(c *Client) {
		if s != "" {
			c.baseURL = strings.TrimRight(s, "/")
		}
	}
}

// OptAPIKey sets NCBI API key, it raises the allowed request rate.
func OptAPIKey(s string) Option {
	return func(c *Client) {
		c.apiKey = s
	}
}

// OptBatchSize sets the number of articles per efetch request.
func OptBatchSize(i int) Option {
	return func(c *Client) {
		if i > 0 {
			c.batchSize = i
		}
	}
}

// OptDelay sets a pause between requests.
func OptDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// OptProgress enables a progress bar for retrieval.
func OptProgress(b bool) Option {
	return func(c *Client) {
		c.progress = b
	}
}

// New creates a PubMed client.
func New(opts ...Option) *Client {
	res := &Client{
		baseURL:   BaseURL,
		batchSize: 200,
		client:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.delay == 0 {
		// NCBI allows 3 requests per second without a key, 10 with it.
		res.delay = 350 * time.Millisecond
		if res.apiKey != "" {
			res.delay = 110 * time.Millisecond
		}
	}
	return res
}

type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search returns up to limit PubMed identifiers for the query.
func (c *Client) Search(
	ctx context.Context,
	query string,
	limit int,
) ([]string, error) {
	if limit <= 0 {
		limit = 10_000
	}
	q := c.params()
	q.Set("term", query)
	q.Set("retmode", "json")
	q.Set("retmax", strconv.Itoa(limit))

	bs, err := c.get(ctx, "esearch.fcgi", q)
	if err != nil {
		return nil, SearchError(query, err)
	}

	var resp esearchResponse
	enc := gnfmt.GNjson{}
	if err = enc.Decode(bs, &resp); err != nil {
		return nil, SearchError(query, err)
	}
	slog.Info("PubMed search done",
		"query", query,
		"found", resp.Result.Count,
		"returned", len(resp.Result.IDList),
	)
	return resp.Result.IDList, nil
}

// Retrieve downloads titles and abstracts in batches. Articles missing from
// PubMed are absent from the result.
func (c *Client) Retrieve(
	ctx context.Context,
	ids []string,
) ([]literature.Article, error) {
	var bar *pb.ProgressBar
	if c.progress {
		bar = pb.Full.Start(len(ids))
		bar.Set("prefix", "Retrieving articles: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	res := make([]literature.Article, 0, len(ids))
	for i := 0; i < len(ids); i += c.batchSize {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delay):
			}
		}
		end := min(i+c.batchSize, len(ids))
		batch := ids[i:end]

		q := c.params()
		q.Set("id", strings.Join(batch, ","))
		q.Set("retmode", "xml")
		bs, err := c.get(ctx, "efetch.fcgi", q)
		if err != nil {
			return nil, RetrieveError(len(batch), err)
		}
		arts, err := parseArticles(bs)
		if err != nil {
			return nil, RetrieveError(len(batch), err)
		}
		res = append(res, arts...)
		if bar != nil {
			bar.Add(len(batch))
		}
	}
	return res, nil
}

func (c *Client) params() url.Values {
	q := url.Values{}
	q.Set("db", "pubmed")
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	return q
}

func (c *Client) get(
	ctx context.Context,
	endpoint string,
	q url.Values,
) ([]byte, error) {
	u := c.baseURL + "/" + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
