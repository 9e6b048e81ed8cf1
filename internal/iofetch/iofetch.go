// Package iofetch makes local copies of remote files and opens plain or
// gzipped files for reading.
package iofetch

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
)

// Fetcher downloads remote files into a cache directory once and reuses
// them afterwards.
type Fetcher struct {
	cacheDir string
	client   *http.Client
	progress bool
	refresh  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// OptClient replaces the default HTTP client.
func OptClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// OptProgress shows a progress bar during downloads.
func OptProgress(b bool) Option {
	return func(f *Fetcher) {
		f.progress = b
	}
}

// OptRefresh ignores cached copies and downloads files again.
func OptRefresh(b bool) Option {
	return func(f *Fetcher) {
		f.refresh = b
	}
}

// New creates a Fetcher that keeps downloads in cacheDir.
func New(cacheDir string, opts ...Option) *Fetcher {
	res := &Fetcher{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: 30 * time.Minute},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Progress reports whether downloads show a progress bar.
func (f *Fetcher) Progress() bool {
	return f.progress
}

// IsURL checks if location is an http(s) URL.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CachePath returns the location of the cached copy of a URL.
func (f *Fetcher) CachePath(rawURL string) string {
	name := "download"
	if u, err := url.Parse(rawURL); err == nil && path.Base(u.Path) != "/" &&
		path.Base(u.Path) != "." {
		name = path.Base(u.Path)
	}
	prefix := gnuuid.New(rawURL).String()[:8]
	return filepath.Join(f.cacheDir, prefix+"-"+name)
}

// Local returns a local path for location. Local files are returned as is
// (the error wraps os.ErrNotExist when they are missing), URLs are
// downloaded into the cache unless a copy is there already.
func (f *Fetcher) Local(ctx context.Context, location string) (string, error) {
	if !IsURL(location) {
		if _, err := os.Stat(location); err != nil {
			return "", fmt.Errorf("cannot access %s: %w", location, err)
		}
		return location, nil
	}

	res := f.CachePath(location)
	if !f.refresh {
		if _, err := os.Stat(res); err == nil {
			slog.Debug("Using cached file", "url", location, "path", res)
			return res, nil
		}
	}
	if err := f.download(ctx, location, res); err != nil {
		return "", err
	}
	return res, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dst string) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("cannot create request for %s: %w", rawURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: rawURL, Code: resp.StatusCode}
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("cannot create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var body io.Reader = resp.Body
	if f.progress && resp.ContentLength > 0 {
		bar := pb.Full.Start64(resp.ContentLength)
		bar.Set("prefix", "Downloading "+filepath.Base(dst)+": ")
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	size, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("cannot download %s: %w", rawURL, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("cannot save %s: %w", rawURL, err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("cannot save %s: %w", rawURL, err)
	}

	slog.Info("Downloaded file",
		"url", rawURL,
		"size", humanize.Bytes(uint64(size)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// StatusError is returned when a server responds with a status other
// than 200.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Open opens a file for reading. Gzipped files are detected by their
// content and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := bufio.NewReader(f)
	magic, _ := r.Peek(2)
	if len(magic) < 2 || magic[0] != 0x1f || magic[1] != 0x8b {
		return &readCloser{Reader: r, close: f.Close}, nil
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot read gzip %s: %w", path, err)
	}
	closeAll := func() error {
		err := gz.Close()
		if ferr := f.Close(); err == nil {
			err = ferr
		}
		return err
	}
	return &readCloser{Reader: gz, close: closeAll}, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}
