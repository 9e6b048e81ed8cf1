package iofetch_test

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		location string
		res      bool
	}{
		{"https://purl.obolibrary.org/obo/doid.obo", true},
		{"http://localhost:8080/a.tsv", true},
		{"ftp://example.org/a.tsv", false},
		{"/tmp/a.tsv", false},
		{"doid", false},
		{"https://", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, iofetch.IsURL(v.location), v.location)
	}
}

func TestProgress(t *testing.T) {
	f := iofetch.New(t.TempDir())
	assert.False(t, f.Progress())
	f = iofetch.New(t.TempDir(), iofetch.OptProgress(true))
	assert.True(t, f.Progress())
	f = iofetch.New(t.TempDir(), iofetch.OptProgress(true), iofetch.OptProgress(false))
	assert.False(t, f.Progress())
}

func TestLocal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test")
	}
	ctx := context.Background()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/doid.obo" {
				http.NotFound(w, r)
				return
			}
			hits.Add(1)
			io.WriteString(w, "format-version: 1.2\n")
		}))
	defer srv.Close()

	f := iofetch.New(t.TempDir())
	url := srv.URL + "/doid.obo"
	for range 3 {
		path, err := f.Local(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, f.CachePath(url), path)
		assert.Equal(t, "doid.obo", filepath.Base(path)[9:])
	}
	assert.Equal(t, int32(1), hits.Load())

	_, err := iofetch.New(t.TempDir(), iofetch.OptRefresh(true)).Local(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	_, err = f.Local(ctx, srv.URL+"/missing.obo")
	var statusErr *iofetch.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)

	_, err = f.Local(ctx, filepath.Join(t.TempDir(), "none.obo"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test")
	}
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.tsv")
	require.NoError(t, os.WriteFile(plain, []byte("a\tb\n"), 0644))

	// gzipped content is detected without the extension
	zipped := filepath.Join(dir, "zipped.tsv")
	out, err := os.Create(zipped)
	require.NoError(t, err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write([]byte("a\tb\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, out.Close())

	for _, path := range []string{plain, zipped} {
		r, err := iofetch.Open(path)
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "a\tb\n", string(data))
		require.NoError(t, r.Close())
	}

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	r, err := iofetch.Open(empty)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data)
	r.Close()
}
