package iotermsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLabel(t *testing.T) {
	tests := []struct{ source, res string }{
		{"/data/cl.ssslm.tsv.gz", "cl"},
		{"https://example.org/lexica/terms.tsv", "terms"},
		{`C:\data\umls.tsv`, "umls"},
		{"plain", "plain"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, sourceLabel(v.source), v.source)
	}
}

func TestSSSLMFetch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test")
	}
	path := filepath.Join(t.TempDir(), "umls.ssslm.tsv.gz")
	lms := []literal.LiteralMapping{
		{Text: "AD", Reference: curie.MustParse("UMLS:C0002395"),
			Predicate: literal.ExactSynonym},
		{Text: "HeLa", Reference: curie.MustParse("cvcl:0030"),
			Predicate: literal.Label, Source: "cellosaurus"},
	}
	require.NoError(t, iolexicon.WriteFile(path, lms))

	src := NewSSSLM(iofetch.New(t.TempDir()))
	inp := lexconf.Input{
		Processor: lexconf.SSSLM,
		Source:    path,
		Tabular: &lexconf.TabularOptions{
			PrefixMap: map[string]string{"CVCL": "cellosaurus"},
		},
	}
	res, err := src.Fetch(context.Background(), inp)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "umls", res[0].Source, "file name is the default source")
	assert.Equal(t, "cellosaurus:0030", res[1].Reference.Curie())
	assert.Equal(t, "cellosaurus", res[1].Source)
}

func TestGildaFetch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test")
	}
	path := filepath.Join(t.TempDir(), "terms.tsv")
	data := "norm_text\ttext\tdb\tid\tentry_name\tstatus\tsource\torganism\n" +
		"hela\tHeLa\tCVCL\t0030\tHeLa\tname\t\t\n" +
		"b cell\tB cell\tCL\tCL:0000236\tB cell\tname\tcl\t\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	src := NewGilda(iofetch.New(t.TempDir()))
	inp := lexconf.Input{
		Processor: lexconf.Gilda,
		Source:    path,
		Tabular: &lexconf.TabularOptions{
			PrefixMap: map[string]string{"cvcl": "cellosaurus"},
		},
	}
	res, err := src.Fetch(context.Background(), inp)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "cellosaurus:0030", res[0].Reference.Curie())
	assert.Equal(t, "terms", res[0].Source)
	assert.Equal(t, "cl:0000236", res[1].Reference.Curie())
	assert.Equal(t, "cl", res[1].Source)
}

func TestTabularErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test")
	}
	ctx := context.Background()
	f := iofetch.New(t.TempDir())

	inp := lexconf.Input{
		Processor: lexconf.SSSLM,
		Source:    filepath.Join(t.TempDir(), "none.tsv"),
	}
	_, err := NewSSSLM(f).Fetch(ctx, inp)
	require.Error(t, err)
	assert.Equal(t, errcode.SourceUnavailableError, err.(*gn.Error).Code)

	bad := filepath.Join(t.TempDir(), "bad.tsv")
	require.NoError(t, os.WriteFile(bad, []byte("a\tb\n1\t2\n"), 0644))
	inp.Source = bad
	_, err = NewSSSLM(f).Fetch(ctx, inp)
	require.Error(t, err)
	assert.Equal(t, errcode.SourceFormatError, err.(*gn.Error).Code)

	inp.Processor = lexconf.Gilda
	_, err = NewGilda(f).Fetch(ctx, inp)
	require.Error(t, err)
	assert.Equal(t, errcode.SourceFormatError, err.(*gn.Error).Code)

	inp.Ancestors = lexconf.Ancestors{curie.MustParse("a:1")}
	_, err = NewGilda(f).Fetch(ctx, inp)
	require.Error(t, err)
	assert.Equal(t, errcode.ConfigurationInvalidError, err.(*gn.Error).Code)
}
