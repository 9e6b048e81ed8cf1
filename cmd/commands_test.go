package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/literature"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{getAssembleCmd(), "assemble", []string{
			"configuration", "output", "raw", "gilda", "summary",
			"continue-on-error", "refresh", "jobs", "extra", "biosynonyms",
		}},
		{getGroundCmd(), "ground", []string{"lexicon", "all", "refresh"}},
		{getAnnotateCmd(), "annotate", []string{"lexicon", "file", "refresh"}},
		{getSummarizeCmd(), "summarize", []string{"lexicon", "refresh"}},
		{getServeCmd(), "serve", []string{"lexicon", "port", "refresh"}},
		{getExportCmd(), "export", []string{"name", "batch-size", "refresh"}},
		{getLiteratureCmd(), "literature", []string{
			"lexicon", "limit", "top", "refresh",
		}},
	}

	for _, v := range tests {
		t.Run(v.use, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(v.cmd.Use, v.use))
			assert.NotEmpty(t, v.cmd.Short)
			assert.NotEmpty(t, v.cmd.Long)
			assert.NotNil(t, v.cmd.RunE)
			for _, f := range v.flags {
				assert.NotNil(t, v.cmd.Flags().Lookup(f), "flag --%s", f)
			}
		})
	}
}

func TestLexiconFlagDefault(t *testing.T) {
	cmd := getGroundCmd()
	f := cmd.Flags().Lookup("lexicon")
	require.NotNil(t, f)
	assert.Equal(t, "phenotype", f.DefValue)
	assert.Equal(t, "l", f.Shorthand)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		msg, output, name, configuration, res string
	}{
		{"flag wins", "out.tsv.gz", "cell", "cell", "out.tsv.gz"},
		{"configuration name", "", "cell", "/tmp/my.yaml", "cell.ssslm.tsv.gz"},
		{"file name", "", "", "/tmp/my.yaml", "my.ssslm.tsv.gz"},
		{"file without extension", "", "", "conf", "conf.ssslm.tsv.gz"},
		{"hidden file", "", "", "/tmp/.json", ""},
		{"nothing", "", "", "", ""},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := outputPath(v.output, v.name, v.configuration)
			if v.res == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.res, res)
		})
	}
}

func TestExtraLocations(t *testing.T) {
	assert.Equal(t, []string{config.BiosynonymsURL},
		extraLocations(true, nil))
	assert.Equal(t, []string{config.BiosynonymsURL, "my.tsv"},
		extraLocations(true, []string{"my.tsv"}))
	assert.Equal(t, []string{"my.tsv"}, extraLocations(false, []string{"my.tsv"}))
	assert.Empty(t, extraLocations(false, nil))

	f := getAssembleCmd().Flags().Lookup("biosynonyms")
	require.NotNil(t, f)
	assert.Equal(t, "true", f.DefValue)
}

func TestParallelProgress(t *testing.T) {
	tests := []struct {
		msg      string
		terminal bool
		jobs     int
		inputs   int
		res      bool
	}{
		{"not a terminal", false, 1, 1, false},
		{"one worker", true, 1, 5, true},
		{"one input", true, 8, 1, true},
		{"parallel inputs", true, 8, 5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.res,
			parallelProgress(tt.terminal, tt.jobs, tt.inputs), tt.msg)
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		hint, res string
	}{
		{"cell", "cell"},
		{"/data/my.ssslm.tsv.gz", "my"},
		{"https://example.org/lexica/anatomy.ssslm.tsv.gz", "anatomy"},
		{"plain", "plain"},
		{"/", ""},
	}
	for _, v := range tests {
		t.Run(v.hint, func(t *testing.T) {
			assert.Equal(t, v.res, exportName(v.hint))
		})
	}
}

func TestReadText(t *testing.T) {
	cmd := getAnnotateCmd()

	text, err := readText(cmd, "", []string{" HeLa", "cells "})
	require.NoError(t, err)
	assert.Equal(t, "HeLa cells", text)

	_, err = readText(cmd, "", nil)
	assert.Error(t, err)

	cmd.SetIn(strings.NewReader("from stdin"))
	text, err = readText(cmd, "-", nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	path := filepath.Join(t.TempDir(), "abstract.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0644))
	text, err = readText(cmd, path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from file", text)

	_, err = readText(cmd, path+".missing", nil)
	assert.Error(t, err)
}

func TestPrintTables(t *testing.T) {
	dm := literature.Entity{
		Reference: curie.MustParse("doid:9351"),
		Name:      "diabetes mellitus",
	}
	hp := literature.Entity{
		Reference: curie.MustParse("hp:0000822"),
		Name:      "hypertension",
	}
	refs := []literature.RefCount{{Entity: dm, Count: 5}, {Entity: hp, Count: 2}}
	pairs := []literature.PairCount{{Left: dm, Right: hp, Count: 2}}

	var buf bytes.Buffer
	printOccurrences(&buf, refs, 1)
	printCooccurrences(&buf, pairs, 10)
	out := buf.String()

	assert.Contains(t, out, "Occurrences")
	assert.Contains(t, out, "doid:9351")
	assert.NotContains(t, strings.Split(out, "Co-occurrences")[0], "hp:0000822")
	assert.Contains(t, out, "Left Reference")
	assert.Contains(t, out, "hypertension")
}
