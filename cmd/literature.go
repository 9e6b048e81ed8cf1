/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/internal/iopubmed"
	"github.com/gnames/biolexica/pkg/literature"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLiteratureCmd returns the literature command.
func getLiteratureCmd() *cobra.Command {
	var (
		lexicon string
		limit   int
		top     int
		refresh bool
	)

	res := &cobra.Command{
		Use:   "literature <query>",
		Short: "Annotate PubMed abstracts and count entities",
		Long: `Search PubMed, annotate abstracts of found articles with a lexicon,
and print the most frequent entities and pairs of entities mentioned
together.

An NCBI API key (pubmed.api_key in the configuration or
BIOLEXICA_PUBMED_API_KEY) raises the allowed request rate.

Examples:
  biolexica literature diabetes -l phenotype --limit 300`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLiterature(cmd, textArgs(args), lexicon, limit, top, refresh)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lexiconFlag(res, &lexicon)
	refreshFlag(res, &refresh)
	res.Flags().IntVar(&limit, "limit", 300, "maximum number of articles")
	res.Flags().IntVar(&top, "top", 10, "number of rows in each table")
	return res
}

func runLiterature(
	cmd *cobra.Command,
	query, lexicon string,
	limit, top int,
	refresh bool,
) error {
	ctx, cancel := signalContext()
	defer cancel()

	g, err := iolexicon.LoadGrounder(ctx, cfg, lexicon, fetchOptions(refresh)...)
	if err != nil {
		return err
	}

	client := iopubmed.New(
		iopubmed.OptAPIKey(cfg.PubMed.APIKey),
		iopubmed.OptBatchSize(cfg.PubMed.BatchSize),
		iopubmed.OptProgress(isTerminal(os.Stderr)),
	)
	arts, err := literature.AnnotateSearch(ctx, client, client, g, query, limit)
	if err != nil {
		return err
	}
	gn.Info("Annotated %s articles", humanize.Comma(int64(len(arts))))

	w := cmd.OutOrStdout()
	printOccurrences(w, literature.CountReferences(arts), top)
	printCooccurrences(w, literature.CountCooccurrences(arts), top)
	return nil
}

func printOccurrences(w io.Writer, refs []literature.RefCount, top int) {
	fmt.Fprintln(w, "\nOccurrences")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Reference\tName\tCount")
	for i, v := range refs {
		if i >= top {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", v.Reference.Curie(), v.Name, v.Count)
	}
	_ = tw.Flush()
}

func printCooccurrences(w io.Writer, pairs []literature.PairCount, top int) {
	fmt.Fprintln(w, "\nCo-occurrences")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw,
		"Left Reference\tLeft Name\tRight Reference\tRight Name\tCount")
	for i, v := range pairs {
		if i >= top {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			v.Left.Reference.Curie(), v.Left.Name,
			v.Right.Reference.Curie(), v.Right.Name,
			v.Count)
	}
	_ = tw.Flush()
}
