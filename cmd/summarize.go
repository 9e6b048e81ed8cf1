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

	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getSummarizeCmd returns the summarize command.
func getSummarizeCmd() *cobra.Command {
	var (
		lexicon string
		refresh bool
	)

	res := &cobra.Command{
		Use:   "summarize",
		Short: "Count records of a lexicon",
		Long: `Print a JSON summary of a lexicon: number of records and counts
by source, provenance, synonym type and predicate.

Examples:
  biolexica summarize -l cell
  biolexica summarize -l ./my.ssslm.tsv.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSummarize(cmd, lexicon, refresh)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lexiconFlag(res, &lexicon)
	refreshFlag(res, &refresh)
	return res
}

func runSummarize(cmd *cobra.Command, lexicon string, refresh bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	g, err := iolexicon.LoadGrounder(ctx, cfg, lexicon, fetchOptions(refresh)...)
	if err != nil {
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(g.Summary())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
