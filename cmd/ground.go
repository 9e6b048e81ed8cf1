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
	"errors"
	"fmt"

	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/internal/ioweb"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getGroundCmd returns the ground command.
func getGroundCmd() *cobra.Command {
	var (
		lexicon string
		all     bool
		refresh bool
	)

	res := &cobra.Command{
		Use:   "ground <text>",
		Short: "Find entities named by a text",
		Long: `Find entities whose names or synonyms match a text.

Texts are compared after normalization: case, accents, punctuation and
extra spaces are ignored. Matches are scored by the kind of the name
(label, exact synonym etc.) and by how close the text is to it.

Examples:
  biolexica ground -l cell HeLa
  biolexica ground -l phenotype --all "Alzheimer disease"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGround(cmd, lexicon, textArgs(args), all, refresh)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lexiconFlag(res, &lexicon)
	refreshFlag(res, &refresh)
	res.Flags().BoolVarP(
		&all, "all", "a", false,
		"show all matches instead of the best one",
	)
	return res
}

func runGround(
	cmd *cobra.Command,
	lexicon, text string,
	all, refresh bool,
) error {
	if text == "" {
		return errors.New("text for grounding is required")
	}

	ctx, cancel := signalContext()
	defer cancel()

	g, err := iolexicon.LoadGrounder(ctx, cfg, lexicon, fetchOptions(refresh)...)
	if err != nil {
		return err
	}

	ms := g.MatchAll(text)
	if !all && len(ms) > 1 {
		ms = ms[:1]
	}
	if len(ms) == 0 {
		gn.Info("No matches for <em>%s</em>", text)
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(ioweb.NewMatches(ms))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
