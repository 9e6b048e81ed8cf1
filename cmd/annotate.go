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
	"io"
	"os"

	"github.com/gnames/biolexica/internal/iofs"
	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/internal/ioweb"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getAnnotateCmd returns the annotate command.
func getAnnotateCmd() *cobra.Command {
	var (
		lexicon string
		file    string
		refresh bool
	)

	res := &cobra.Command{
		Use:   "annotate [text]",
		Short: "Find entities mentioned in a text",
		Long: `Scan a text and report spans that name entities of a lexicon.

At every word the longest run of words known to the lexicon wins. The
text is taken from arguments, from a file (--file), or from standard
input (--file -).

Examples:
  biolexica annotate -l cell "HeLa cells and B cell lines"
  biolexica annotate -l phenotype -f abstract.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnnotate(cmd, lexicon, file, args, refresh)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lexiconFlag(res, &lexicon)
	refreshFlag(res, &refresh)
	res.Flags().StringVarP(
		&file, "file", "f", "",
		"file with the text, '-' for standard input",
	)
	return res
}

func runAnnotate(
	cmd *cobra.Command,
	lexicon, file string,
	args []string,
	refresh bool,
) error {
	text, err := readText(cmd, file, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	g, err := iolexicon.LoadGrounder(ctx, cfg, lexicon, fetchOptions(refresh)...)
	if err != nil {
		return err
	}

	anns, err := g.Annotate(ctx, text)
	if err != nil {
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(ioweb.NewAnnotations(anns))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readText(cmd *cobra.Command, file string, args []string) (string, error) {
	switch file {
	case "":
		text := textArgs(args)
		if text == "" {
			return "", errors.New("text for annotation is required")
		}
		return text, nil
	case "-":
		bs, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", iofs.ReadFileError("stdin", err)
		}
		return string(bs), nil
	default:
		bs, err := os.ReadFile(file)
		if err != nil {
			return "", iofs.ReadFileError(file, err)
		}
		return string(bs), nil
	}
}
