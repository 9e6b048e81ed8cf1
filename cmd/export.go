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
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/internal/iodb"
	"github.com/gnames/biolexica/internal/ioexport"
	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var (
		name      string
		batchSize int
		refresh   bool
	)

	res := &cobra.Command{
		Use:   "export <lexicon>",
		Short: "Export a lexicon to PostgreSQL",
		Long: `Write records of a lexicon to the literal_mappings table of a
PostgreSQL database.

The lexicon is a predefined name, a path or a URL. Rows previously
exported under the same name are replaced. The table is created or
updated automatically.

Connection settings come from the database section of
~/.config/biolexica/config.yaml or BIOLEXICA_DATABASE_* variables.

Examples:
  biolexica export cell
  biolexica export ./my.ssslm.tsv.gz --name my`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(cmd, args[0], name, batchSize, refresh)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	res.Flags().StringVarP(
		&name, "name", "n", "",
		"name of the lexicon in the database (default from the file name)",
	)
	res.Flags().IntVarP(
		&batchSize, "batch-size", "b", 0,
		"rows per bulk insert (default from configuration)",
	)
	refreshFlag(res, &refresh)
	return res
}

func runExport(
	cmd *cobra.Command,
	hint, name string,
	batchSize int,
	refresh bool,
) error {
	if cmd.Flags().Changed("batch-size") {
		cfg.Update([]config.Option{config.OptDatabaseBatchSize(batchSize)})
	}
	if name == "" {
		name = exportName(hint)
	}
	if name == "" {
		return errors.New("cannot derive lexicon name, use --name")
	}

	ctx, cancel := signalContext()
	defer cancel()

	lms, err := iolexicon.Load(ctx, cfg, hint, fetchOptions(refresh)...)
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	e := ioexport.New(op,
		ioexport.OptBatchSize(cfg.Database.BatchSize),
		ioexport.OptProgress(isTerminal(os.Stderr)),
	)
	n, err := e.Export(ctx, name, lms)
	if err != nil {
		return err
	}

	gn.Info("Exported %s rows of <em>%s</em>", humanize.Comma(int64(n)), name)
	return nil
}

// exportName derives a lexicon name from a predefined name or a file name.
func exportName(hint string) string {
	if lexconf.IsPredefined(hint) {
		return hint
	}
	base := filepath.Base(hint)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "." || base == "/" {
		return ""
	}
	return base
}
