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
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/internal/ioequiv"
	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/internal/iolexconf"
	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/internal/iotermsource"
	"github.com/gnames/biolexica/pkg/assembler"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/biolexica/pkg/parserpool"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type assembleFlags struct {
	configuration   string
	output          string
	raw             string
	gilda           string
	summary         string
	extras          []string
	biosynonyms     bool
	continueOnError bool
	refresh         bool
	jobs            int
}

// getAssembleCmd returns the assemble command.
func getAssembleCmd() *cobra.Command {
	var f assembleFlags

	res := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble a lexicon from term sources",
		Long: `Assemble a lexicon according to a configuration.

This command:
  1. Fetches literal mappings from every configured term source
     (ssslm, gilda, obo and sfga processors)
  2. Resolves equivalences into priority pairs
  3. Rewrites identifiers to preferred ones
  4. Removes excluded entities
  5. Writes the lexicon as gzipped TSV

Curated positive synonyms from biosynonyms and files given with --extra
are added to fetched records before identifiers are rewritten.

The configuration is a name of a predefined lexicon (cell, anatomy,
phenotype) or a path to a JSON or YAML file.

Remote sources are cached in ~/.cache/biolexica/sources.

Examples:
  # Build the predefined cell lexicon
  biolexica assemble -c cell -o cell.ssslm.tsv.gz

  # Build from a custom configuration, keep intermediate files
  biolexica assemble -c my.yaml -o my.ssslm.tsv.gz \
    --raw my.raw.tsv.gz --gilda my.gilda.tsv.gz --summary my.json

  # Skip sources that cannot be fetched
  biolexica assemble -c phenotype --continue-on-error

  # Add own synonyms, leave out biosynonyms
  biolexica assemble -c cell --extra my.ssslm.tsv --biosynonyms=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAssemble(cmd, f)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	res.Flags().StringVarP(
		&f.configuration, "configuration", "c", "",
		"predefined lexicon name or path to a configuration file",
	)
	res.Flags().StringVarP(
		&f.output, "output", "o", "",
		"output lexicon file (default {name}.ssslm.tsv.gz)",
	)
	res.Flags().StringSliceVar(
		&f.extras, "extra", nil,
		"SSSLM files or URLs with additional records",
	)
	res.Flags().BoolVar(
		&f.biosynonyms, "biosynonyms", true,
		"add curated positive synonyms from biosynonyms",
	)
	res.Flags().StringVar(
		&f.raw, "raw", "",
		"file for records before identifiers are rewritten",
	)
	res.Flags().StringVar(
		&f.gilda, "gilda", "",
		"file for records in Gilda terms format",
	)
	res.Flags().StringVar(
		&f.summary, "summary", "",
		"file for a JSON summary of the lexicon",
	)
	res.Flags().BoolVar(
		&f.continueOnError, "continue-on-error", false,
		"skip term sources that cannot be fetched",
	)
	refreshFlag(res, &f.refresh)
	jobsFlag(res, &f.jobs)
	_ = res.MarkFlagRequired("configuration")

	return res
}

func runAssemble(cmd *cobra.Command, f assembleFlags) error {
	start := time.Now()
	updateJobs(cmd, f.jobs)

	conf, err := iolexconf.Resolve(f.configuration)
	if err != nil {
		return err
	}

	output, err := outputPath(f.output, conf.Name, f.configuration)
	if err != nil {
		return err
	}

	// Build options from explicitly set flags
	asmCfg := []config.Option{
		config.OptAssembleContinueOnError(f.continueOnError),
		config.OptAssembleExtras(extraLocations(f.biosynonyms, f.extras)),
	}
	if cmd.Flags().Changed("raw") {
		asmCfg = append(asmCfg, config.OptAssembleRawPath(f.raw))
	}
	if cmd.Flags().Changed("gilda") {
		asmCfg = append(asmCfg, config.OptAssembleGildaPath(f.gilda))
	}
	if cmd.Flags().Changed("summary") {
		asmCfg = append(asmCfg, config.OptAssembleSummaryPath(f.summary))
	}
	cfg.Update(asmCfg)

	runID := uuid.NewString()
	slog.SetDefault(slog.Default().With("run_id", runID))
	slog.Info("Assembly started",
		"name", conf.Name,
		"inputs", len(conf.Inputs),
		"output", output,
		"jobs", cfg.JobsNumber,
	)
	gn.Info("Assembling lexicon <em>%s</em> from %d sources",
		conf.Name, len(conf.Inputs))

	pool := parserpool.NewPool(cfg.JobsNumber)
	defer pool.Close()

	fetchOpts := append(fetchOptions(f.refresh), iofetch.OptProgress(
		parallelProgress(isTerminal(os.Stderr), cfg.JobsNumber, len(conf.Inputs)),
	))
	fetcher := iofetch.New(config.SourcesCacheDir(cfg.HomeDir), fetchOpts...)

	asmOpts := iotermsource.Options(cfg, pool, fetchOpts...)
	asmOpts = append(asmOpts,
		assembler.OptOracle(ioequiv.New(fetcher)),
		assembler.OptRecorder(iolexicon.Recorder{
			OutputPath:  output,
			RawPath:     cfg.Assemble.RawPath,
			GildaPath:   cfg.Assemble.GildaPath,
			SummaryPath: cfg.Assemble.SummaryPath,
		}),
		assembler.OptJobsNumber(cfg.JobsNumber),
		assembler.OptContinueOnError(cfg.Assemble.ContinueOnError),
	)

	ctx, cancel := signalContext()
	defer cancel()

	extras, err := iolexicon.LoadExtras(
		ctx, fetcher, cfg.Assemble.Extras, cfg.Assemble.ContinueOnError,
	)
	if err != nil {
		return err
	}

	lms, err := assembler.New(asmOpts...).Assemble(ctx, conf, extras, nil)
	if err != nil {
		return err
	}

	gn.Info(
		"Lexicon <em>%s</em> with %s records is written to <em>%s</em> in %s",
		conf.Name,
		humanize.Comma(int64(len(lms))),
		output,
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// outputPath is the output flag, or a name derived from the configuration
// name, or from the configuration file name.
func outputPath(output, name, configuration string) (string, error) {
	if output != "" {
		return output, nil
	}
	if name == "" {
		base := filepath.Base(configuration)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" || name == "." || strings.HasPrefix(name, ".") {
		return "", lexconf.InvalidError("name", "empty, set --output")
	}
	return fmt.Sprintf("%s.ssslm.tsv.gz", name), nil
}

// extraLocations lists sources of extra records, biosynonyms first.
func extraLocations(biosynonyms bool, extras []string) []string {
	var res []string
	if biosynonyms {
		res = append(res, config.BiosynonymsURL)
	}
	return append(res, extras...)
}
