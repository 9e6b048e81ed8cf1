package cmd

import (
	"os"
	"strings"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/spf13/cobra"
)

// lexiconFlag adds the --lexicon flag to commands that need a grounder.
func lexiconFlag(cmd *cobra.Command, s *string) {
	cmd.Flags().StringVarP(
		s, "lexicon", "l", "phenotype",
		"predefined lexicon name (cell, anatomy, phenotype, obo), path or URL",
	)
}

// refreshFlag adds the --refresh flag that ignores cached downloads.
func refreshFlag(cmd *cobra.Command, b *bool) {
	cmd.Flags().BoolVarP(
		b, "refresh", "r", false,
		"download remote files again instead of using the cache",
	)
}

// fetchOptions returns options of file downloads for a command.
func fetchOptions(refresh bool) []iofetch.Option {
	return []iofetch.Option{
		iofetch.OptRefresh(refresh),
		iofetch.OptProgress(isTerminal(os.Stderr)),
	}
}

// parallelProgress tells if progress bars can be shown while inputs are
// read by several workers. Bars of concurrent inputs would interleave.
func parallelProgress(terminal bool, jobs, inputs int) bool {
	return terminal && (jobs <= 1 || inputs <= 1)
}

// jobsFlag overrides the number of workers when it is set.
func jobsFlag(cmd *cobra.Command, i *int) {
	cmd.Flags().IntVarP(
		i, "jobs", "j", 0,
		"number of concurrent workers (default from configuration)",
	)
}

func updateJobs(cmd *cobra.Command, jobs int) {
	if cmd.Flags().Changed("jobs") {
		cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
	}
}

// textArgs joins arguments into one text.
func textArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
