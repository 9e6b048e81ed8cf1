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
	"time"

	"github.com/gnames/biolexica/internal/iolexicon"
	"github.com/gnames/biolexica/internal/ioweb"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var (
		lexicon string
		port    int
		refresh bool
	)

	res := &cobra.Command{
		Use:   "serve",
		Short: "Serve a lexicon over HTTP",
		Long: `Start a web service that grounds texts with a lexicon.

Endpoints:
  GET /api/ground/{text}     matches for a text
  GET /api/annotate?text=    entities mentioned in a text
  GET /api/summarize         number of records
  GET /api/summary           counts by source, predicate etc.
  GET /api/ping              liveness check
  GET /metrics               Prometheus metrics

Examples:
  biolexica serve -l phenotype
  biolexica serve -l cell -p 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd, lexicon, port, refresh)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lexiconFlag(res, &lexicon)
	refreshFlag(res, &refresh)
	res.Flags().IntVarP(
		&port, "port", "p", 0,
		"port of the service (default from configuration)",
	)
	return res
}

func runServe(cmd *cobra.Command, lexicon string, port int, refresh bool) error {
	if cmd.Flags().Changed("port") {
		cfg.Update([]config.Option{config.OptServerPort(port)})
	}

	ctx, cancel := signalContext()
	defer cancel()

	g, err := iolexicon.LoadGrounder(ctx, cfg, lexicon, fetchOptions(refresh)...)
	if err != nil {
		return err
	}

	srv := ioweb.New(g,
		ioweb.OptTimeout(time.Duration(cfg.Server.Timeout)*time.Second),
	)
	gn.Info("Serving <em>%s</em> on port <em>%d</em>", lexicon, cfg.Server.Port)
	return srv.Run(ctx, cfg.Server.Port)
}
