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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gnames/biolexica/internal/iofs"
	"github.com/gnames/biolexica/internal/iologger"
	app "github.com/gnames/biolexica/pkg"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = getRootCmd()

// getRootCmd creates the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	res := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "biolexica",
		Short:   "Assembles biomedical lexica and grounds texts with them",
		Long: `biolexica merges names of biomedical entities from ontologies,
curated tables and taxonomic archives into a single lexicon, rewrites
identifiers of equivalent entities to preferred ones and finds entities
named in texts.

Examples:
  # Build the predefined phenotype lexicon
  biolexica assemble -c phenotype -o phenotype.ssslm.tsv.gz

  # Ground a text with the cell lexicon
  biolexica ground -l cell HeLa

  # Serve the phenotype lexicon over HTTP
  biolexica serve -l phenotype -p 8888`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "biolexica version" prefix
	res.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	res.Flags().BoolP("version", "V", false, "version for biolexica")

	res.AddCommand(
		getAssembleCmd(),
		getGroundCmd(),
		getAnnotateCmd(),
		getSummarizeCmd(),
		getServeCmd(),
		getExportCmd(),
		getLiteratureCmd(),
	)
	return res
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping the records
	// written so far
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envVars maps configuration keys to environment variables. They match
// the fields included in config.ToOptions().
var envVars = map[string]string{
	"lexica.dir":          "BIOLEXICA_LEXICA_DIR",
	"lexica.url_format":   "BIOLEXICA_LEXICA_URL_FORMAT",
	"server.port":         "BIOLEXICA_SERVER_PORT",
	"server.timeout":      "BIOLEXICA_SERVER_TIMEOUT",
	"database.host":       "BIOLEXICA_DATABASE_HOST",
	"database.port":       "BIOLEXICA_DATABASE_PORT",
	"database.user":       "BIOLEXICA_DATABASE_USER",
	"database.password":   "BIOLEXICA_DATABASE_PASSWORD",
	"database.database":   "BIOLEXICA_DATABASE_DATABASE",
	"database.ssl_mode":   "BIOLEXICA_DATABASE_SSL_MODE",
	"database.batch_size": "BIOLEXICA_DATABASE_BATCH_SIZE",
	"pubmed.api_key":      "BIOLEXICA_PUBMED_API_KEY",
	"pubmed.batch_size":   "BIOLEXICA_PUBMED_BATCH_SIZE",
	"log.level":           "BIOLEXICA_LOG_LEVEL",
	"log.format":          "BIOLEXICA_LOG_FORMAT",
	"log.destination":     "BIOLEXICA_LOG_DESTINATION",
	"jobs_number":         "BIOLEXICA_JOBS_NUMBER",
}

func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("BIOLEXICA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for k, env := range envVars {
		_ = v.BindEnv(k, env)
	}

	v.AutomaticEnv()
}
