// Package config provides configuration management for biolexica.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn() and config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Lexica: dir, url_format
//   - Server: port, timeout
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - PubMed: api_key, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Assemble.ContinueOnError, RawPath, GildaPath, SummaryPath, Extras
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BIOLEXICA_ prefix with underscores for nesting:
//
//	BIOLEXICA_SERVER_PORT=8888
//	BIOLEXICA_DATABASE_HOST=localhost
//	BIOLEXICA_LOG_LEVEL=info
//	BIOLEXICA_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete biolexica configuration.
type Config struct {
	// Lexica tells where predefined lexica are found.
	Lexica LexicaConfig `mapstructure:"lexica" yaml:"lexica"`

	// Server contains settings of the grounding web service.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Database contains PostgreSQL connection settings used for export.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// PubMed contains settings of the NCBI E-utilities client.
	PubMed PubMedConfig `mapstructure:"pubmed" yaml:"pubmed"`

	// Assemble contains settings specific to the assemble command.
	Assemble AssembleConfig `mapstructure:"assemble" yaml:"assemble"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LexicaConfig locates predefined lexica.
type LexicaConfig struct {
	// Dir is a local directory with predefined lexica, laid out as
	// {dir}/{name}/{name}.ssslm.tsv.gz. Empty means remote only.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// URLFormat is a fmt template with two %s verbs, both replaced by
	// the lexicon name.
	URLFormat string `mapstructure:"url_format" yaml:"url_format"`
}

// ServerConfig contains settings of the web service.
type ServerConfig struct {
	// Port the service listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// Timeout of a request in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent per bulk insert.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// PubMedConfig contains NCBI E-utilities settings.
type PubMedConfig struct {
	// APIKey raises the request rate limit. Optional.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BatchSize is the number of articles fetched per request.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// AssembleConfig contains settings of a single assembly run.
type AssembleConfig struct {
	// ContinueOnError skips term sources that fail instead of aborting.
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error"`

	// RawPath receives records before identifiers are rewritten.
	RawPath string `mapstructure:"raw_path" yaml:"raw_path"`

	// GildaPath receives processed records in Gilda format.
	GildaPath string `mapstructure:"gilda_path" yaml:"gilda_path"`

	// SummaryPath receives a JSON summary of processed records.
	SummaryPath string `mapstructure:"summary_path" yaml:"summary_path"`

	// Extras are SSSLM files or URLs whose records are added to fetched
	// ones before identifiers are rewritten. Curated biosynonyms are there
	// by default.
	Extras []string `mapstructure:"extras" yaml:"extras"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Lexica: LexicaConfig{
			URLFormat: DefaultURLFormat,
		},
		Server: ServerConfig{
			Port:    8888,
			Timeout: 10,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "biolexica",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		PubMed: PubMedConfig{
			BatchSize: 200,
		},
		Assemble: AssembleConfig{
			Extras: []string{BiosynonymsURL},
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
