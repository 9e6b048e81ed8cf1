package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLexicaDir sets the directory with predefined lexica.
func OptLexicaDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Lexica Dir", s) {
			c.Lexica.Dir = s
		}
	}
}

// OptLexicaURLFormat sets the template of predefined lexica URLs.
// The template must contain exactly two %s verbs.
func OptLexicaURLFormat(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURLFormat("Lexica URL Format", s) {
			c.Lexica.URLFormat = s
		}
	}
}

// OptServerPort sets the port of the web service.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerTimeout sets the request timeout of the web service in seconds.
func OptServerTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Timeout", i) {
			c.Server.Timeout = i
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per bulk insert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptPubMedAPIKey sets the NCBI API key.
func OptPubMedAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("PubMed API Key", s) {
			c.PubMed.APIKey = s
		}
	}
}

// OptPubMedBatchSize sets the number of articles fetched per request.
func OptPubMedBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("PubMed Batch Size", i) {
			c.PubMed.BatchSize = i
		}
	}
}

// OptAssembleContinueOnError makes assembly skip failing term sources.
// Runtime-only field - not in ToOptions().
func OptAssembleContinueOnError(b bool) Option {
	return func(c *Config) {
		c.Assemble.ContinueOnError = b
	}
}

// OptAssembleRawPath sets where raw records are written.
// Runtime-only field - not in ToOptions().
func OptAssembleRawPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Raw Path", s) {
			c.Assemble.RawPath = s
		}
	}
}

// OptAssembleGildaPath sets where Gilda export is written.
// Runtime-only field - not in ToOptions().
func OptAssembleGildaPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Gilda Path", s) {
			c.Assemble.GildaPath = s
		}
	}
}

// OptAssembleSummaryPath sets where the summary JSON is written.
// Runtime-only field - not in ToOptions().
func OptAssembleSummaryPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Summary Path", s) {
			c.Assemble.SummaryPath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// OptAssembleExtras replaces locations of extra SSSLM records. Blank
// entries are dropped, an empty list disables extras.
// Runtime-only field - not in ToOptions().
func OptAssembleExtras(locs []string) Option {
	var res []string
	for _, v := range locs {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return func(c *Config) {
		c.Assemble.Extras = res
	}
}
