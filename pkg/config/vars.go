package config

import (
	"fmt"
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "biolexica"

	// DefaultURLFormat points to predefined lexica published on GitHub.
	DefaultURLFormat = "https://github.com/biopragmatics/biolexica/raw/main/lexica/%s/%s.ssslm.tsv.gz"

	// BiosynonymsURL points to curated positive synonyms that are added to
	// every assembled lexicon unless disabled.
	BiosynonymsURL = "https://github.com/biopragmatics/biosynonyms/raw/main/src/biosynonyms/resources/positives.tsv"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/biolexica by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/biolexica by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// SourcesCacheDir keeps downloaded term sources and mapping files.
func SourcesCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "sources")
}

// SFGACacheDir keeps unpacked Species File Group Archives.
func SFGACacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "sfga")
}

// LexicaCacheDir keeps downloaded lexica.
func LexicaCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "lexica")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/biolexica/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/biolexica/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// LexiconURL returns the remote location of a predefined lexicon.
func (c *Config) LexiconURL(name string) string {
	return fmt.Sprintf(c.Lexica.URLFormat, name, name)
}

// LexiconPath returns the local location of a predefined lexicon, or an
// empty string if Lexica.Dir is not set.
func (c *Config) LexiconPath(name string) string {
	if c.Lexica.Dir == "" {
		return ""
	}
	return filepath.Join(c.Lexica.Dir, name, name+".ssslm.tsv.gz")
}
