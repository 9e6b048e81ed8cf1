// Package iolexconf loads lexicon configurations from files and provides
// configurations of predefined lexica.
package iolexconf

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/biolexica/pkg/lexconf"
)

//go:embed configs/*.yaml
var configs embed.FS

// Load reads a configuration from a JSON or YAML file. The format is
// chosen by the file extension, unknown extensions are read as JSON.
func Load(path string) (lexconf.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lexconf.Configuration{}, ReadError(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return lexconf.FromYAML(data)
	default:
		return lexconf.FromJSON(data)
	}
}

// Predefined returns the configuration of a predefined lexicon.
// The obo lexicon is generated from all OBO Foundry ontologies and has
// no configuration.
func Predefined(name string) (lexconf.Configuration, error) {
	data, err := configs.ReadFile("configs/" + name + ".yaml")
	if err != nil {
		return lexconf.Configuration{}, NotPredefinedError(name)
	}
	return lexconf.FromYAML(data)
}

// Resolve loads a configuration either from a predefined name or from
// a file path.
func Resolve(nameOrPath string) (lexconf.Configuration, error) {
	if _, err := os.Stat(nameOrPath); err != nil && lexconf.IsPredefined(nameOrPath) {
		return Predefined(nameOrPath)
	}
	return Load(nameOrPath)
}
