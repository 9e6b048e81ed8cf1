package lexconf

import (
	"github.com/gnames/gnfmt"
	"gopkg.in/yaml.v3"
)

// FromJSON decodes and validates a configuration.
func FromJSON(data []byte) (Configuration, error) {
	var res Configuration
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &res); err != nil {
		return res, InvalidError("json", err.Error())
	}
	if err := res.Validate(); err != nil {
		return res, err
	}
	return res, nil
}

// FromYAML decodes and validates a configuration.
func FromYAML(data []byte) (Configuration, error) {
	var res Configuration
	if err := yaml.Unmarshal(data, &res); err != nil {
		return res, InvalidError("yaml", err.Error())
	}
	if err := res.Validate(); err != nil {
		return res, err
	}
	return res, nil
}

// ToJSON encodes the configuration as indented JSON.
func (c Configuration) ToJSON() ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: true}
	return enc.Encode(c)
}

// ToYAML encodes the configuration as YAML.
func (c Configuration) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
