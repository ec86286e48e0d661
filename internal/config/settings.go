package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is looked up inside the state directory when no explicit
// --settings path is given.
const SettingsFileName = "settings.yaml"

// Settings is the on-disk deployment configuration. Every field is optional;
// empty values leave the corresponding Config default untouched.
//
//	policy: sequential
//	extensions: narrow
//	color: never
//	log_file: /var/log/picrename.log
//	verbose: true
type Settings struct {
	Policy     string `yaml:"policy"`
	Extensions string `yaml:"extensions"`
	Color      string `yaml:"color"`
	LogFile    string `yaml:"log_file"`
	Verbose    *bool  `yaml:"verbose,omitempty"`
}

// LoadSettings reads and parses a YAML settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("settings file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read settings file %q: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return &s, nil
}

// LoadSettingsIfExists is like [LoadSettings] but returns (nil, nil) when the
// file is absent. Used for the implicit <state dir>/settings.yaml lookup.
func LoadSettingsIfExists(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadSettings(path)
}

// Apply overlays non-empty settings onto cfg.
func (s *Settings) Apply(cfg *Config) error {
	if s.Policy != "" {
		p, err := ParseNamingPolicy(s.Policy)
		if err != nil {
			return err
		}
		cfg.Policy = p
	}
	if s.Extensions != "" {
		e, err := ParseExtensionSet(s.Extensions)
		if err != nil {
			return err
		}
		cfg.Extensions = e
	}
	if s.Color != "" {
		m, err := ParseColorMode(s.Color)
		if err != nil {
			return err
		}
		cfg.ColorMode = m
	}
	if s.LogFile != "" {
		cfg.LogFile = s.LogFile
	}
	if s.Verbose != nil {
		cfg.Verbose = *s.Verbose
	}
	return nil
}
