package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CollectionConfig enables LINE features on one admin collection.
type CollectionConfig struct {
	Slug             string `yaml:"slug"`
	// LineIDField is the dotted path of the recipient LINE id in the record.
	LineIDField      string `yaml:"line_id_field"`
	EnableSendButton bool   `yaml:"enable_send_button"`

	// AutoSendStatus is the record status that triggers an automatic send.
	AutoSendStatus string `yaml:"auto_send_status"`
	Locale         string `yaml:"locale"`
}

// CollectionsConfig is the collections YAML document.
type CollectionsConfig struct {
	Collections []CollectionConfig `yaml:"collections"`
}

// DefaultCollectionsConfig enables the payroll report hook with its defaults.
func DefaultCollectionsConfig() *CollectionsConfig {
	return &CollectionsConfig{
		Collections: []CollectionConfig{{
			Slug:             "payroll-reports",
			LineIDField:      "employee.lineId",
			EnableSendButton: true,
			AutoSendStatus:   "approved",
		}},
	}
}

// LoadCollectionsConfig loads the collections YAML file. An empty path yields
// DefaultCollectionsConfig.
// The path parameter is expected to come from a trusted source (environment or hardcoded default).
func LoadCollectionsConfig(path string) (*CollectionsConfig, error) {
	if path == "" {
		return DefaultCollectionsConfig(), nil
	}

	// #nosec G304 -- path is provided by trusted source (environment), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collections file: %w", err)
	}

	var cfg CollectionsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse collections file: %w", err)
	}

	for i := range cfg.Collections {
		if cfg.Collections[i].AutoSendStatus == "" {
			cfg.Collections[i].AutoSendStatus = "approved"
		}
		if cfg.Collections[i].LineIDField == "" {
			cfg.Collections[i].LineIDField = "employee.lineId"
		}
	}

	if err := validateCollectionsConfig(&cfg); err != nil {
		return nil, fmt.Errorf("collections validation failed: %w", err)
	}

	return &cfg, nil
}

func validateCollectionsConfig(cfg *CollectionsConfig) error {
	seen := make(map[string]bool, len(cfg.Collections))
	for i, c := range cfg.Collections {
		if c.Slug == "" {
			return fmt.Errorf("collections[%d]: slug is required", i)
		}
		if seen[c.Slug] {
			return fmt.Errorf("collections[%d]: duplicate slug %q", i, c.Slug)
		}
		seen[c.Slug] = true
	}
	return nil
}

// Lookup returns the collection with the given slug.
func (c *CollectionsConfig) Lookup(slug string) (CollectionConfig, bool) {
	for _, col := range c.Collections {
		if col.Slug == slug {
			return col, true
		}
	}
	return CollectionConfig{}, false
}
