package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FederatedProvider describes one federated sign-in provider offered to
// users.
type FederatedProvider struct {
	Kind  string `yaml:"kind" json:"kind"`
	Label string `yaml:"label" json:"label"`
}

// ProviderCatalog is the set of federated providers this deployment offers.
type ProviderCatalog struct {
	Providers []FederatedProvider `yaml:"providers"`
}

// defaultCatalog matches the providers the product ships with.
var defaultCatalog = ProviderCatalog{
	Providers: []FederatedProvider{
		{Kind: "google", Label: "Google"},
		{Kind: "facebook", Label: "Facebook"},
	},
}

// LoadProviderCatalog reads the federated provider catalog from path. A
// missing file yields the built-in default catalog; a malformed one is an
// error.
func LoadProviderCatalog(path string) (*ProviderCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			catalog := defaultCatalog
			return &catalog, nil
		}
		return nil, fmt.Errorf("failed to read provider catalog: %w", err)
	}

	var catalog ProviderCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse provider catalog: %w", err)
	}

	if len(catalog.Providers) == 0 {
		return nil, fmt.Errorf("provider catalog %s lists no providers", path)
	}
	for _, p := range catalog.Providers {
		if p.Kind == "" {
			return nil, fmt.Errorf("provider catalog %s contains an entry without a kind", path)
		}
	}

	return &catalog, nil
}

// Contains reports whether the catalog offers the given provider kind.
func (c *ProviderCatalog) Contains(kind string) bool {
	for _, p := range c.Providers {
		if p.Kind == kind {
			return true
		}
	}
	return false
}
