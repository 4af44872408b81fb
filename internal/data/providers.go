package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
)

// ProviderDocument is the on-disk provider configuration shape.
type ProviderDocument struct {
	Providers []*model.Provider `json:"providers"`
}

// LoadProvidersJSON loads and validates a provider configuration document.
func LoadProvidersJSON(path string) ([]*model.Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers config: %w", err)
	}
	return ParseProviders(raw)
}

// ParseProviders decodes a provider document from raw JSON.
func ParseProviders(raw []byte) ([]*model.Provider, error) {
	var doc ProviderDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse providers config: %w", err)
	}
	for _, p := range doc.Providers {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Providers, nil
}
