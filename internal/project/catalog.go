package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ShipPack/internal/model"
	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a package catalog from a YAML (.yaml, .yml) or JSON file
// and validates it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog model.Catalog
	if isYAML(path) {
		err = yaml.Unmarshal(data, &catalog)
	} else {
		err = json.Unmarshal(data, &catalog)
	}
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", filepath.Base(path), err)
	}

	if err := catalog.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid catalog %s: %w", filepath.Base(path), err)
	}
	return catalog, nil
}

// SaveCatalog writes the catalog in the format implied by the file extension.
func SaveCatalog(path string, catalog model.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(catalog)
	} else {
		data, err = json.MarshalIndent(catalog, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
