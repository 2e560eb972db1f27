package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ShipPack/internal/model"
)

// ResultFileVersion is written into every saved result file.
const ResultFileVersion = "1.0.0"

// ResultFile is the on-disk envelope of a saved packing result.
type ResultFile struct {
	Version   string           `json:"version"`
	CreatedAt string           `json:"created_at"`
	Source    string           `json:"source,omitempty"` // Box list the run was made from
	Catalog   model.Catalog    `json:"catalog"`
	Result    model.PackResult `json:"result"`
}

// SaveResult writes a packing result, together with the catalog it was packed
// against, to a JSON file at the specified path.
func SaveResult(path, source string, catalog model.Catalog, result model.PackResult) error {
	file := ResultFile{
		Version:   ResultFileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Source:    source,
		Catalog:   catalog,
		Result:    result,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// LoadResult reads a result file written by SaveResult.
func LoadResult(path string) (ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultFile{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var file ResultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return ResultFile{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	if file.Version == "" {
		return ResultFile{}, fmt.Errorf("invalid result file: missing version field")
	}
	return file, nil
}
