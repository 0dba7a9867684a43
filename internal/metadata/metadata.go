// Package metadata loads the JSON schema document that declares the
// expected name and type of every table column.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Column describes a single column: its name, declared type tag and,
// for timestamp columns, an optional strftime datetime format.
type Column struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	DatetimeFormat string `json:"datetime_format,omitempty"`
}

// Schema is the ordered collection of column descriptions. It is loaded
// once per run and treated as read-only.
type Schema struct {
	Name    string
	Columns []Column
}

// Load reads a schema document from disk.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file %s: %w", path, err)
	}
	schema, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}
	return schema, nil
}

// Parse decodes a schema document. The document is either a bare JSON
// list of column descriptions or an object carrying a "columns" list
// alongside table-level fields.
func Parse(data []byte) (*Schema, error) {
	var columns []Column
	if err := json.Unmarshal(data, &columns); err == nil {
		return &Schema{Columns: columns}, nil
	}

	var doc struct {
		Name    string   `json:"name"`
		Columns []Column `json:"columns"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document is neither a column list nor a schema object: %w", err)
	}
	return &Schema{Name: doc.Name, Columns: doc.Columns}, nil
}

// Validate checks that every column description carries a name and a
// type. Callers may invoke it before enforcement; the enforcer itself
// does not depend on it.
func (s *Schema) Validate() error {
	for i, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("column %d has no name", i)
		}
		if col.Type == "" {
			return fmt.Errorf("column %q has no type", col.Name)
		}
	}
	return nil
}
