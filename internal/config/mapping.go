package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/xlsxparser"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAPPING FILE STRUCTURE
// =============================================================================
//
// A mapping file tells the converter which source columns feed each output
// field and how several columns are combined:
//
//   mappings:
//     recipient_name:   { columns: [BM] }
//     recipient_phone:  { columns: [65] }
//     delivery_address: { columns: [BP, BQ, BR] }
//     quantity:         { columns: [F, G], operation: multiply }
//
// Columns are letter codes or 0-based indices. The operation defaults to
// concat. Unknown field names and operations are rejected.

// MappingFile is the YAML representation of a mapping table.
type MappingFile struct {
	Mappings map[string]MappingEntry `yaml:"mappings" validate:"required,min=1,dive,keys,oneof=recipient_name recipient_phone delivery_address product_name product_spec quantity remarks,endkeys"`
}

// MappingEntry maps one output field.
type MappingEntry struct {
	Columns   []ColumnRef `yaml:"columns" validate:"min=1"`
	Operation string      `yaml:"operation" validate:"omitempty,oneof=concat add subtract multiply divide"`
}

// ColumnRef is a source column given either as letter code or as index.
type ColumnRef struct {
	Index int
}

// UnmarshalYAML accepts scalars such as BM, "bm" or 64.
func (r *ColumnRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: column must be a letter code or an index", node.Line)
	}
	index, err := xlsxparser.ColumnIndex(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	r.Index = index
	return nil
}

// MarshalYAML writes the column as its letter code.
func (r ColumnRef) MarshalYAML() (interface{}, error) {
	return xlsxparser.ColumnCode(r.Index), nil
}

// =============================================================================
// MAPPING LOADING FUNCTIONS
// =============================================================================

// LoadMappingTable loads and validates a mapping file.
//
// RETURNS:
//   - The mapping table keyed by output field.
//   - An error wrapping types.ErrInvalidMapping if the file is malformed.
func LoadMappingTable(path string) (types.MappingTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	table, err := ParseMappingTable(data)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", path, err)
	}
	return table, nil
}

// ParseMappingTable parses mapping YAML.
func ParseMappingTable(data []byte) (types.MappingTable, error) {
	var file MappingFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidMapping, err)
	}
	return file.Table()
}

// Table validates the file and converts it to a mapping table.
func (m *MappingFile) Table() (types.MappingTable, error) {
	if err := validate.Struct(m); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidMapping, err)
	}

	table := make(types.MappingTable, len(m.Mappings))
	for name, entry := range m.Mappings {
		field, err := types.ParseField(name)
		if err != nil {
			return nil, err
		}
		op, err := types.ParseOperation(entry.Operation)
		if err != nil {
			return nil, err
		}

		if len(entry.Columns) == 0 {
			return nil, fmt.Errorf("%w: field %s has no columns", types.ErrInvalidMapping, name)
		}

		indices := make([]int, len(entry.Columns))
		for i, col := range entry.Columns {
			indices[i] = col.Index
		}
		table[field] = types.ColumnMapping{SourceIndices: indices, Operation: op}
	}
	return table, nil
}

// NewMappingFile converts a mapping table back into its YAML representation.
func NewMappingFile(table types.MappingTable) *MappingFile {
	file := &MappingFile{Mappings: make(map[string]MappingEntry, len(table))}
	for field, mapping := range table {
		cols := make([]ColumnRef, len(mapping.SourceIndices))
		for i, index := range mapping.SourceIndices {
			cols[i] = ColumnRef{Index: index}
		}
		file.Mappings[field.String()] = MappingEntry{Columns: cols, Operation: string(mapping.Operation)}
	}
	return file
}
