// =============================================================================
// Shipping Order Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser  (ColumnInfo)
//   - converter   (mapping table, converted rows, results)
//   - xlsxwriter  (converted rows)
//   - session     (conversion results)
//   - config      (field and operation parsing)
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// COLUMN INFORMATION
// =============================================================================

// ColumnInfo describes one column discovered in the header row of a source sheet.
type ColumnInfo struct {
	// Index is the 0-based column position.
	Index int `json:"index"`

	// Code is the spreadsheet-style letter code (A, B, ..., Z, AA, ...).
	Code string `json:"code"`

	// Title is the decoded header cell text.
	Title string `json:"title"`
}

// =============================================================================
// OUTPUT FIELDS
// =============================================================================

// Field identifies one of the seven output columns of a shipping order.
type Field int

const (
	FieldRecipientName Field = iota
	FieldRecipientPhone
	FieldDeliveryAddress
	FieldProductName
	FieldProductSpec
	FieldQuantity
	FieldRemarks
)

// AllFields lists the output fields in export column order.
var AllFields = []Field{
	FieldRecipientName,
	FieldRecipientPhone,
	FieldDeliveryAddress,
	FieldProductName,
	FieldProductSpec,
	FieldQuantity,
	FieldRemarks,
}

var fieldNames = map[Field]string{
	FieldRecipientName:   "recipient_name",
	FieldRecipientPhone:  "recipient_phone",
	FieldDeliveryAddress: "delivery_address",
	FieldProductName:     "product_name",
	FieldProductSpec:     "product_spec",
	FieldQuantity:        "quantity",
	FieldRemarks:         "remarks",
}

// String returns the configuration name of the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField resolves a configuration name such as "recipient_phone".
// Unknown names are rejected.
func ParseField(name string) (Field, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for field, fieldName := range fieldNames {
		if fieldName == normalized {
			return field, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidMapping, name)
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Operation selects how the values of several source columns are combined
// into one output value.
type Operation string

const (
	OpConcat   Operation = "concat"
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// ParseOperation resolves an operation name. An empty name means concat.
func ParseOperation(name string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(name))); op {
	case "":
		return OpConcat, nil
	case OpConcat, OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, nil
	default:
		return "", fmt.Errorf("%w: unknown operation %q", ErrInvalidMapping, name)
	}
}

// IsArithmetic reports whether the operation parses its inputs as numbers.
func (o Operation) IsArithmetic() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// =============================================================================
// MAPPINGS
// =============================================================================

// ColumnMapping derives one output field from one or more source columns.
type ColumnMapping struct {
	// SourceIndices are 0-based source column indices, in combination order.
	SourceIndices []int `json:"source_indices"`

	// Operation combines the decoded values of the source columns.
	Operation Operation `json:"operation"`
}

// MappingTable associates output fields with their column mapping.
// Fields absent from the table keep their default value.
type MappingTable map[Field]ColumnMapping

// =============================================================================
// CONVERTED ROWS
// =============================================================================

// ConvertedRow is one normalized shipping order.
type ConvertedRow struct {
	RecipientName   string `json:"recipient_name"`
	RecipientPhone  string `json:"recipient_phone"`
	DeliveryAddress string `json:"delivery_address"`
	ProductName     string `json:"product_name"`
	ProductSpec     string `json:"product_spec"`
	Quantity        string `json:"quantity"`
	Remarks         string `json:"remarks"`

	// GroupID is 0 for rows that are not part of a duplicate group, otherwise
	// a positive id shared by all rows with the same identity key.
	GroupID int `json:"group_id"`
}

// NewConvertedRow returns a row holding the default value of every field.
func NewConvertedRow() ConvertedRow {
	return ConvertedRow{Quantity: "1"}
}

// Get returns the value of a field.
func (r *ConvertedRow) Get(f Field) string {
	switch f {
	case FieldRecipientName:
		return r.RecipientName
	case FieldRecipientPhone:
		return r.RecipientPhone
	case FieldDeliveryAddress:
		return r.DeliveryAddress
	case FieldProductName:
		return r.ProductName
	case FieldProductSpec:
		return r.ProductSpec
	case FieldQuantity:
		return r.Quantity
	case FieldRemarks:
		return r.Remarks
	}
	return ""
}

// Set assigns the value of a field.
func (r *ConvertedRow) Set(f Field, value string) {
	switch f {
	case FieldRecipientName:
		r.RecipientName = value
	case FieldRecipientPhone:
		r.RecipientPhone = value
	case FieldDeliveryAddress:
		r.DeliveryAddress = value
	case FieldProductName:
		r.ProductName = value
	case FieldProductSpec:
		r.ProductSpec = value
	case FieldQuantity:
		r.Quantity = value
	case FieldRemarks:
		r.Remarks = value
	}
}

// Key returns the identity key of the row.
func (r *ConvertedRow) Key() IdentityKey {
	return IdentityKey{
		Name:    r.RecipientName,
		Phone:   r.RecipientPhone,
		Address: r.DeliveryAddress,
	}
}

// Values returns the seven field values in export column order.
func (r *ConvertedRow) Values() []string {
	values := make([]string, len(AllFields))
	for i, f := range AllFields {
		values[i] = r.Get(f)
	}
	return values
}

// IdentityKey is the (name, phone, address) tuple used to detect duplicates.
type IdentityKey struct {
	Name    string
	Phone   string
	Address string
}

// IsEmpty reports whether all three components are empty.
func (k IdentityKey) IsEmpty() bool {
	return k.Name == "" && k.Phone == "" && k.Address == ""
}

// Compare orders keys lexicographically by name, then phone, then address.
func (k IdentityKey) Compare(other IdentityKey) int {
	if c := strings.Compare(k.Name, other.Name); c != 0 {
		return c
	}
	if c := strings.Compare(k.Phone, other.Phone); c != 0 {
		return c
	}
	return strings.Compare(k.Address, other.Address)
}

// =============================================================================
// CONVERSION RESULT
// =============================================================================

// ConversionResult is the outcome of converting (or merging) a row set.
type ConversionResult struct {
	Rows      []ConvertedRow `json:"rows"`
	TotalRows int            `json:"total_rows"`

	// HasDuplicates is true when DuplicateCount > 0.
	HasDuplicates bool `json:"has_duplicates"`

	// DuplicateCount is the number of rows that belong to a group of size >= 2.
	DuplicateCount int `json:"duplicate_count"`
}
