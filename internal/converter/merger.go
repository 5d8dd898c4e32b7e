package converter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
)

// MultiValueSeparator joins values of merged rows. It is the full-width
// semicolon the upload template asks for.
const MultiValueSeparator = "；"

// MergeDuplicates collapses rows sharing an identity key into one order.
//
// Grouping is derived from the keys alone; incoming group ids are ignored.
// Output order is the order in which each key is first seen in rows.
//
// MERGE RULES (groups of two or more rows):
//   - product_name, product_spec, remarks: distinct non-empty values in
//     first-seen order, joined with MultiValueSeparator
//   - quantity: "1" per distinct product name when there is more than one,
//     otherwise the sum of all quantities (unparseable quantities count as 1)
//   - group_id: 0
//
// Single rows are copied with group_id 0.
func MergeDuplicates(rows []types.ConvertedRow) []types.ConvertedRow {
	var order []types.IdentityKey
	groups := make(map[types.IdentityKey][]types.ConvertedRow)
	for _, row := range rows {
		key := row.Key()
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	merged := make([]types.ConvertedRow, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			row := group[0]
			row.GroupID = 0
			merged = append(merged, row)
			continue
		}
		merged = append(merged, mergeGroup(key, group))
	}
	return merged
}

// MergeResult merges rows and wraps them in a result without duplicates.
func MergeResult(rows []types.ConvertedRow) types.ConversionResult {
	merged := MergeDuplicates(rows)
	return types.ConversionResult{
		Rows:      merged,
		TotalRows: len(merged),
	}
}

func mergeGroup(key types.IdentityKey, group []types.ConvertedRow) types.ConvertedRow {
	var names, specs, remarks []string
	total := uint64(0)
	for _, row := range group {
		names = appendDistinct(names, row.ProductName)
		specs = appendDistinct(specs, row.ProductSpec)
		remarks = appendDistinct(remarks, row.Remarks)
		total += parseQuantity(row.Quantity)
	}

	quantity := strconv.FormatUint(total, 10)
	if len(names) > 1 {
		quantity = strings.Repeat("1"+MultiValueSeparator, len(names)-1) + "1"
	}

	return types.ConvertedRow{
		RecipientName:   key.Name,
		RecipientPhone:  key.Phone,
		DeliveryAddress: key.Address,
		ProductName:     strings.Join(names, MultiValueSeparator),
		ProductSpec:     strings.Join(specs, MultiValueSeparator),
		Quantity:        quantity,
		Remarks:         strings.Join(remarks, MultiValueSeparator),
	}
}

func appendDistinct(values []string, v string) []string {
	if v == "" || slices.Contains(values, v) {
		return values
	}
	return append(values, v)
}

// parseQuantity reads a non-negative integer quantity, defaulting to 1.
func parseQuantity(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 1
	}
	return n
}
