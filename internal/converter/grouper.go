package converter

import (
	"slices"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
)

// GroupDuplicates sorts rows by identity key and tags every row whose key
// occurs more than once with a group id.
//
// GROUPING LOGIC:
//   - Rows are stably sorted by (name, phone, address) ascending; the result
//     keeps this order.
//   - Group ids start at 1 and are allocated in the order keys are first met
//     while walking the sorted rows.
//   - Rows with a unique key keep GroupID 0.
//   - DuplicateCount is the number of rows in groups of size >= 2, not the
//     number of groups.
//
// The input slice is not modified.
func GroupDuplicates(rows []types.ConvertedRow) types.ConversionResult {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b types.ConvertedRow) int {
		return a.Key().Compare(b.Key())
	})

	counts := make(map[types.IdentityKey]int, len(sorted))
	for i := range sorted {
		counts[sorted[i].Key()]++
	}

	groupIDs := make(map[types.IdentityKey]int)
	duplicateCount := 0
	for i := range sorted {
		key := sorted[i].Key()
		count := counts[key]
		if count < 2 {
			sorted[i].GroupID = 0
			continue
		}

		id, ok := groupIDs[key]
		if !ok {
			id = len(groupIDs) + 1
			groupIDs[key] = id
			duplicateCount += count
		}
		sorted[i].GroupID = id
	}

	if sorted == nil {
		sorted = []types.ConvertedRow{}
	}
	return types.ConversionResult{
		Rows:           sorted,
		TotalRows:      len(sorted),
		HasDuplicates:  duplicateCount > 0,
		DuplicateCount: duplicateCount,
	}
}
