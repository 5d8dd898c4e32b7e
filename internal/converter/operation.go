// =============================================================================
// Shipping Order Converter - Operation Engine
// =============================================================================
//
// This module combines the decoded values of several source columns into the
// single value of one output field.
//
// OPERATIONS:
//   - concat   : join all values in order, no separator
//   - add      : sum of the numeric values
//   - subtract : first numeric value minus all later ones
//   - multiply : product of the numeric values
//   - divide   : first numeric value divided by each later one; zero divisors
//                are skipped
//
// Arithmetic operations silently drop values that do not parse as numbers.
// When nothing is left the result is "". A malformed cell never aborts the
// row.
//
// EXAMPLE:
//   values ["3", "abc", "4"], add      -> "7"
//   values ["10", "0", "4"],  divide   -> "2.5"
//   values ["北京市", "朝阳区"], concat -> "北京市朝阳区"
//
// =============================================================================

package converter

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/xlsxparser"
)

// ApplyOperation combines values with the given operation.
//
// Unknown operations fall back to concat. Configuration loading rejects
// unknown names, so the fallback only covers zero values.
// TODO: return an error for unknown operations once mapping tables can only
// be built through config.ParseMappingTable.
func ApplyOperation(values []string, op types.Operation) string {
	if len(values) == 0 {
		return ""
	}

	if !op.IsArithmetic() {
		return strings.Join(values, "")
	}

	nums := parseNumbers(values)
	if len(nums) == 0 {
		return ""
	}

	result := nums[0]
	switch op {
	case types.OpAdd:
		for _, n := range nums[1:] {
			result += n
		}
	case types.OpSubtract:
		for _, n := range nums[1:] {
			result -= n
		}
	case types.OpMultiply:
		for _, n := range nums[1:] {
			result *= n
		}
	case types.OpDivide:
		for _, n := range nums[1:] {
			if n != 0 {
				result /= n
			}
		}
	}

	return xlsxparser.FormatNumber(result)
}

// parseNumbers keeps the values that parse as floating-point numbers.
func parseNumbers(values []string) []float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}
