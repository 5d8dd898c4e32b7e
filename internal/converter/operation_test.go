package converter

import (
	"testing"

	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestApplyOperation(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		op     types.Operation
		want   string
	}{
		{"concat", []string{"北京市", "朝阳区", "1号"}, types.OpConcat, "北京市朝阳区1号"},
		{"concat with empty value", []string{"a", "", "b"}, types.OpConcat, "ab"},
		{"concat no values", nil, types.OpConcat, ""},
		{"add", []string{"1", "2.5", "3"}, types.OpAdd, "6.5"},
		{"add skips text", []string{"3", "abc", "4"}, types.OpAdd, "7"},
		{"add all unparseable", []string{"x", ""}, types.OpAdd, ""},
		{"add whole result", []string{"0.5", "0.5"}, types.OpAdd, "1"},
		{"subtract", []string{"10", "3", "2"}, types.OpSubtract, "5"},
		{"subtract single", []string{"x", "7.25"}, types.OpSubtract, "7.25"},
		{"subtract none", []string{"x"}, types.OpSubtract, ""},
		{"multiply", []string{"2", "3", "x", "4"}, types.OpMultiply, "24"},
		{"multiply all unparseable", []string{"x"}, types.OpMultiply, ""},
		{"divide", []string{"10", "4"}, types.OpDivide, "2.5"},
		{"divide skips zero", []string{"10", "0", "4"}, types.OpDivide, "2.5"},
		{"divide single", []string{"9"}, types.OpDivide, "9"},
		{"divide zero dividend", []string{"0", "5"}, types.OpDivide, "0"},
		{"divide no values", nil, types.OpDivide, ""},
		{"unknown falls back to concat", []string{"1", "2"}, types.Operation("modulo"), "12"},
		{"zero value is concat", []string{"1", "2"}, types.Operation(""), "12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplyOperation(tc.values, tc.op))
		})
	}
}
