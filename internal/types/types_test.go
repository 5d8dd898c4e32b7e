package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for _, f := range AllFields {
		parsed, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	parsed, err := ParseField(" Recipient_Phone ")
	require.NoError(t, err)
	assert.Equal(t, FieldRecipientPhone, parsed)

	_, err = ParseField("recipient_email")
	assert.True(t, errors.Is(err, ErrInvalidMapping))
}

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation("")
	require.NoError(t, err)
	assert.Equal(t, OpConcat, op)

	op, err = ParseOperation("DIVIDE")
	require.NoError(t, err)
	assert.Equal(t, OpDivide, op)
	assert.True(t, op.IsArithmetic())
	assert.False(t, OpConcat.IsArithmetic())

	_, err = ParseOperation("modulo")
	assert.ErrorIs(t, err, ErrInvalidMapping)
}

func TestConvertedRowFieldAccess(t *testing.T) {
	row := NewConvertedRow()
	assert.Equal(t, "1", row.Quantity)

	for i, f := range AllFields {
		row.Set(f, string(rune('a'+i)))
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, row.Values())
	assert.Equal(t, IdentityKey{Name: "a", Phone: "b", Address: "c"}, row.Key())
}

func TestIdentityKeyCompare(t *testing.T) {
	a := IdentityKey{Name: "A", Phone: "1", Address: "X"}
	b := IdentityKey{Name: "A", Phone: "1", Address: "Y"}
	c := IdentityKey{Name: "B", Phone: "0", Address: "A"}

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.True(t, IdentityKey{}.IsEmpty())
	assert.False(t, a.IsEmpty())
}
