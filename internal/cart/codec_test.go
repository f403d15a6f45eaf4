package cart

import (
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 3, Name: "c", UnitPrice: decimal.RequireFromString("19.99"), ImageRef: "/images/product3.jpg", Quantity: 1},
		{ProductID: 1, Name: "a", UnitPrice: decimal.RequireFromString("5"), ImageRef: "/images/product1.jpg", Quantity: 4},
	}

	data, err := Encode(lines)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range lines {
		assert.Equal(t, lines[i].ProductID, got[i].ProductID)
		assert.Equal(t, lines[i].Quantity, got[i].Quantity)
		assert.Equal(t, lines[i].ImageRef, got[i].ImageRef)
		assert.True(t, lines[i].UnitPrice.Equal(got[i].UnitPrice))
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestEncode_WireShape(t *testing.T) {
	data, err := Encode([]domain.CartLine{
		{ProductID: 1, Name: "a", UnitPrice: decimal.RequireFromString("10"), ImageRef: "/img", Quantity: 2},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"a","price":"10","image":"/img","quantity":2}]`, string(data))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"object instead of array", `{"id":1}`},
		{"duplicate id", `[{"id":1,"price":"1","quantity":1},{"id":1,"price":"1","quantity":2}]`},
		{"zero quantity", `[{"id":1,"price":"1","quantity":0}]`},
		{"negative price", `[{"id":1,"price":"-1","quantity":1}]`},
		{"wrong type", `[{"id":"x","price":"1","quantity":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.payload))
			require.ErrorIs(t, err, ErrMalformedCart)
			assert.Nil(t, got)
		})
	}
}

func TestDecode_NumericPrice(t *testing.T) {
	got, err := Decode([]byte(`[{"id":1,"name":"a","price":10.5,"quantity":2}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10.50", got[0].UnitPrice.StringFixed(2))
}
