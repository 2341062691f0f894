package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    DiscountKind
		want    Discount
		wantErr error
	}{
		{name: "valid percentage", input: "10", kind: DiscountPercentage, want: Discount{Kind: DiscountPercentage, Value: 10}},
		{name: "full percentage", input: "100", kind: DiscountPercentage, want: Discount{Kind: DiscountPercentage, Value: 100}},
		{name: "valid fixed", input: "7.25", kind: DiscountFixed, want: Discount{Kind: DiscountFixed, Value: 7.25}},
		{name: "zero", input: "0", kind: DiscountPercentage, want: Discount{Kind: DiscountPercentage, Value: 0}},
		{name: "not a number", input: "abc", kind: DiscountFixed, wantErr: ErrInvalidNumber},
		{name: "empty", input: "", kind: DiscountPercentage, wantErr: ErrInvalidNumber},
		{name: "negative", input: "-5", kind: DiscountFixed, wantErr: ErrInvalidNumber},
		{name: "percentage above 100", input: "100.5", kind: DiscountPercentage, wantErr: ErrPercentageOutOfRange},
		{name: "fixed above 100 is fine", input: "250", kind: DiscountFixed, want: Discount{Kind: DiscountFixed, Value: 250}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDiscount(tt.input, tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		discount Discount
		subtotal float64
		want     float64
	}{
		{name: "percentage", discount: Discount{Kind: DiscountPercentage, Value: 25}, subtotal: 80, want: 20},
		{name: "zero percentage", discount: DefaultDiscount(), subtotal: 80, want: 0},
		{name: "hundred percent", discount: Discount{Kind: DiscountPercentage, Value: 100}, subtotal: 80, want: 80},
		{name: "fixed below subtotal", discount: Discount{Kind: DiscountFixed, Value: 15}, subtotal: 80, want: 15},
		{name: "fixed clamped to subtotal", discount: Discount{Kind: DiscountFixed, Value: 120}, subtotal: 80, want: 80},
		{name: "fixed on empty cart", discount: Discount{Kind: DiscountFixed, Value: 5}, subtotal: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.discount.Amount(tt.subtotal))
		})
	}
}
