package pos

import (
	"errors"
	"strconv"
)

// DiscountKind tags a discount as percentage-based or a fixed amount
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

var (
	// ErrInvalidNumber is returned when a discount input is not a
	// parseable, non-negative number.
	ErrInvalidNumber = errors.New("discount value must be a non-negative number")

	// ErrPercentageOutOfRange is returned when a percentage discount
	// exceeds 100.
	ErrPercentageOutOfRange = errors.New("percentage discount must not exceed 100")
)

// Discount is a single percentage-or-fixed reduction applied to a cart
// subtotal. The zero-value discount is not valid; use DefaultDiscount.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// DefaultDiscount is the reset state: a zero percentage discount
func DefaultDiscount() Discount {
	return Discount{Kind: DiscountPercentage, Value: 0}
}

// ParseDiscount validates raw operator input and produces a discount.
// Non-numeric or negative input fails with ErrInvalidNumber; percentage
// values above 100 fail with ErrPercentageOutOfRange.
func ParseDiscount(input string, kind DiscountKind) (Discount, error) {
	value, err := strconv.ParseFloat(input, 64)
	if err != nil || value < 0 {
		return Discount{}, ErrInvalidNumber
	}

	if kind == DiscountPercentage && value > 100 {
		return Discount{}, ErrPercentageOutOfRange
	}

	return Discount{Kind: kind, Value: value}, nil
}

// Amount computes the discount amount against a subtotal. A fixed
// discount never exceeds the subtotal it is applied against.
func (d Discount) Amount(subtotal float64) float64 {
	switch d.Kind {
	case DiscountFixed:
		if d.Value > subtotal {
			return subtotal
		}
		return d.Value
	default:
		return subtotal * d.Value / 100
	}
}
