package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"canteen-system/internal/models"
)

var (
	// ErrEmptyOrder is returned when payment is attempted on an empty cart.
	ErrEmptyOrder = errors.New("cannot process payment for an empty order")

	// ErrInvalidPaymentMethod is returned for unknown payment methods.
	ErrInvalidPaymentMethod = errors.New("payment method must be one of: cash, card, mobile")
)

// Confirmation is the operator-facing receipt of a finalized payment
type Confirmation struct {
	SessionID string  `json:"session_id"`
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount_amount"`
	Total     float64 `json:"total"`
	Method    string  `json:"method"`
	PaidAt    string  `json:"paid_at"`
}

// FinalizePayment charges the session's current total against the chosen
// method, records the sale, and resets the cart and discount. There is no
// gateway behind this call; a non-empty cart always pays successfully
// unless the sale cannot be recorded. A finalized payment does not enter
// the order queue.
func (r *Register) FinalizePayment(ctx context.Context, sessionID, method string) (*Confirmation, error) {
	if !models.ValidPaymentMethod(method) {
		return nil, ErrInvalidPaymentMethod
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if cart.Empty() {
		return nil, ErrEmptyOrder
	}

	totals := cart.Totals()
	paidAt := time.Now().UTC()

	sale := &models.Sale{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		Method:         models.PaymentMethod(method),
		PaidAt:         paidAt,
	}

	if err := r.recorder.RecordSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	cart.Clear()

	return &Confirmation{
		SessionID: sessionID,
		Subtotal:  sale.Subtotal,
		Discount:  sale.DiscountAmount,
		Total:     sale.Total,
		Method:    method,
		PaidAt:    paidAt.Format(time.RFC3339),
	}, nil
}
