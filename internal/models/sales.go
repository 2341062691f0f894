package models

import "time"

// PaymentMethod represents how a POS order was paid
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// ValidPaymentMethod reports whether the value is a known payment method
func ValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	default:
		return false
	}
}

// Sale represents one finalized POS payment
type Sale struct {
	ID             string        `json:"id" db:"id"`
	SessionID      string        `json:"session_id" db:"session_id"`
	Subtotal       float64       `json:"subtotal" db:"subtotal"`
	DiscountAmount float64       `json:"discount_amount" db:"discount_amount"`
	Total          float64       `json:"total" db:"total"`
	Method         PaymentMethod `json:"method" db:"method"`
	PaidAt         time.Time     `json:"paid_at" db:"paid_at"`
}

// TopItem is one entry of the dashboard's best-seller list
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DashboardStats aggregates the headline numbers for the dashboard view
type DashboardStats struct {
	RevenueToday   float64        `json:"revenue_today"`
	SalesToday     int            `json:"sales_today"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	LowStockCount  int            `json:"low_stock_count"`
	TopItems       []TopItem      `json:"top_items"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
