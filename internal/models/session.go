package models

import "time"

// Session status values. A session starts as "created" and moves to exactly
// one of the terminal states via a compare-and-swap on the store.
const (
	SessionStatusCreated   = "created"
	SessionStatusConfirmed = "confirmed"
	SessionStatusFailed    = "failed"
)

// Payment status values. Settlement is decoupled from confirmation: a
// cash-on-delivery session stays "unpaid" until the courier collects.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// PaymentMethodCOD tags every session; it is the only method this service handles.
const PaymentMethodCOD = "cash_on_delivery"

// CartItem is a single line of an incoming checkout request. The unit price
// is not part of the cart; it is resolved from the catalog at creation time.
type CartItem struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// LineItem is a cart line with its price frozen at session creation.
// UnitAmount is in integer minor currency units (cents).
type LineItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// Session represents a single checkout attempt tracked through confirmation.
type Session struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID        string     `json:"user_id" gorm:"type:varchar(100);index" validate:"required"`
	LineItems     []LineItem `json:"line_items" gorm:"serializer:json"`
	AmountTotal   int64      `json:"amount_total" validate:"gte=0"` // minor units, Σ(unit amount × quantity)
	Status        string     `json:"status" gorm:"type:varchar(20);index"`
	PaymentStatus string     `json:"payment_status" gorm:"type:varchar(20)"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(30)"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
