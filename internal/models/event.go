package models

// PaymentSuccessfulEvent is published to the "payment.successful" queue when
// a session is confirmed. Amount and Products come from the stored session,
// not the confirmation payload, so the event matches what was charged.
// Status starts as "pending": the order is confirmed but payment settles on
// physical delivery.
type PaymentSuccessfulEvent struct {
	UserID        string     `json:"userId"`
	Email         string     `json:"email"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	Products      []LineItem `json:"products"`
}

// Product event types consumed from the broker to keep the catalog in sync
// with the product service.
const (
	ProductEventCreated = "product.created"
	ProductEventDeleted = "product.deleted"
)

// ProductEvent is the payload of catalog maintenance messages on the
// "product.events" queue.
type ProductEvent struct {
	Event   string  `json:"event"`
	Product Product `json:"product"`
}
