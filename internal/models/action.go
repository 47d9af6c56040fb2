package models

type ActionType string

const (
	ActionCreatePayment ActionType = "CREATE_PAYMENT"
	ActionVerifyPayment ActionType = "VERIFY_PAYMENT"
)

// QueuedAction is a store mutation captured while offline. Data mirrors the
// corresponding store call: a draft record for creates, a record carrying
// the payment id for verifies. Timestamp is unix milliseconds.
type QueuedAction struct {
	ID        string        `json:"id"`
	Type      ActionType    `json:"type"`
	Data      PaymentRecord `json:"data"`
	Timestamp int64         `json:"timestamp"`
}
