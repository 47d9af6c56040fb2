package models

// FormData is the editable checkout form state snapshotted for recovery.
type FormData struct {
	Amount        string        `json:"amount"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	Reference     string        `json:"reference"`
	TransactionID string        `json:"transactionId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	BankAccount   BankAccount   `json:"bankAccount"`
	CryptoNetwork CryptoNetwork `json:"cryptoNetwork"`
}

// SessionSnapshot is the single-slot, browser-local cache of in-progress
// checkout state. Timestamp is unix milliseconds, as stored by the demo.
type SessionSnapshot struct {
	FormData       FormData `json:"formData"`
	PaymentStarted bool     `json:"paymentStarted"`
	PaymentID      string   `json:"paymentId,omitempty"`
	SelectedPreset string   `json:"selectedPreset,omitempty"`
	Timestamp      int64    `json:"timestamp"`
}

// Meaningful reports whether the snapshot is worth restoring: either a
// payment is in flight or at least one identifying field is populated.
func (s SessionSnapshot) Meaningful() bool {
	return s.PaymentStarted ||
		s.FormData.Amount != "" ||
		s.FormData.Email != "" ||
		s.FormData.Name != ""
}
