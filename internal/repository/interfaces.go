package repository

import (
	"github.com/elcoders/payment-portal/internal/models"
)

// Payments is the persisted record set behind the payment store. Order is
// insertion order. Implementations soft-fail persistence: the in-memory
// copy stays authoritative when a write to the backing store fails.
type Payments interface {
	List() ([]models.PaymentRecord, error)
	GetByID(id string) (models.PaymentRecord, bool, error)
	Insert(p models.PaymentRecord) error
	// Replace swaps the record with the same id; false when absent.
	Replace(p models.PaymentRecord) (bool, error)
	Delete(id string) (bool, error)
	DeleteAll() error
}

// Sessions is the single-slot snapshot store for checkout recovery.
// Get returns false for a missing or unparseable snapshot.
type Sessions interface {
	Get() (models.SessionSnapshot, bool, error)
	Put(s models.SessionSnapshot) error
	Delete() error
}

// OfflineActions is the persisted queue of deferred store mutations.
type OfflineActions interface {
	List() ([]models.QueuedAction, error)
	Append(a models.QueuedAction) error
	ReplaceAll(actions []models.QueuedAction) error
	Clear() error
}

// ErrorReports is the capped client-error log.
type ErrorReports interface {
	List() ([]models.ErrorReport, error)
	ReplaceAll(reports []models.ErrorReport) error
	Clear() error
}
