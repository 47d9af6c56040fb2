package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elcoders/payment-portal/internal/metrics"
	"github.com/elcoders/payment-portal/internal/models"
	repo "github.com/elcoders/payment-portal/internal/repository"
)

// Delays simulate gateway latency around each store call. The zero value
// disables simulation (used by tests).
type Delays struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Verify time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultDelays matches the latency the demo backend always exhibited.
func DefaultDelays() Delays {
	return Delays{
		List:   500 * time.Millisecond,
		Get:    300 * time.Millisecond,
		Create: 800 * time.Millisecond,
		Verify: 2 * time.Second,
		Update: 500 * time.Millisecond,
		Delete: 500 * time.Millisecond,
	}
}

// PaymentService is the simulated payment backend: the sole source of truth
// the rest of the portal reads from.
type PaymentService struct {
	repo   repo.Payments
	delays Delays
	now    func() time.Time
	log    *slog.Logger
}

func NewPaymentService(r repo.Payments, delays Delays, log *slog.Logger) *PaymentService {
	return &PaymentService{repo: r, delays: delays, now: time.Now, log: log}
}

// wait blocks for the simulated latency, or until ctx is done.
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// List returns all records in insertion order. Never fails.
func (s *PaymentService) List(ctx context.Context) []models.PaymentRecord {
	wait(ctx, s.delays.List)
	records, err := s.repo.List()
	if err != nil {
		s.log.Warn("payments list failed", "err", err)
		return nil
	}
	return records
}

// Search filters the listing by a case-insensitive substring over
// reference, name, email and transaction id.
func (s *PaymentService) Search(ctx context.Context, term string) []models.PaymentRecord {
	all := s.List(ctx)
	if term == "" {
		return all
	}
	out := make([]models.PaymentRecord, 0, len(all))
	for _, p := range all {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out
}

// GetByID returns nil for an empty id or an unknown record; it never errors
// on a miss.
func (s *PaymentService) GetByID(ctx context.Context, id string) *models.PaymentRecord {
	if id == "" {
		s.log.Warn("get payment called without id")
		return nil
	}
	wait(ctx, s.delays.Get)
	p, ok, err := s.repo.GetByID(id)
	if err != nil || !ok {
		return nil
	}
	return &p
}

// Create assigns a fresh id, stamps the write time, forces status pending
// and appends. Rapid identical calls intentionally produce distinct records.
func (s *PaymentService) Create(ctx context.Context, draft models.PaymentRecord) (models.PaymentRecord, error) {
	wait(ctx, s.delays.Create)

	draft.ID = uuid.NewString()
	draft.Status = models.StatusPending
	if draft.Date == "" {
		draft.Date = models.NowISO(s.now())
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = models.MethodBank
	}
	if err := s.repo.Insert(draft); err != nil {
		return models.PaymentRecord{}, err
	}
	metrics.PaymentsCreated.WithLabelValues(string(draft.PaymentMethod)).Inc()
	s.log.Info("payment created", "id", draft.ID, "reference", draft.Reference)
	return draft, nil
}

// Verify merges the patch into the record with the given id and forces
// status completed. An unknown id does not fail: a minimally-valid record is
// synthesized around the patch and inserted, so a lost or mismatched id
// never loses the verification data.
func (s *PaymentService) Verify(ctx context.Context, id string, patch models.PaymentPatch) (models.PaymentRecord, error) {
	if id == "" {
		return models.PaymentRecord{}, errors.New("payment id is required for verification")
	}
	wait(ctx, s.delays.Verify)

	completed := models.StatusCompleted
	date := models.NowISO(s.now())

	existing, ok, err := s.repo.GetByID(id)
	if err != nil {
		return models.PaymentRecord{}, err
	}
	if ok {
		existing.Apply(patch)
		existing.Status = completed
		existing.Date = date
		if _, err := s.repo.Replace(existing); err != nil {
			return models.PaymentRecord{}, err
		}
		metrics.PaymentsVerified.Inc()
		s.log.Info("payment verified", "id", id)
		return existing, nil
	}

	synthesized := models.PaymentRecord{
		ID:            id,
		Amount:        "0",
		PaymentMethod: models.MethodBank,
		Status:        completed,
		Date:          date,
	}
	synthesized.Apply(patch)
	synthesized.ID = id
	synthesized.Status = completed
	if err := s.repo.Insert(synthesized); err != nil {
		return models.PaymentRecord{}, err
	}
	metrics.PaymentsVerified.Inc()
	metrics.VerifySynthesized.Inc()
	s.log.Warn("verify synthesized record for unknown id", "id", id)
	return synthesized, nil
}

// Update applies a partial update; nil on unknown id, never an error for a
// miss.
func (s *PaymentService) Update(ctx context.Context, id string, patch models.PaymentPatch) *models.PaymentRecord {
	if id == "" {
		s.log.Warn("update payment called without id")
		return nil
	}
	wait(ctx, s.delays.Update)
	p, ok, err := s.repo.GetByID(id)
	if err != nil || !ok {
		return nil
	}
	p.Apply(patch)
	if _, err := s.repo.Replace(p); err != nil {
		return nil
	}
	return &p
}

// Delete removes a record; false on unknown id.
func (s *PaymentService) Delete(ctx context.Context, id string) bool {
	if id == "" {
		s.log.Warn("delete payment called without id")
		return false
	}
	wait(ctx, s.delays.Delete)
	ok, err := s.repo.Delete(id)
	if err != nil {
		return false
	}
	return ok
}

// Purge wipes the record set. Admin-only.
func (s *PaymentService) Purge(ctx context.Context) error {
	return s.repo.DeleteAll()
}
