package localstore

import (
	"sync"

	"github.com/elcoders/payment-portal/internal/models"
)

type paymentsRepo struct {
	mu      sync.RWMutex
	store   *Store
	records []models.PaymentRecord
}

func newPaymentsRepo(store *Store) *paymentsRepo {
	r := &paymentsRepo{store: store}
	store.Load(KeyPayments, &r.records)
	return r
}

func (r *paymentsRepo) persist() {
	r.store.Save(KeyPayments, r.records)
}

func (r *paymentsRepo) List() ([]models.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PaymentRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *paymentsRepo) GetByID(id string) (models.PaymentRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.records {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.PaymentRecord{}, false, nil
}

func (r *paymentsRepo) Insert(p models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, p)
	r.persist()
	return nil
}

func (r *paymentsRepo) Replace(p models.PaymentRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == p.ID {
			r.records[i] = p
			r.persist()
			return true, nil
		}
	}
	return false, nil
}

func (r *paymentsRepo) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			r.persist()
			return true, nil
		}
	}
	return false, nil
}

func (r *paymentsRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
	r.persist()
	return nil
}
