package localstore

import (
	"sync"

	"github.com/elcoders/payment-portal/internal/models"
)

type reportsRepo struct {
	mu      sync.Mutex
	store   *Store
	reports []models.ErrorReport
}

func newReportsRepo(store *Store) *reportsRepo {
	r := &reportsRepo{store: store}
	store.Load(KeyErrorReports, &r.reports)
	return r
}

func (r *reportsRepo) List() ([]models.ErrorReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ErrorReport, len(r.reports))
	copy(out, r.reports)
	return out, nil
}

func (r *reportsRepo) ReplaceAll(reports []models.ErrorReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = reports
	r.store.Save(KeyErrorReports, r.reports)
	return nil
}

func (r *reportsRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = nil
	r.store.Remove(KeyErrorReports)
	return nil
}
