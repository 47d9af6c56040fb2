package localstore

import (
	"sync"

	"github.com/elcoders/payment-portal/internal/models"
)

// Single slot: a new save overwrites any prior unfinished session.
type sessionsRepo struct {
	mu    sync.Mutex
	store *Store
	snap  models.SessionSnapshot
	has   bool
}

func newSessionsRepo(store *Store) *sessionsRepo {
	r := &sessionsRepo{store: store}
	r.has = store.Load(KeySession, &r.snap)
	return r
}

func (r *sessionsRepo) Get() (models.SessionSnapshot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.has {
		return models.SessionSnapshot{}, false, nil
	}
	return r.snap, true, nil
}

func (r *sessionsRepo) Put(s models.SessionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = s
	r.has = true
	r.store.Save(KeySession, s)
	return nil
}

func (r *sessionsRepo) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = models.SessionSnapshot{}
	r.has = false
	r.store.Remove(KeySession)
	return nil
}
