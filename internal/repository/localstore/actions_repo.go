package localstore

import (
	"sync"

	"github.com/elcoders/payment-portal/internal/models"
)

type actionsRepo struct {
	mu      sync.Mutex
	store   *Store
	actions []models.QueuedAction
}

func newActionsRepo(store *Store) *actionsRepo {
	r := &actionsRepo{store: store}
	store.Load(KeyOfflineActions, &r.actions)
	return r
}

func (r *actionsRepo) List() ([]models.QueuedAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.QueuedAction, len(r.actions))
	copy(out, r.actions)
	return out, nil
}

func (r *actionsRepo) Append(a models.QueuedAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
	r.store.Save(KeyOfflineActions, r.actions)
	return nil
}

func (r *actionsRepo) ReplaceAll(actions []models.QueuedAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = actions
	r.store.Save(KeyOfflineActions, r.actions)
	return nil
}

func (r *actionsRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
	r.store.Save(KeyOfflineActions, []models.QueuedAction{})
	return nil
}
