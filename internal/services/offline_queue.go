package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elcoders/payment-portal/internal/metrics"
	"github.com/elcoders/payment-portal/internal/models"
	repo "github.com/elcoders/payment-portal/internal/repository"
	"github.com/elcoders/payment-portal/internal/worker"
)

const (
	actionMaxAge     = 24 * time.Hour
	queueSweepTick   = time.Minute
	replayDelayFixed = 2 * time.Second
)

// OfflineQueue buffers create/verify intents while the portal reports no
// connectivity and replays them into the payment store once it returns.
// Replay is best-effort: each action is applied once, oldest first, errors
// are reported but never retried, and the queue is cleared afterwards.
type OfflineQueue struct {
	mu          sync.Mutex
	repo        repo.OfflineActions
	payments    *PaymentService
	reports     *ReportService
	pool        *worker.Pool
	online      bool
	replayDelay time.Duration
	now         func() time.Time
	log         *slog.Logger
}

func NewOfflineQueue(r repo.OfflineActions, payments *PaymentService, reports *ReportService, pool *worker.Pool, log *slog.Logger) *OfflineQueue {
	q := &OfflineQueue{
		repo:        r,
		payments:    payments,
		reports:     reports,
		pool:        pool,
		online:      true,
		replayDelay: replayDelayFixed,
		now:         time.Now,
		log:         log,
	}
	q.updateDepth()
	return q
}

func (q *OfflineQueue) updateDepth() {
	if actions, err := q.repo.List(); err == nil {
		metrics.OfflineQueueDepth.Set(float64(len(actions)))
	}
}

func (q *OfflineQueue) Online() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.online
}

// SetOnline flips the connectivity flag. An offline-to-online transition
// with a non-empty queue schedules a replay after the fixed delay.
func (q *OfflineQueue) SetOnline(online bool) {
	q.mu.Lock()
	wasOnline := q.online
	q.online = online
	q.mu.Unlock()

	if online && !wasOnline {
		actions, err := q.repo.List()
		if err != nil || len(actions) == 0 {
			return
		}
		q.log.Info("back online, scheduling replay", "queued", len(actions))
		q.pool.Submit(func() { q.replay() })
	}
}

// Enqueue captures a deferred store mutation with a random id and the
// enqueue timestamp. Append order is the only ordering kept.
func (q *OfflineQueue) Enqueue(t models.ActionType, data models.PaymentRecord) models.QueuedAction {
	action := models.QueuedAction{
		ID:        uuid.NewString(),
		Type:      t,
		Data:      data,
		Timestamp: q.now().UnixMilli(),
	}
	if err := q.repo.Append(action); err != nil {
		q.log.Warn("offline enqueue persist failed", "err", err)
	}
	q.updateDepth()
	q.log.Info("action queued for replay", "type", t, "id", action.ID)
	return action
}

func (q *OfflineQueue) Actions() []models.QueuedAction {
	actions, err := q.repo.List()
	if err != nil {
		q.log.Warn("offline actions load failed", "err", err)
		return nil
	}
	return actions
}

// replay applies every queued action to the store in enqueue order, then
// clears the queue regardless of individual outcomes.
func (q *OfflineQueue) replay() {
	time.Sleep(q.replayDelay)

	actions, err := q.repo.List()
	if err != nil || len(actions) == 0 {
		return
	}

	ctx := context.Background()
	for _, a := range actions {
		var err error
		switch a.Type {
		case models.ActionCreatePayment:
			_, err = q.payments.Create(ctx, a.Data)
		case models.ActionVerifyPayment:
			patch := patchFromRecord(a.Data)
			_, err = q.payments.Verify(ctx, a.Data.ID, patch)
		default:
			q.log.Warn("unknown queued action type", "type", a.Type)
			continue
		}
		if err != nil {
			metrics.OfflineReplayed.WithLabelValues(string(a.Type), "error").Inc()
			q.log.Warn("queued action replay failed", "type", a.Type, "id", a.ID, "err", err)
			q.reports.Report(models.ErrorReport{
				Message: "offline replay failed: " + err.Error(),
				URL:     "offline-queue",
				Context: map[string]any{"actionId": a.ID, "type": string(a.Type)},
			})
			continue
		}
		metrics.OfflineReplayed.WithLabelValues(string(a.Type), "ok").Inc()
	}

	if err := q.repo.Clear(); err != nil {
		q.log.Warn("offline queue clear failed", "err", err)
	}
	q.updateDepth()
	q.log.Info("queued actions processed", "count", len(actions))
}

// Sweep drops actions older than 24 hours.
func (q *OfflineQueue) Sweep() {
	actions, err := q.repo.List()
	if err != nil {
		return
	}
	cutoff := q.now().UnixMilli() - actionMaxAge.Milliseconds()
	kept := actions[:0]
	for _, a := range actions {
		if a.Timestamp >= cutoff {
			kept = append(kept, a)
		}
	}
	if len(kept) != len(actions) {
		if err := q.repo.ReplaceAll(kept); err != nil {
			q.log.Warn("offline queue sweep persist failed", "err", err)
		}
		q.updateDepth()
	}
}

// Run sweeps expired actions once a minute until ctx ends.
func (q *OfflineQueue) Run(ctx context.Context) {
	t := time.NewTicker(queueSweepTick)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			q.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// patchFromRecord turns a queued verify payload back into the partial
// update the store call expects.
func patchFromRecord(p models.PaymentRecord) models.PaymentPatch {
	patch := models.PaymentPatch{}
	if p.Amount != "" {
		patch.Amount = &p.Amount
	}
	if p.Email != "" {
		patch.Email = &p.Email
	}
	if p.Name != "" {
		patch.Name = &p.Name
	}
	if p.Reference != "" {
		patch.Reference = &p.Reference
	}
	if p.TransactionID != "" {
		patch.TransactionID = &p.TransactionID
	}
	if p.PaymentMethod != "" {
		patch.PaymentMethod = &p.PaymentMethod
	}
	if p.BankAccount != "" {
		patch.BankAccount = &p.BankAccount
	}
	if p.CryptoNetwork != "" {
		patch.CryptoNetwork = &p.CryptoNetwork
	}
	if p.ExchangeRate != 0 {
		patch.ExchangeRate = &p.ExchangeRate
	}
	return patch
}
