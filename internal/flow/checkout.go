// Package flow drives the two-phase payment form: collect details, create
// the pending record, await a self-reported transaction id inside a fixed
// 15-minute window, then verify.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/elcoders/payment-portal/internal/api/validate"
	"github.com/elcoders/payment-portal/internal/metrics"
	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/services"
)

type State string

const (
	StateCollecting    State = "collecting"
	StateAwaitingProof State = "awaiting_transaction_proof"
	StateVerifying     State = "verifying"
	StateCompleted     State = "completed"
	StateExpired       State = "expired"
)

// CountdownSeconds is the payment window: 900 one-second ticks.
const CountdownSeconds = 900

type Deps struct {
	Payments *services.PaymentService
	Sessions *services.SessionService
	Queue    *services.OfflineQueue
	Rates    *services.RateService
	Log      *slog.Logger
	// TickInterval drives the countdown; zero disables the internal ticker
	// so ticks can be injected.
	TickInterval time.Duration
}

// Checkout is the payment form state machine. Single-slot, like the session
// snapshot it persists itself into: starting over replaces, never stacks.
type Checkout struct {
	mu        sync.Mutex
	d         Deps
	state     State
	fields    models.FormData
	preset    string
	paymentID string
	countdown *Countdown
}

func NewCheckout(d Deps) *Checkout {
	c := &Checkout{d: d}
	c.reset()
	return c
}

func newReference() string {
	return fmt.Sprintf("ELC-%d", rand.IntN(1000000))
}

// reset returns the form to a pristine Collecting state with a fresh
// reference. Caller holds no lock or the lock.
func (c *Checkout) reset() {
	if c.countdown != nil {
		c.countdown.Stop()
		c.countdown = nil
	}
	c.state = StateCollecting
	c.paymentID = ""
	c.preset = ""
	c.fields = models.FormData{
		Reference:     newReference(),
		PaymentMethod: models.MethodBank,
		BankAccount:   models.BankAccess,
		CryptoNetwork: models.NetworkTRC20,
	}
}

// View is the externally visible form state.
type View struct {
	State          State           `json:"state"`
	Fields         models.FormData `json:"fields"`
	SelectedPreset string          `json:"selectedPreset,omitempty"`
	PaymentID      string          `json:"paymentId,omitempty"`
	SecondsLeft    int             `json:"secondsLeft"`
	Online         bool            `json:"online"`
}

func (c *Checkout) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Checkout) viewLocked() View {
	v := View{
		State:          c.state,
		Fields:         c.fields,
		SelectedPreset: c.preset,
		PaymentID:      c.paymentID,
		Online:         c.d.Queue.Online(),
	}
	if c.countdown != nil {
		v.SecondsLeft = c.countdown.Remaining()
	}
	return v
}

// SetFields applies form edits. The reference is session-stable and cannot
// be edited; choosing a preset overrides the amount, editing the amount by
// hand drops the preset. Every edit autosaves the recovery snapshot.
func (c *Checkout) SetFields(f models.FormData, preset string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateCollecting, StateAwaitingProof:
	default:
		return c.viewLocked(), fmt.Errorf("form is not editable in state %s", c.state)
	}

	if preset != "" && preset != c.preset {
		for _, a := range models.PresetAmounts {
			if a.ID == preset {
				f.Amount = fmt.Sprintf("%d", a.NGN)
				c.preset = preset
				break
			}
		}
	} else if f.Amount != c.fields.Amount {
		c.preset = ""
	}

	f.Reference = c.fields.Reference
	if f.PaymentMethod == "" {
		f.PaymentMethod = c.fields.PaymentMethod
	}
	if f.BankAccount == "" {
		f.BankAccount = c.fields.BankAccount
	}
	if f.CryptoNetwork == "" {
		f.CryptoNetwork = c.fields.CryptoNetwork
	}
	c.fields = f

	c.autosaveLocked()
	return c.viewLocked(), nil
}

func (c *Checkout) snapshotLocked() models.SessionSnapshot {
	return models.SessionSnapshot{
		FormData:       c.fields,
		PaymentStarted: c.state != StateCollecting && c.state != StateExpired,
		PaymentID:      c.paymentID,
		SelectedPreset: c.preset,
	}
}

func (c *Checkout) autosaveLocked() {
	snap := c.snapshotLocked()
	if snap.Meaningful() {
		c.d.Sessions.Save(snap)
	}
}

// Start moves Collecting to AwaitingTransactionProof: validates the
// required fields, creates the pending record and opens the payment window.
// While offline the create intent is queued instead and the form stays in
// Collecting; queued is true in that case.
func (c *Checkout) Start(ctx context.Context) (view View, queued bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCollecting {
		return c.viewLocked(), false, fmt.Errorf("payment already started")
	}

	var errs validate.Errs
	for _, check := range []struct{ field, value string }{
		{"amount", c.fields.Amount},
		{"email", c.fields.Email},
		{"name", c.fields.Name},
	} {
		if e := validate.Required(check.field, check.value); e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		return c.viewLocked(), false, errs
	}

	draft := c.draftLocked()

	if !c.d.Queue.Online() {
		c.d.Queue.Enqueue(models.ActionCreatePayment, draft)
		c.autosaveLocked()
		return c.viewLocked(), true, nil
	}

	created, err := c.d.Payments.Create(ctx, draft)
	if err != nil {
		// Stay in Collecting; the caller surfaces the error.
		return c.viewLocked(), false, err
	}

	c.paymentID = created.ID
	c.state = StateAwaitingProof
	c.countdown = NewCountdown(CountdownSeconds, c.expire)
	if c.d.TickInterval > 0 {
		go c.countdown.Run(c.d.TickInterval)
	}
	c.autosaveLocked()
	c.d.Log.Info("payment window opened", "paymentId", c.paymentID, "reference", c.fields.Reference)
	return c.viewLocked(), false, nil
}

// draftLocked builds the store payload from the current form, keeping only
// the rail detail matching the chosen method and snapshotting the rate.
func (c *Checkout) draftLocked() models.PaymentRecord {
	draft := models.PaymentRecord{
		Amount:        c.fields.Amount,
		Email:         c.fields.Email,
		Name:          c.fields.Name,
		Reference:     c.fields.Reference,
		TransactionID: c.fields.TransactionID,
		PaymentMethod: c.fields.PaymentMethod,
		Status:        models.StatusPending,
		ExchangeRate:  c.d.Rates.Current(),
	}
	switch c.fields.PaymentMethod {
	case models.MethodBank:
		draft.BankAccount = c.fields.BankAccount
	case models.MethodCrypto:
		draft.CryptoNetwork = c.fields.CryptoNetwork
	}
	return draft
}

// Verify moves AwaitingTransactionProof through Verifying to Completed. It
// needs the self-reported transaction id and the stored payment id. While
// offline the verify intent is queued and the window stays open. A failed
// verification drops back to AwaitingTransactionProof.
func (c *Checkout) Verify(ctx context.Context) (record *models.PaymentRecord, queued bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateAwaitingProof:
	case StateExpired:
		return nil, false, fmt.Errorf("payment window expired, start a new payment")
	default:
		return nil, false, fmt.Errorf("no payment awaiting verification")
	}
	if c.fields.TransactionID == "" {
		return nil, false, validate.Errs{{Field: "transactionId", Msg: "required"}}
	}
	if c.paymentID == "" {
		return nil, false, fmt.Errorf("payment session is invalid, start again")
	}

	if !c.d.Queue.Online() {
		data := c.draftLocked()
		data.ID = c.paymentID
		c.d.Queue.Enqueue(models.ActionVerifyPayment, data)
		c.autosaveLocked()
		return nil, true, nil
	}

	c.state = StateVerifying
	patch := c.verifyPatchLocked()

	verified, err := c.d.Payments.Verify(ctx, c.paymentID, patch)
	if err != nil {
		c.state = StateAwaitingProof
		return nil, false, err
	}

	c.state = StateCompleted
	if c.countdown != nil {
		c.countdown.Stop()
	}
	c.d.Sessions.Clear()
	c.d.Log.Info("payment verified", "paymentId", verified.ID)
	return &verified, false, nil
}

func (c *Checkout) verifyPatchLocked() models.PaymentPatch {
	rate := c.d.Rates.Current()
	patch := models.PaymentPatch{
		Amount:        &c.fields.Amount,
		Email:         &c.fields.Email,
		Name:          &c.fields.Name,
		Reference:     &c.fields.Reference,
		TransactionID: &c.fields.TransactionID,
		PaymentMethod: &c.fields.PaymentMethod,
		ExchangeRate:  &rate,
	}
	switch c.fields.PaymentMethod {
	case models.MethodBank:
		patch.BankAccount = &c.fields.BankAccount
	case models.MethodCrypto:
		patch.CryptoNetwork = &c.fields.CryptoNetwork
	}
	return patch
}

// expire is the countdown callback: a one-way transition out of
// AwaitingTransactionProof. A verification already in flight wins the lock
// race; expiry then sees Completed and does nothing.
func (c *Checkout) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaitingProof {
		return
	}
	c.state = StateExpired
	c.d.Sessions.Clear()
	metrics.CheckoutsExpired.Inc()
	c.d.Log.Info("payment window expired", "paymentId", c.paymentID)
}

// Cancel discards the whole session, the way the original modeled cancel as
// a page reload: nothing is selectively kept.
func (c *Checkout) Cancel() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.d.Sessions.Clear()
	c.reset()
	return c.viewLocked()
}

// Restore rebuilds the form from a recovered snapshot. A snapshot with a
// started payment reopens the payment window from the top.
func (c *Checkout) Restore(snap models.SessionSnapshot) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	if snap.FormData.Reference != "" {
		c.fields = snap.FormData
	} else {
		ref := c.fields.Reference
		c.fields = snap.FormData
		c.fields.Reference = ref
	}
	c.preset = snap.SelectedPreset

	if snap.PaymentStarted && snap.PaymentID != "" {
		c.paymentID = snap.PaymentID
		c.state = StateAwaitingProof
		c.countdown = NewCountdown(CountdownSeconds, c.expire)
		if c.d.TickInterval > 0 {
			go c.countdown.Run(c.d.TickInterval)
		}
	}
	return c.viewLocked()
}

// Tick advances the countdown by one second; used when the internal ticker
// is disabled.
func (c *Checkout) Tick() {
	c.mu.Lock()
	cd := c.countdown
	c.mu.Unlock()
	if cd != nil {
		cd.Tick()
	}
}
