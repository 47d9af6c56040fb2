package flow

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/repository/localstore"
	"github.com/elcoders/payment-portal/internal/services"
	"github.com/elcoders/payment-portal/internal/worker"
)

type fixture struct {
	checkout *Checkout
	payments *services.PaymentService
	sessions *services.SessionService
	queue    *services.OfflineQueue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := localstore.Open(t.TempDir(), log)
	if err != nil {
		t.Fatal(err)
	}
	repos := localstore.NewRepositories(store)

	payments := services.NewPaymentService(repos.Payments, services.Delays{}, log)
	sessions := services.NewSessionService(repos.Sessions, log)
	reports := services.NewReportService(repos.ErrorReports, log)
	rates := services.NewRateService(0, log)
	pool := worker.NewPool(1)
	t.Cleanup(pool.Stop)
	queue := services.NewOfflineQueue(repos.OfflineActions, payments, reports, pool, log)

	checkout := NewCheckout(Deps{
		Payments: payments,
		Sessions: sessions,
		Queue:    queue,
		Rates:    rates,
		Log:      log,
		// ticks are injected by the tests
	})
	return &fixture{checkout: checkout, payments: payments, sessions: sessions, queue: queue}
}

func fillForm(t *testing.T, c *Checkout) {
	t.Helper()
	_, err := c.SetFields(models.FormData{
		Amount:        "10000",
		Email:         "a@b.com",
		Name:          "A",
		PaymentMethod: models.MethodBank,
		BankAccount:   models.BankAccess,
	}, "")
	if err != nil {
		t.Fatalf("set fields: %v", err)
	}
}

func TestCheckout_StartRequiresAllFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, _, err := f.checkout.Start(ctx); err == nil {
		t.Fatal("start with an empty form should fail validation")
	}
	if f.checkout.View().State != StateCollecting {
		t.Fatal("failed start left the form in a non-collecting state")
	}
	if got := len(f.payments.List(ctx)); got != 0 {
		t.Fatalf("failed start created %d records", got)
	}
}

func TestCheckout_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fillForm(t, f.checkout)

	view, queued, err := f.checkout.Start(ctx)
	if err != nil || queued {
		t.Fatalf("start: err=%v queued=%v", err, queued)
	}
	if view.State != StateAwaitingProof {
		t.Fatalf("state after start = %s, want awaiting", view.State)
	}
	if view.PaymentID == "" {
		t.Fatal("start did not record the payment id")
	}
	if view.SecondsLeft != CountdownSeconds {
		t.Fatalf("countdown = %d, want %d", view.SecondsLeft, CountdownSeconds)
	}

	all := f.payments.List(ctx)
	if len(all) != 1 || all[0].Status != models.StatusPending {
		t.Fatalf("want one pending record, got %+v", all)
	}
	if _, ok := f.sessions.Recover(); !ok {
		t.Fatal("start did not autosave a session snapshot")
	}

	// Supply the transaction id and verify.
	fields := view.Fields
	fields.TransactionID = "TX1"
	if _, err := f.checkout.SetFields(fields, ""); err != nil {
		t.Fatal(err)
	}
	record, queued, err := f.checkout.Verify(ctx)
	if err != nil || queued {
		t.Fatalf("verify: err=%v queued=%v", err, queued)
	}
	if record.Status != models.StatusCompleted || record.TransactionID != "TX1" {
		t.Fatalf("verified record: %+v", record)
	}
	if record.ID != view.PaymentID {
		t.Fatalf("verify switched ids: %s -> %s", view.PaymentID, record.ID)
	}
	if f.checkout.View().State != StateCompleted {
		t.Fatal("state is not completed after verification")
	}
	if _, ok := f.sessions.Recover(); ok {
		t.Fatal("session snapshot survived successful verification")
	}
}

func TestCheckout_VerifyRequiresTransactionID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fillForm(t, f.checkout)
	if _, _, err := f.checkout.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.checkout.Verify(ctx); err == nil {
		t.Fatal("verify without a transaction id should fail")
	}
	if f.checkout.View().State != StateAwaitingProof {
		t.Fatal("failed verify must drop back to awaiting proof")
	}
}

func TestCheckout_CountdownExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fillForm(t, f.checkout)
	if _, _, err := f.checkout.Start(ctx); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < CountdownSeconds; i++ {
		f.checkout.Tick()
	}

	if got := f.checkout.View().State; got != StateExpired {
		t.Fatalf("state after countdown = %s, want expired", got)
	}
	if _, ok := f.sessions.Recover(); ok {
		t.Fatal("session snapshot survived expiry")
	}

	// Expiry is one-way and idempotent.
	f.checkout.Tick()
	f.checkout.Tick()
	if got := f.checkout.View().State; got != StateExpired {
		t.Fatalf("extra ticks moved state to %s", got)
	}

	// Verification is blocked after expiry; no store call is made.
	before := len(f.payments.List(ctx))
	if _, _, err := f.checkout.Verify(ctx); err == nil {
		t.Fatal("verify after expiry should fail")
	}
	if got := len(f.payments.List(ctx)); got != before {
		t.Fatal("verify after expiry touched the store")
	}
}

func TestCheckout_OfflineStartQueuesInsteadOfCreating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.queue.SetOnline(false)
	fillForm(t, f.checkout)

	view, queued, err := f.checkout.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !queued {
		t.Fatal("offline start was not queued")
	}
	if view.State != StateCollecting {
		t.Fatalf("offline start moved state to %s", view.State)
	}
	if got := len(f.payments.List(ctx)); got != 0 {
		t.Fatalf("offline start created %d records", got)
	}
	actions := f.queue.Actions()
	if len(actions) != 1 || actions[0].Type != models.ActionCreatePayment {
		t.Fatalf("queue = %+v, want one CREATE_PAYMENT", actions)
	}
}

func TestCheckout_CancelDiscardsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fillForm(t, f.checkout)
	if _, _, err := f.checkout.Start(ctx); err != nil {
		t.Fatal(err)
	}
	oldRef := f.checkout.View().Fields.Reference

	view := f.checkout.Cancel()
	if view.State != StateCollecting {
		t.Fatalf("state after cancel = %s", view.State)
	}
	if view.PaymentID != "" || view.Fields.Amount != "" {
		t.Fatalf("cancel kept stale form state: %+v", view)
	}
	if view.Fields.Reference == "" || view.Fields.Reference == oldRef {
		t.Fatal("cancel must mint a fresh reference")
	}
	if _, ok := f.sessions.Recover(); ok {
		t.Fatal("cancel left a recoverable session behind")
	}
}

func TestCheckout_RestoreReopensPaymentWindow(t *testing.T) {
	f := newFixture(t)

	snap := models.SessionSnapshot{
		FormData: models.FormData{
			Amount:        "25000",
			Email:         "r@s.com",
			Name:          "R",
			Reference:     "ELC-424242",
			PaymentMethod: models.MethodCrypto,
			CryptoNetwork: models.NetworkTRC20,
		},
		PaymentStarted: true,
		PaymentID:      "restored-id",
		SelectedPreset: "premium",
	}

	view := f.checkout.Restore(snap)
	if view.State != StateAwaitingProof {
		t.Fatalf("restored state = %s, want awaiting", view.State)
	}
	if view.PaymentID != "restored-id" {
		t.Fatalf("restored payment id = %q", view.PaymentID)
	}
	if view.Fields.Reference != "ELC-424242" {
		t.Fatalf("restored reference = %q", view.Fields.Reference)
	}
	if view.SecondsLeft != CountdownSeconds {
		t.Fatalf("restored countdown = %d, want full window", view.SecondsLeft)
	}
}

func TestCheckout_PresetSelectionSetsAmount(t *testing.T) {
	f := newFixture(t)

	view, err := f.checkout.SetFields(models.FormData{}, "premium")
	if err != nil {
		t.Fatal(err)
	}
	if view.Fields.Amount != "25000" {
		t.Fatalf("preset amount = %q, want 25000", view.Fields.Amount)
	}
	if view.SelectedPreset != "premium" {
		t.Fatalf("selected preset = %q", view.SelectedPreset)
	}

	// Manual edits drop the preset.
	fields := view.Fields
	fields.Amount = "31337"
	view, err = f.checkout.SetFields(fields, "")
	if err != nil {
		t.Fatal(err)
	}
	if view.SelectedPreset != "" {
		t.Fatalf("manual amount edit kept preset %q", view.SelectedPreset)
	}
}

func TestCheckout_ReferenceIsSessionStable(t *testing.T) {
	f := newFixture(t)

	ref := f.checkout.View().Fields.Reference
	if !strings.HasPrefix(ref, "ELC-") {
		t.Fatalf("reference %q missing ELC prefix", ref)
	}

	fields := f.checkout.View().Fields
	fields.Reference = "ELC-999999"
	view, err := f.checkout.SetFields(fields, "")
	if err != nil {
		t.Fatal(err)
	}
	if view.Fields.Reference != ref {
		t.Fatalf("client edit changed the reference: %q -> %q", ref, view.Fields.Reference)
	}
}
