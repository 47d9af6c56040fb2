package services

import (
	"context"
	"testing"

	"github.com/elcoders/payment-portal/internal/models"
)

func draft(amount, email, name string) models.PaymentRecord {
	return models.PaymentRecord{
		Amount:        amount,
		Email:         email,
		Name:          name,
		Reference:     "ELC-123456",
		PaymentMethod: models.MethodBank,
		BankAccount:   models.BankAccess,
	}
}

func TestPaymentService_CreateAssignsUniqueIDs(t *testing.T) {
	svc := NewPaymentService(testRepos(t).Payments, Delays{}, testLogger())
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := svc.Create(ctx, draft("10000", "a@b.com", "A"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if p.ID == "" {
			t.Fatal("created record has empty id")
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
		if p.Status != models.StatusPending {
			t.Fatalf("new record status = %s, want pending", p.Status)
		}
		if p.Date == "" {
			t.Fatal("created record has empty date")
		}
	}

	// Identical rapid creates stay distinct records.
	if got := len(svc.List(ctx)); got != 20 {
		t.Fatalf("store holds %d records, want 20", got)
	}
}

func TestPaymentService_CreateThenVerify(t *testing.T) {
	repos := testRepos(t)
	payments := NewPaymentService(repos.Payments, Delays{}, testLogger())
	sessions := NewSessionService(repos.Sessions, testLogger())
	ctx := context.Background()

	sessions.Save(models.SessionSnapshot{
		FormData:       models.FormData{Amount: "10000", Email: "a@b.com", Name: "A"},
		PaymentStarted: true,
	})

	created, err := payments.Create(ctx, draft("10000", "a@b.com", "A"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	all := payments.List(ctx)
	if len(all) != 1 || all[0].Status != models.StatusPending {
		t.Fatalf("want exactly one pending record, got %+v", all)
	}

	txID := "TX1"
	verified, err := payments.Verify(ctx, created.ID, models.PaymentPatch{TransactionID: &txID})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.ID != created.ID {
		t.Fatalf("verify changed id: %s -> %s", created.ID, verified.ID)
	}
	if verified.Status != models.StatusCompleted {
		t.Fatalf("verified status = %s, want completed", verified.Status)
	}
	if verified.TransactionID != "TX1" {
		t.Fatalf("transactionId = %q, want TX1", verified.TransactionID)
	}
	if got := len(payments.List(ctx)); got != 1 {
		t.Fatalf("verify duplicated the record: %d records", got)
	}

	sessions.Clear()
	if _, ok := sessions.Recover(); ok {
		t.Fatal("session snapshot survived verification")
	}
}

func TestPaymentService_VerifyUnknownIDSynthesizesRecord(t *testing.T) {
	svc := NewPaymentService(testRepos(t).Payments, Delays{}, testLogger())
	ctx := context.Background()

	txID := "TX9"
	got, err := svc.Verify(ctx, "ghost-id", models.PaymentPatch{TransactionID: &txID})
	if err != nil {
		t.Fatalf("verify unknown id: %v", err)
	}
	if got.ID != "ghost-id" {
		t.Fatalf("synthesized id = %q, want ghost-id", got.ID)
	}
	if got.Status != models.StatusCompleted {
		t.Fatalf("synthesized status = %s, want completed", got.Status)
	}
	// Required fields default to documented empty values.
	if got.Amount != "0" || got.Email != "" || got.Name != "" || got.Reference != "" {
		t.Fatalf("unexpected synthesized defaults: %+v", got)
	}
	if got.PaymentMethod != models.MethodBank {
		t.Fatalf("synthesized method = %s, want bank", got.PaymentMethod)
	}
	if got.TransactionID != "TX9" {
		t.Fatalf("patch fields were lost: %+v", got)
	}

	if p := svc.GetByID(ctx, "ghost-id"); p == nil {
		t.Fatal("synthesized record was not inserted")
	}
}

func TestPaymentService_VerifyRequiresID(t *testing.T) {
	svc := NewPaymentService(testRepos(t).Payments, Delays{}, testLogger())
	if _, err := svc.Verify(context.Background(), "", models.PaymentPatch{}); err == nil {
		t.Fatal("verify without id should error")
	}
}

func TestPaymentService_SoftFailures(t *testing.T) {
	svc := NewPaymentService(testRepos(t).Payments, Delays{}, testLogger())
	ctx := context.Background()

	if p := svc.GetByID(ctx, ""); p != nil {
		t.Fatal("get with empty id should be nil")
	}
	if p := svc.GetByID(ctx, "missing"); p != nil {
		t.Fatal("get unknown id should be nil")
	}
	if p := svc.Update(ctx, "missing", models.PaymentPatch{}); p != nil {
		t.Fatal("update unknown id should be nil")
	}
	if svc.Delete(ctx, "missing") {
		t.Fatal("delete unknown id should be false")
	}
}

func TestPaymentService_Search(t *testing.T) {
	svc := NewPaymentService(testRepos(t).Payments, Delays{}, testLogger())
	ctx := context.Background()

	a := draft("5000", "first@x.com", "Ada")
	a.Reference = "ELC-111111"
	b := draft("9000", "second@y.com", "Grace")
	b.Reference = "ELC-222222"
	if _, err := svc.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	created, err := svc.Create(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	tx := "TX-GRACE"
	if _, err := svc.Verify(ctx, created.ID, models.PaymentPatch{TransactionID: &tx}); err != nil {
		t.Fatal(err)
	}

	for term, want := range map[string]int{
		"":         2,
		"elc-1":    1,
		"GRACE":    1, // matches name and transaction id on one record
		"x.com":    1,
		"nothing0": 0,
	} {
		if got := len(svc.Search(ctx, term)); got != want {
			t.Errorf("search %q = %d records, want %d", term, got, want)
		}
	}
}
