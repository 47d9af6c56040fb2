package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/repository/localstore"
)

func meaningfulSnap() models.SessionSnapshot {
	return models.SessionSnapshot{
		FormData: models.FormData{Amount: "5000", Email: "a@b.com", Name: "A"},
	}
}

func TestSessionService_SaveAndRecover(t *testing.T) {
	svc := NewSessionService(testRepos(t).Sessions, testLogger())

	svc.Save(meaningfulSnap())
	snap, ok := svc.Recover()
	if !ok {
		t.Fatal("expected snapshot to be recoverable")
	}
	if snap.FormData.Amount != "5000" {
		t.Fatalf("recovered amount = %q", snap.FormData.Amount)
	}
	if snap.Timestamp == 0 {
		t.Fatal("save did not stamp a timestamp")
	}
}

func TestSessionService_ExpiredSnapshotIsDropped(t *testing.T) {
	svc := NewSessionService(testRepos(t).Sessions, testLogger())

	svc.Save(meaningfulSnap())
	// Jump the clock past the 24h expiry.
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	if _, ok := svc.Recover(); ok {
		t.Fatal("recovered a snapshot older than 24 hours")
	}
	// The expired slot is deleted, not just skipped.
	svc.now = time.Now
	if _, ok := svc.Recover(); ok {
		t.Fatal("expired snapshot was not deleted")
	}
}

func TestSessionService_EmptySnapshotNotRecovered(t *testing.T) {
	svc := NewSessionService(testRepos(t).Sessions, testLogger())

	svc.Save(models.SessionSnapshot{}) // nothing populated, not started
	if _, ok := svc.Recover(); ok {
		t.Fatal("recovered a snapshot with no populated fields")
	}

	svc.Save(models.SessionSnapshot{PaymentStarted: true})
	if _, ok := svc.Recover(); !ok {
		t.Fatal("an in-progress flag alone should be recoverable")
	}
}

func TestSessionService_CorruptSnapshotTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, localstore.KeySession+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := localstore.Open(dir, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	svc := NewSessionService(localstore.NewRepositories(store).Sessions, testLogger())

	if _, ok := svc.Recover(); ok {
		t.Fatal("corrupt snapshot should be treated as absent")
	}
}

func TestSessionService_SingleSlotOverwrites(t *testing.T) {
	svc := NewSessionService(testRepos(t).Sessions, testLogger())

	first := meaningfulSnap()
	first.FormData.Name = "First"
	svc.Save(first)

	second := meaningfulSnap()
	second.FormData.Name = "Second"
	svc.Save(second)

	snap, ok := svc.Recover()
	if !ok || snap.FormData.Name != "Second" {
		t.Fatalf("want the second session to win, got %+v ok=%v", snap, ok)
	}
}
