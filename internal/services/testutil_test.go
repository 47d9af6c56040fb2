package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/elcoders/payment-portal/internal/repository/localstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRepos(t *testing.T) localstore.Repositories {
	t.Helper()
	store, err := localstore.Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return localstore.NewRepositories(store)
}
