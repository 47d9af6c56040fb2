package localstore

import (
	repo "github.com/elcoders/payment-portal/internal/repository"
)

type Repositories struct {
	Payments       repo.Payments
	Sessions       repo.Sessions
	OfflineActions repo.OfflineActions
	ErrorReports   repo.ErrorReports
}

func NewRepositories(store *Store) Repositories {
	return Repositories{
		Payments:       newPaymentsRepo(store),
		Sessions:       newSessionsRepo(store),
		OfflineActions: newActionsRepo(store),
		ErrorReports:   newReportsRepo(store),
	}
}
