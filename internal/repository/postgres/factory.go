package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/elcoders/payment-portal/internal/repository"
)

// NewPayments returns a payments repository backed by Postgres. Sessions,
// offline actions and error reports stay on the local store even in this
// mode; only the record set moves to a real database.
func NewPayments(pool *pgxpool.Pool) repo.Payments {
	return &paymentsRepo{pool}
}
