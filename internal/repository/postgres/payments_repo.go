package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elcoders/payment-portal/internal/models"
)

type paymentsRepo struct{ pool *pgxpool.Pool }

const paymentCols = `id, amount, email, name, reference, transaction_id,
	payment_method, bank_account, crypto_network, status, date, exchange_rate`

func (r *paymentsRepo) scan(row pgx.Row) (models.PaymentRecord, error) {
	var p models.PaymentRecord
	err := row.Scan(&p.ID, &p.Amount, &p.Email, &p.Name, &p.Reference,
		&p.TransactionID, &p.PaymentMethod, &p.BankAccount, &p.CryptoNetwork,
		&p.Status, &p.Date, &p.ExchangeRate)
	return p, err
}

func (r *paymentsRepo) List() ([]models.PaymentRecord, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT `+paymentCols+` FROM payments ORDER BY inserted_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PaymentRecord
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentsRepo) GetByID(id string) (models.PaymentRecord, bool, error) {
	p, err := r.scan(r.pool.QueryRow(
		context.Background(),
		`SELECT `+paymentCols+` FROM payments WHERE id=$1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentRecord{}, false, nil
	}
	if err != nil {
		return models.PaymentRecord{}, false, err
	}
	return p, true, nil
}

func (r *paymentsRepo) Insert(p models.PaymentRecord) error {
	_, err := r.pool.Exec(
		context.Background(),
		`INSERT INTO payments (
		   id, amount, email, name, reference, transaction_id,
		   payment_method, bank_account, crypto_network, status, date, exchange_rate
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.Amount, p.Email, p.Name, p.Reference, p.TransactionID,
		p.PaymentMethod, p.BankAccount, p.CryptoNetwork, p.Status, p.Date, p.ExchangeRate,
	)
	return err
}

func (r *paymentsRepo) Replace(p models.PaymentRecord) (bool, error) {
	tag, err := r.pool.Exec(
		context.Background(),
		`UPDATE payments SET
		   amount=$2, email=$3, name=$4, reference=$5, transaction_id=$6,
		   payment_method=$7, bank_account=$8, crypto_network=$9, status=$10,
		   date=$11, exchange_rate=$12
		 WHERE id=$1`,
		p.ID, p.Amount, p.Email, p.Name, p.Reference, p.TransactionID,
		p.PaymentMethod, p.BankAccount, p.CryptoNetwork, p.Status, p.Date, p.ExchangeRate,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *paymentsRepo) Delete(id string) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *paymentsRepo) DeleteAll() error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM payments`)
	return err
}
