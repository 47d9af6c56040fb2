package models

import (
	"errors"
	"strings"
	"time"
)

type PaymentMethod string

const (
	MethodBank   PaymentMethod = "bank"
	MethodCrypto PaymentMethod = "crypto"
)

type BankAccount string

const (
	BankAccess    BankAccount = "access"
	BankSmartcash BankAccount = "smartcash"
)

type CryptoNetwork string

const (
	NetworkTRC20 CryptoNetwork = "trc20"
	NetworkERC20 CryptoNetwork = "erc20"
	NetworkTON   CryptoNetwork = "ton"
	NetworkBEP20 CryptoNetwork = "bep20"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

// PaymentRecord is one logical payment attempt tracked by the store.
// Field names and JSON tags mirror the persisted demo-data layout, so
// previously stored records keep loading.
type PaymentRecord struct {
	ID            string        `json:"id"`
	Amount        string        `json:"amount"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	Reference     string        `json:"reference"`
	TransactionID string        `json:"transactionId,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	BankAccount   BankAccount   `json:"bankAccount,omitempty"`
	CryptoNetwork CryptoNetwork `json:"cryptoNetwork,omitempty"`
	Status        PaymentStatus `json:"status"`
	Date          string        `json:"date"`
	ExchangeRate  float64       `json:"exchangeRate,omitempty"`
}

func (p *PaymentRecord) Validate() error {
	if strings.TrimSpace(p.Amount) == "" {
		return errors.New("amount required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("email required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name required")
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = MethodBank
	}
	return nil
}

// PaymentPatch carries partial updates; nil fields are left untouched.
type PaymentPatch struct {
	Amount        *string        `json:"amount,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Name          *string        `json:"name,omitempty"`
	Reference     *string        `json:"reference,omitempty"`
	TransactionID *string        `json:"transactionId,omitempty"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	BankAccount   *BankAccount   `json:"bankAccount,omitempty"`
	CryptoNetwork *CryptoNetwork `json:"cryptoNetwork,omitempty"`
	Status        *PaymentStatus `json:"status,omitempty"`
	Date          *string        `json:"date,omitempty"`
	ExchangeRate  *float64       `json:"exchangeRate,omitempty"`
}

func (p *PaymentRecord) Apply(patch PaymentPatch) {
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Reference != nil {
		p.Reference = *patch.Reference
	}
	if patch.TransactionID != nil {
		p.TransactionID = *patch.TransactionID
	}
	if patch.PaymentMethod != nil {
		p.PaymentMethod = *patch.PaymentMethod
	}
	if patch.BankAccount != nil {
		p.BankAccount = *patch.BankAccount
	}
	if patch.CryptoNetwork != nil {
		p.CryptoNetwork = *patch.CryptoNetwork
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.ExchangeRate != nil {
		p.ExchangeRate = *patch.ExchangeRate
	}
}

// Matches reports whether the record matches a history search term
// (case-insensitive substring over reference, name, email, transaction id).
func (p *PaymentRecord) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Reference), term) ||
		strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Email), term) ||
		strings.Contains(strings.ToLower(p.TransactionID), term)
}

// NowISO is the timestamp format every write stamps into Date.
func NowISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
