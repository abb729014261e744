package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount occurs when a caller supplies a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientBalance occurs when a debit exceeds the wallet balance
	// observed while the wallet row is locked.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Kind labels a transaction as a credit or a debit. The set is closed.
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

// Wallet is the per-owner running balance record. Exactly one exists per
// owner; it is created lazily on first access and mutated only through
// Credit and Debit.
type Wallet struct {
	ID        string
	OwnerID   string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is one immutable entry of the audit log. Rows are never
// updated or deleted; at any quiescent point the wallet balance equals the
// sum of its credits minus the sum of its debits.
type Transaction struct {
	ID          string
	WalletID    string
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// Ledger defines the contract implemented by ledger backends (e.g. Postgres).
//
// Credit and Debit serialize per wallet: the implementation must hold an
// exclusive per-wallet lock across the read-modify-write-append unit so that
// the debit precondition is evaluated against the committed balance, not the
// balance at request arrival. Operations on different wallets never block
// each other.
type Ledger interface {
	Credit(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (Transaction, error)
	Debit(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (Transaction, error)
	Balance(ctx context.Context, ownerID string) (decimal.Decimal, error)
	Transactions(ctx context.Context, ownerID string, limit, offset int) ([]Transaction, error)
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
