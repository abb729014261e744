package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopizen/wallet-service/internal/ledger"
)

const recentTransactionLimit = 10

// Service exposes owner-bound wallet operations backed by the ledger.
type Service struct {
	ledger ledger.Ledger
}

// NewService builds a wallet service instance.
func NewService(l ledger.Ledger) *Service {
	return &Service{ledger: l}
}

// Overview combines the current balance with the most recent transactions,
// which is what the wallet screen renders.
type Overview struct {
	Balance decimal.Decimal
	Recent  []ledger.Transaction
}

// Overview returns the wallet balance and its ten most recent transactions.
// The wallet is created lazily if the owner has none yet.
func (s *Service) Overview(ctx context.Context, ownerID string) (Overview, error) {
	balance, err := s.ledger.Balance(ctx, ownerID)
	if err != nil {
		return Overview{}, err
	}
	recent, err := s.ledger.Transactions(ctx, ownerID, recentTransactionLimit, 0)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Balance: balance, Recent: recent}, nil
}

// Balance returns the current wallet balance.
func (s *Service) Balance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	return s.ledger.Balance(ctx, ownerID)
}

// Credit adds funds to the owner's wallet.
func (s *Service) Credit(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (ledger.Transaction, error) {
	return s.ledger.Credit(ctx, ownerID, amount, description)
}

// Debit removes funds from the owner's wallet.
func (s *Service) Debit(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (ledger.Transaction, error) {
	return s.ledger.Debit(ctx, ownerID, amount, description)
}

// Transactions pages through the owner's history, most recent first.
func (s *Service) Transactions(ctx context.Context, ownerID string, limit, offset int) ([]ledger.Transaction, error) {
	return s.ledger.Transactions(ctx, ownerID, limit, offset)
}
