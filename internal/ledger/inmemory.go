package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memWallet struct {
	// mu serializes credit/debit on this wallet only, mirroring the
	// per-row lock of the Postgres backend.
	mu     sync.Mutex
	wallet Wallet
	txns   []Transaction // oldest first
}

type inMemoryLedger struct {
	mu      sync.RWMutex // guards the map, not wallet state
	wallets map[string]*memWallet
}

// NewInMemory creates a concurrency-safe in-memory ledger used in dev mode
// and unit tests.
func NewInMemory() Ledger {
	return &inMemoryLedger{wallets: make(map[string]*memWallet)}
}

func (l *inMemoryLedger) walletFor(ownerID string) *memWallet {
	l.mu.RLock()
	w, ok := l.wallets[ownerID]
	l.mu.RUnlock()
	if ok {
		return w
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if w, ok := l.wallets[ownerID]; ok {
		return w
	}
	now := time.Now().UTC()
	w = &memWallet{wallet: Wallet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	l.wallets[ownerID] = w
	return w
}

func (l *inMemoryLedger) Credit(_ context.Context, ownerID string, amount decimal.Decimal, description string) (Transaction, error) {
	if amount.Sign() <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	w := l.walletFor(ownerID)
	w.mu.Lock()
	defer w.mu.Unlock()

	w.wallet.Balance = w.wallet.Balance.Add(amount)
	w.wallet.UpdatedAt = time.Now().UTC()
	txn := Transaction{
		ID:          uuid.NewString(),
		WalletID:    w.wallet.ID,
		Kind:        KindCredit,
		Amount:      amount,
		Description: description,
		CreatedAt:   w.wallet.UpdatedAt,
	}
	w.txns = append(w.txns, txn)
	return txn, nil
}

func (l *inMemoryLedger) Debit(_ context.Context, ownerID string, amount decimal.Decimal, description string) (Transaction, error) {
	if amount.Sign() <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	w := l.walletFor(ownerID)
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.wallet.Balance.LessThan(amount) {
		return Transaction{}, ErrInsufficientBalance
	}

	w.wallet.Balance = w.wallet.Balance.Sub(amount)
	w.wallet.UpdatedAt = time.Now().UTC()
	txn := Transaction{
		ID:          uuid.NewString(),
		WalletID:    w.wallet.ID,
		Kind:        KindDebit,
		Amount:      amount,
		Description: description,
		CreatedAt:   w.wallet.UpdatedAt,
	}
	w.txns = append(w.txns, txn)
	return txn, nil
}

func (l *inMemoryLedger) Balance(_ context.Context, ownerID string) (decimal.Decimal, error) {
	w := l.walletFor(ownerID)
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wallet.Balance, nil
}

func (l *inMemoryLedger) Transactions(_ context.Context, ownerID string, limit, offset int) ([]Transaction, error) {
	limit, offset = clampPage(limit, offset)

	w := l.walletFor(ownerID)
	w.mu.Lock()
	defer w.mu.Unlock()

	// Newest first, skipping offset entries from the top.
	start := len(w.txns) - 1 - offset
	var out []Transaction
	for i := start; i >= 0 && len(out) < limit; i-- {
		out = append(out, w.txns[i])
	}
	return out, nil
}
