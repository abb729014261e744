package ledger

import "github.com/shopspring/decimal"

// SeedBalance is a test helper that sets a wallet balance directly when using
// the in-memory ledger. No transaction row is written, mirroring lazy
// initialization rather than a credit.
func SeedBalance(l Ledger, ownerID string, balance decimal.Decimal) {
	if mem, ok := l.(*inMemoryLedger); ok {
		w := mem.walletFor(ownerID)
		w.mu.Lock()
		defer w.mu.Unlock()
		w.wallet.Balance = balance
	}
}

// TransactionCount reports the number of transaction rows recorded for the
// owner's wallet in the in-memory ledger.
func TransactionCount(l Ledger, ownerID string) int {
	if mem, ok := l.(*inMemoryLedger); ok {
		w := mem.walletFor(ownerID)
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.txns)
	}
	return 0
}
