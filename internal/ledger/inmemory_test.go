package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInMemoryLedger_LazyInitialization(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	balance, err := l.Balance(ctx, "owner-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected zero balance for fresh owner, got %s", balance)
	}
	if n := TransactionCount(l, "owner-1"); n != 0 {
		t.Fatalf("lazy init must not write transactions, got %d", n)
	}
}

func TestInMemoryLedger_InvalidAmount(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	for _, amount := range []string{"0", "-5"} {
		if _, err := l.Credit(ctx, "owner-1", dec(amount), "x"); err != ErrInvalidAmount {
			t.Fatalf("credit %s: expected ErrInvalidAmount, got %v", amount, err)
		}
		if _, err := l.Debit(ctx, "owner-1", dec(amount), "x"); err != ErrInvalidAmount {
			t.Fatalf("debit %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if n := TransactionCount(l, "owner-1"); n != 0 {
		t.Fatalf("failed operations must not write transactions, got %d", n)
	}
}

func TestInMemoryLedger_DebitScenario(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, "owner-1", dec("100.00"))

	txn, err := l.Debit(ctx, "owner-1", dec("30.00"), "order payment")
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if txn.Kind != KindDebit || !txn.Amount.Equal(dec("30.00")) {
		t.Fatalf("unexpected transaction: %+v", txn)
	}

	balance, _ := l.Balance(ctx, "owner-1")
	if !balance.Equal(dec("70.00")) {
		t.Fatalf("expected balance 70.00, got %s", balance)
	}

	if _, err := l.Debit(ctx, "owner-1", dec("1000.00"), "too much"); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	balance, _ = l.Balance(ctx, "owner-1")
	if !balance.Equal(dec("70.00")) {
		t.Fatalf("failed debit must not change balance, got %s", balance)
	}
	if n := TransactionCount(l, "owner-1"); n != 1 {
		t.Fatalf("expected exactly one transaction, got %d", n)
	}
}

func TestInMemoryLedger_ConcurrentCreditsNoLostUpdate(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Credit(ctx, "owner-1", dec("50.00"), "top up"); err != nil {
				t.Errorf("credit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	balance, _ := l.Balance(ctx, "owner-1")
	if !balance.Equal(dec("100.00")) {
		t.Fatalf("expected balance 100.00, got %s", balance)
	}
	if n := TransactionCount(l, "owner-1"); n != 2 {
		t.Fatalf("expected two transactions, got %d", n)
	}
}

func TestInMemoryLedger_RacingDebitsOnlyOneWins(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, "owner-1", dec("100.00"))

	// Each debit fits alone but together they overdraw.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Debit(ctx, "owner-1", dec("70.00"), "racing debit")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch err {
		case nil:
			succeeded++
		case ErrInsufficientBalance:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || rejected != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d rejections", succeeded, rejected)
	}

	balance, _ := l.Balance(ctx, "owner-1")
	if !balance.Equal(dec("30.00")) {
		t.Fatalf("expected balance 30.00, got %s", balance)
	}
	if n := TransactionCount(l, "owner-1"); n != 1 {
		t.Fatalf("expected one transaction, got %d", n)
	}
}

func TestInMemoryLedger_ConcurrentStormConservesBalance(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	SeedBalance(l, "owner-1", dec("1000.00"))

	const workers = 20
	credit := dec("10.00")
	debit := dec("5.00")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				if _, err := l.Credit(ctx, "owner-1", credit, fmt.Sprintf("credit %d", i)); err != nil {
					t.Errorf("credit %d: %v", i, err)
				}
			} else {
				if _, err := l.Debit(ctx, "owner-1", debit, fmt.Sprintf("debit %d", i)); err != nil {
					t.Errorf("debit %d: %v", i, err)
				}
			}
		}(i)
	}
	wg.Wait()

	// 1000 + 10*10 - 10*5 = 1050
	balance, _ := l.Balance(ctx, "owner-1")
	if !balance.Equal(dec("1050.00")) {
		t.Fatalf("expected balance 1050.00, got %s", balance)
	}
	if n := TransactionCount(l, "owner-1"); n != workers {
		t.Fatalf("expected %d transactions, got %d", workers, n)
	}
}

func TestInMemoryLedger_DifferentWalletsIndependent(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	if _, err := l.Credit(ctx, "owner-a", dec("25.00"), "a"); err != nil {
		t.Fatalf("credit a: %v", err)
	}
	if _, err := l.Credit(ctx, "owner-b", dec("40.00"), "b"); err != nil {
		t.Fatalf("credit b: %v", err)
	}

	balA, _ := l.Balance(ctx, "owner-a")
	balB, _ := l.Balance(ctx, "owner-b")
	if !balA.Equal(dec("25.00")) || !balB.Equal(dec("40.00")) {
		t.Fatalf("wallets leaked into each other: a=%s b=%s", balA, balB)
	}
}

func TestInMemoryLedger_TransactionsNewestFirst(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := l.Credit(ctx, "owner-1", dec("1.00"), fmt.Sprintf("credit %d", i)); err != nil {
			t.Fatalf("credit %d: %v", i, err)
		}
	}

	txns, err := l.Transactions(ctx, "owner-1", 3, 0)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txns))
	}
	if txns[0].Description != "credit 5" || txns[2].Description != "credit 3" {
		t.Fatalf("unexpected ordering: %q, %q", txns[0].Description, txns[2].Description)
	}

	// Restart deeper into the sequence.
	rest, err := l.Transactions(ctx, "owner-1", 10, 3)
	if err != nil {
		t.Fatalf("transactions offset: %v", err)
	}
	if len(rest) != 2 || rest[0].Description != "credit 2" {
		t.Fatalf("unexpected page: %+v", rest)
	}
}
