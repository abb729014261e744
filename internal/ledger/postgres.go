package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresLedger persists wallets and their transaction log in PostgreSQL.
// Mutations lock the wallet row with SELECT ... FOR UPDATE and commit the
// balance update together with the transaction insert in one transaction.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Credit increases the wallet balance and appends a credit transaction.
func (l *PostgresLedger) Credit(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (Transaction, error) {
	return l.post(ctx, ownerID, KindCredit, amount, description)
}

// Debit decreases the wallet balance and appends a debit transaction. The
// balance check runs after the row lock is held, so racing debits that
// jointly overdraw the wallet cannot both succeed.
func (l *PostgresLedger) Debit(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (Transaction, error) {
	return l.post(ctx, ownerID, KindDebit, amount, description)
}

func (l *PostgresLedger) post(ctx context.Context, ownerID string, kind Kind, amount decimal.Decimal, description string) (Transaction, error) {
	if amount.Sign() <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	walletID, balance, err := lockWallet(ctx, tx, ownerID)
	if err != nil {
		return Transaction{}, err
	}

	var newBalance decimal.Decimal
	if kind == KindCredit {
		newBalance = balance.Add(amount)
	} else {
		if balance.LessThan(amount) {
			return Transaction{}, ErrInsufficientBalance
		}
		newBalance = balance.Sub(amount)
	}

	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $1, updated_at = now() WHERE id = $2`,
		newBalance.String(), walletID); err != nil {
		return Transaction{}, err
	}

	txn := Transaction{
		ID:          uuid.NewString(),
		WalletID:    walletID.String(),
		Kind:        kind,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := tx.Exec(ctx, `INSERT INTO wallet_transactions (id, wallet_id, kind, amount, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		txn.ID, walletID, string(txn.Kind), txn.Amount.String(), txn.Description, txn.CreatedAt); err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, err
	}

	return txn, nil
}

// Balance returns the current balance, creating the wallet with a zero
// balance on first access. The implicit initialization writes no
// transaction row.
func (l *PostgresLedger) Balance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	if err := l.ensureWallet(ctx, ownerID); err != nil {
		return decimal.Zero, err
	}
	var raw string
	if err := l.db.QueryRow(ctx, `SELECT balance::text FROM wallets WHERE owner_id = $1`, ownerID).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// Transactions lists the wallet history most recent first. Pagination via
// limit/offset keeps the sequence restartable.
func (l *PostgresLedger) Transactions(ctx context.Context, ownerID string, limit, offset int) ([]Transaction, error) {
	if err := l.ensureWallet(ctx, ownerID); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	rows, err := l.db.Query(ctx, `SELECT t.id, t.wallet_id, t.kind, t.amount::text, t.description, t.created_at
        FROM wallet_transactions t
        INNER JOIN wallets w ON w.id = t.wallet_id
        WHERE w.owner_id = $1
        ORDER BY t.created_at DESC, t.id
        LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var (
			txn       Transaction
			id        uuid.UUID
			walletID  uuid.UUID
			kind      string
			amountRaw string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &walletID, &kind, &amountRaw, &txn.Description, &createdAt); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountRaw)
		if err != nil {
			return nil, fmt.Errorf("decode amount for transaction %s: %w", id, err)
		}
		txn.ID = id.String()
		txn.WalletID = walletID.String()
		txn.Kind = Kind(kind)
		txn.Amount = amount
		txn.CreatedAt = createdAt.UTC()
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (l *PostgresLedger) ensureWallet(ctx context.Context, ownerID string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO wallets (id, owner_id) VALUES ($1, $2)
        ON CONFLICT (owner_id) DO NOTHING`, uuid.New(), ownerID)
	return err
}

// lockWallet returns the wallet id and balance with the row held under an
// exclusive lock until the surrounding transaction ends. The wallet is
// created first if the owner has none yet.
func lockWallet(ctx context.Context, tx pgx.Tx, ownerID string) (uuid.UUID, decimal.Decimal, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO wallets (id, owner_id) VALUES ($1, $2)
        ON CONFLICT (owner_id) DO NOTHING`, uuid.New(), ownerID); err != nil {
		return uuid.Nil, decimal.Zero, err
	}

	var (
		id  uuid.UUID
		raw string
	)
	if err := tx.QueryRow(ctx, `SELECT id, balance::text FROM wallets WHERE owner_id = $1 FOR UPDATE`, ownerID).Scan(&id, &raw); err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("decode balance for wallet %s: %w", id, err)
	}
	return id, balance, nil
}
