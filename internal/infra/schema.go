package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Idempotent DDL applied at startup. Balance and amount columns are NUMERIC
// so monetary values stay exact.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            UUID PRIMARY KEY,
        email         TEXT NOT NULL UNIQUE,
        password_hash BYTEA NOT NULL,
        token_version INT NOT NULL DEFAULT 0,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS wallets (
        id         UUID PRIMARY KEY,
        owner_id   TEXT NOT NULL UNIQUE,
        balance    NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
        created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
        id          UUID PRIMARY KEY,
        wallet_id   UUID NOT NULL REFERENCES wallets (id),
        kind        TEXT NOT NULL CHECK (kind IN ('credit', 'debit')),
        amount      NUMERIC(12,2) NOT NULL CHECK (amount > 0),
        description TEXT NOT NULL DEFAULT '',
        created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS wallet_transactions_wallet_created_idx
        ON wallet_transactions (wallet_id, created_at DESC)`,
}

// Migrate applies the schema. Safe to run on every boot.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
