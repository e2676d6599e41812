package postgres

import (
	"context"
	"fmt"
)

// Dates stay VARCHAR on purpose: the parser emits verbatim DD/MM/YYYY
// strings and performs no date validation.
const ddl = `
-- Cards table, one row per (issuer, suffix)
CREATE TABLE IF NOT EXISTS cards (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    issuer VARCHAR(20) NOT NULL,
    last_4_digits VARCHAR(4) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(issuer, last_4_digits)
);

-- Statements table with natural key (card_id, due_date)
CREATE TABLE IF NOT EXISTS statements (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    card_id UUID NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
    source VARCHAR(255) NOT NULL,
    due_date VARCHAR(10),
    total_balance NUMERIC(18,2),
    created_at TIMESTAMPTZ DEFAULT NOW(),

    -- Natural key for deduplication
    UNIQUE(card_id, due_date)
);

-- Transactions table
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    statement_id UUID NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
    sequence INTEGER NOT NULL,
    date VARCHAR(10) NOT NULL,
    description TEXT NOT NULL,
    amount NUMERIC(18,2) NOT NULL,
    type VARCHAR(10) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),

    -- Prevent duplicate transactions within a statement
    UNIQUE(statement_id, sequence)
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_statements_card_id ON statements(card_id);
CREATE INDEX IF NOT EXISTS idx_transactions_statement_id ON transactions(statement_id);
CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(type);
`

// EnsureSchema creates tables if they don't exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
