package postgres

import (
	"context"
	"fmt"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor/common"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CreateTransactions bulk inserts transactions for a statement, preserving
// document order through the sequence column.
func (db *DB) CreateTransactions(ctx context.Context, statementID string, transactions []common.TransactionRecord) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, tx := range transactions {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", tx.Amount, err)
		}

		batch.Queue(`
			INSERT INTO transactions (statement_id, sequence, date, description, amount, type)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, statementID, i+1, tx.Date, tx.Description, amount, tx.Type)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for range transactions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	return nil
}
