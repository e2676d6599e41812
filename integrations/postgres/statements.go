package postgres

import (
	"context"
	"fmt"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor/common"
	"github.com/shopspring/decimal"
)

// StatementExists checks if a statement already exists using the natural key
// (card, due date).
func (db *DB) StatementExists(ctx context.Context, cardID string, dueDate string) (bool, string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM statements
		WHERE card_id = $1 AND due_date = $2
	`, cardID, dueDate).Scan(&id)

	if err != nil {
		if err.Error() == "no rows in result set" {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to check statement: %w", err)
	}

	return true, id, nil
}

// CreateStatement inserts a new statement
func (db *DB) CreateStatement(ctx context.Context, cardID string, source string, record common.StatementRecord) (string, error) {
	var id string

	var totalBalance *decimal.Decimal
	if record.TotalBalance != nil {
		if amount, err := decimal.NewFromString(*record.TotalBalance); err == nil {
			totalBalance = &amount
		}
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO statements (card_id, source, due_date, total_balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, cardID, source, record.DueDate, totalBalance).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create statement: %w", err)
	}

	return id, nil
}

// DeleteStatement removes a statement and its transactions (cascade)
func (db *DB) DeleteStatement(ctx context.Context, statementID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM statements WHERE id = $1`, statementID)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	return nil
}
