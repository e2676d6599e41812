package postgres

import (
	"context"
	"fmt"
)

// GetOrCreateCard finds an existing card by (issuer, suffix) or creates a
// new one.
func (db *DB) GetOrCreateCard(ctx context.Context, issuer string, last4 string) (string, error) {
	var id string

	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM cards WHERE issuer = $1 AND last_4_digits = $2
	`, issuer, last4).Scan(&id)

	if err == nil {
		_, err = db.Pool.Exec(ctx, `
			UPDATE cards SET updated_at = NOW() WHERE id = $1
		`, id)
		if err != nil {
			return "", fmt.Errorf("failed to update card: %w", err)
		}
		return id, nil
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO cards (issuer, last_4_digits)
		VALUES ($1, $2)
		RETURNING id
	`, issuer, last4).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create card: %w", err)
	}

	return id, nil
}
