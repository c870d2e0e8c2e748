package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// nullableString maps an empty string to NULL for optional references.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// applyBalanceDelta applies delta to the account's balance inside tx. The
// floor check rides on the UPDATE's WHERE clause, so a concurrent writer can
// never slip a balance below zero between a read and a write. A zero-row
// result is disambiguated into ErrInsufficientBalance or ErrNotFound.
func applyBalanceDelta(ctx context.Context, tx pgx.Tx, userID string, accountID string, delta accounting.Delta) error {
	if delta.Amount.IsZero() {
		return nil
	}

	var query string
	if delta.EnforceFloor {
		query = `
			UPDATE accounts
			SET balance = balance + $3, last_updated_at = NOW()
			WHERE account_id = $1 AND user_id = $2 AND balance + $3 >= 0;
		`
	} else {
		query = `
			UPDATE accounts
			SET balance = balance + $3, last_updated_at = NOW()
			WHERE account_id = $1 AND user_id = $2;
		`
	}

	cmdTag, err := tx.Exec(ctx, query, accountID, userID, delta.Amount)
	if err != nil {
		return fmt.Errorf("failed to apply balance change to account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if !delta.EnforceFloor {
			return apperrors.ErrNotFound
		}
		var exists bool
		checkErr := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM accounts WHERE account_id = $1 AND user_id = $2)`,
			accountID, userID,
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to check account %s after rejected balance change: %w", accountID, checkErr)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: account %s balance would go negative", apperrors.ErrInsufficientBalance, accountID)
	}
	return nil
}
