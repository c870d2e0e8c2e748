package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_app/internal/models"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		Date:          d.Date,
		Note:          d.Note,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Date:          m.Date,
		Note:          m.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const transactionColumns = `transaction_id, user_id, account_id, category_id, type, amount, date, note, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.Type,
		&m.Amount,
		&m.Date,
		&m.Note,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func insertTransactionInTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		m.CategoryID,
		m.Type,
		m.Amount,
		m.Date,
		m.Note,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction inserts the transaction row and applies its balance delta
// to the account in one database transaction. A rejected floor check rolls
// everything back.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta accounting.Delta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceDelta(ctx, tx, txn.UserID, txn.AccountID, delta); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, toModelTransaction(txn)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction scoped to its owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := toDomainTransaction(*m)
	return &domainTxn, nil
}

// ListTransactions returns the user's transactions newest first. The cursor
// pair (date, created_at) gives a total order, so pages never skip or
// repeat rows even when many transactions share a date.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.AccountID != nil {
		query += ` AND account_id = ` + addArg(*filter.AccountID)
	}
	if filter.CategoryID != nil {
		query += ` AND category_id = ` + addArg(*filter.CategoryID)
	}
	if filter.Type != nil {
		query += ` AND type = ` + addArg(string(*filter.Type))
	}
	if filter.DateFrom != nil {
		query += ` AND date >= ` + addArg(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += ` AND date <= ` + addArg(*filter.DateTo)
	}
	if filter.CursorDate != nil && filter.CursorCreatedAt != nil {
		d := addArg(*filter.CursorDate)
		c := addArg(*filter.CursorCreatedAt)
		query += ` AND (date, created_at) < (` + d + `, ` + c + `)`
	}

	query += ` ORDER BY date DESC, created_at DESC LIMIT ` + addArg(filter.Limit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

// DeleteTransaction removes the transaction and applies the reversal delta
// to its account in one database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, reversal accounting.Delta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`,
		txn.TransactionID, txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyBalanceDelta(ctx, tx, txn.UserID, txn.AccountID, reversal); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
