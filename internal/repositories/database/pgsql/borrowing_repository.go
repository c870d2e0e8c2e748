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

type PgxBorrowingRepository struct {
	BaseRepository
}

// newPgxBorrowingRepository creates a new repository for borrowing data.
func newPgxBorrowingRepository(pool *pgxpool.Pool) portsrepo.BorrowingRepository {
	return &PgxBorrowingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BorrowingRepository = (*PgxBorrowingRepository)(nil)

func toModelBorrowing(d domain.Borrowing) models.Borrowing {
	return models.Borrowing{
		BorrowingID:      d.BorrowingID,
		UserID:           d.UserID,
		Type:             string(d.Type),
		PersonName:       d.PersonName,
		PersonEmail:      d.PersonEmail,
		PersonPhone:      d.PersonPhone,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		RemainingAmount:  d.RemainingAmount,
		Status:           string(d.Status),
		InitialAccountID: d.InitialAccountID,
		Date:             d.Date,
		Note:             d.Note,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainBorrowing(m models.Borrowing) domain.Borrowing {
	return domain.Borrowing{
		BorrowingID:      m.BorrowingID,
		UserID:           m.UserID,
		Type:             domain.BorrowingType(m.Type),
		PersonName:       m.PersonName,
		PersonEmail:      m.PersonEmail,
		PersonPhone:      m.PersonPhone,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		RemainingAmount:  m.RemainingAmount,
		Status:           domain.BorrowingStatus(m.Status),
		InitialAccountID: m.InitialAccountID,
		Date:             m.Date,
		Note:             m.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toModelBorrowingTransaction(d domain.BorrowingTransaction) models.BorrowingTransaction {
	return models.BorrowingTransaction{
		BorrowingTransactionID: d.BorrowingTransactionID,
		UserID:                 d.UserID,
		BorrowingID:            d.BorrowingID,
		AccountID:              d.AccountID,
		Type:                   string(d.Type),
		Amount:                 d.Amount,
		Date:                   d.Date,
		Note:                   d.Note,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainBorrowingTransaction(m models.BorrowingTransaction) domain.BorrowingTransaction {
	return domain.BorrowingTransaction{
		BorrowingTransactionID: m.BorrowingTransactionID,
		UserID:                 m.UserID,
		BorrowingID:            m.BorrowingID,
		AccountID:              m.AccountID,
		Type:                   domain.BorrowingTransactionType(m.Type),
		Amount:                 m.Amount,
		Date:                   m.Date,
		Note:                   m.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const borrowingColumns = `borrowing_id, user_id, type, person_name, person_email, person_phone, total_amount, paid_amount, remaining_amount, status, initial_account_id, date, note, created_at, last_updated_at`

func scanBorrowing(row pgx.Row) (*models.Borrowing, error) {
	var m models.Borrowing
	err := row.Scan(
		&m.BorrowingID,
		&m.UserID,
		&m.Type,
		&m.PersonName,
		&m.PersonEmail,
		&m.PersonPhone,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.InitialAccountID,
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

func updateBorrowingAggregatesInTx(ctx context.Context, tx pgx.Tx, m models.Borrowing) error {
	query := `
		UPDATE borrowings
		SET person_name = $3, person_email = $4, person_phone = $5, total_amount = $6,
		    paid_amount = $7, remaining_amount = $8, status = $9, note = $10, last_updated_at = $11
		WHERE borrowing_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.BorrowingID,
		m.UserID,
		m.PersonName,
		m.PersonEmail,
		m.PersonPhone,
		m.TotalAmount,
		m.PaidAmount,
		m.RemainingAmount,
		m.Status,
		m.Note,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update borrowing %s: %w", m.BorrowingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveBorrowing inserts the borrowing; a non-nil initial delta applies the
// creation effect to the initial account in the same database transaction.
func (r *PgxBorrowingRepository) SaveBorrowing(ctx context.Context, b domain.Borrowing, initial *accounting.Delta) error {
	m := toModelBorrowing(b)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if initial != nil {
		if err := applyBalanceDelta(ctx, tx, b.UserID, b.InitialAccountID, *initial); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO borrowings (` + borrowingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.BorrowingID,
		m.UserID,
		m.Type,
		m.PersonName,
		m.PersonEmail,
		m.PersonPhone,
		m.TotalAmount,
		m.PaidAmount,
		m.RemainingAmount,
		m.Status,
		nullableString(m.InitialAccountID),
		m.Date,
		m.Note,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: borrowing with ID %s already exists", apperrors.ErrDuplicate, m.BorrowingID)
		}
		return fmt.Errorf("failed to save borrowing %s: %w", m.BorrowingID, err)
	}

	return r.Commit(ctx, tx)
}

// FindBorrowingByID retrieves a borrowing scoped to its owner.
func (r *PgxBorrowingRepository) FindBorrowingByID(ctx context.Context, userID string, borrowingID string) (*domain.Borrowing, error) {
	query := `
		SELECT borrowing_id, user_id, type, person_name, person_email, person_phone, total_amount, paid_amount, remaining_amount, status, COALESCE(initial_account_id, ''), date, note, created_at, last_updated_at
		FROM borrowings
		WHERE borrowing_id = $1 AND user_id = $2;
	`
	m, err := scanBorrowing(r.Pool.QueryRow(ctx, query, borrowingID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find borrowing by ID %s: %w", borrowingID, err)
	}

	domainBorrowing := toDomainBorrowing(*m)
	return &domainBorrowing, nil
}

// ListBorrowings retrieves the user's borrowings newest first, optionally
// narrowed by type and status.
func (r *PgxBorrowingRepository) ListBorrowings(ctx context.Context, userID string, filter portsrepo.ListBorrowingsFilter) ([]domain.Borrowing, error) {
	query := `
		SELECT borrowing_id, user_id, type, person_name, person_email, person_phone, total_amount, paid_amount, remaining_amount, status, COALESCE(initial_account_id, ''), date, note, created_at, last_updated_at
		FROM borrowings
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowings: %w", err)
	}
	defer rows.Close()

	borrowings := []domain.Borrowing{}
	for rows.Next() {
		m, err := scanBorrowing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrowing row: %w", err)
		}
		borrowings = append(borrowings, toDomainBorrowing(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating borrowing rows: %w", rows.Err())
	}
	return borrowings, nil
}

// ListBorrowingTransactions retrieves the borrowing's ledger rows oldest
// first.
func (r *PgxBorrowingRepository) ListBorrowingTransactions(ctx context.Context, userID string, borrowingID string) ([]domain.BorrowingTransaction, error) {
	query := `
		SELECT borrowing_transaction_id, user_id, borrowing_id, account_id, type, amount, date, note, created_at, last_updated_at
		FROM borrowing_transactions
		WHERE borrowing_id = $1 AND user_id = $2
		ORDER BY date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, borrowingID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowing transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.BorrowingTransaction{}
	for rows.Next() {
		var m models.BorrowingTransaction
		err := rows.Scan(
			&m.BorrowingTransactionID,
			&m.UserID,
			&m.BorrowingID,
			&m.AccountID,
			&m.Type,
			&m.Amount,
			&m.Date,
			&m.Note,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrowing transaction row: %w", err)
		}
		txns = append(txns, toDomainBorrowingTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating borrowing transaction rows: %w", rows.Err())
	}
	return txns, nil
}

// UpdateBorrowing persists the borrowing's editable fields and recomputed
// aggregates without touching any account balance.
func (r *PgxBorrowingRepository) UpdateBorrowing(ctx context.Context, b domain.Borrowing) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateBorrowingAggregatesInTx(ctx, tx, toModelBorrowing(b)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// RecordPayment persists the updated aggregates, appends the ledger row,
// and applies the balance delta atomically.
func (r *PgxBorrowingRepository) RecordPayment(ctx context.Context, b domain.Borrowing, ledger domain.BorrowingTransaction, delta accounting.Delta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceDelta(ctx, tx, ledger.UserID, ledger.AccountID, delta); err != nil {
		return err
	}

	if err := updateBorrowingAggregatesInTx(ctx, tx, toModelBorrowing(b)); err != nil {
		return err
	}

	m := toModelBorrowingTransaction(ledger)
	query := `
		INSERT INTO borrowing_transactions (borrowing_transaction_id, user_id, borrowing_id, account_id, type, amount, date, note, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, query,
		m.BorrowingTransactionID,
		m.UserID,
		m.BorrowingID,
		m.AccountID,
		m.Type,
		m.Amount,
		m.Date,
		m.Note,
		m.CreatedAt,
		m.LastUpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert borrowing transaction %s: %w", m.BorrowingTransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteBorrowing removes the borrowing with its ledger; a non-nil reversal
// undoes the creation effect on the initial account in the same database
// transaction.
func (r *PgxBorrowingRepository) DeleteBorrowing(ctx context.Context, b domain.Borrowing, reversal *accounting.Delta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if reversal != nil {
		if err := applyBalanceDelta(ctx, tx, b.UserID, b.InitialAccountID, *reversal); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM borrowing_transactions WHERE borrowing_id = $1 AND user_id = $2;`,
		b.BorrowingID, b.UserID,
	); err != nil {
		return fmt.Errorf("failed to delete ledger for borrowing %s: %w", b.BorrowingID, err)
	}

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM borrowings WHERE borrowing_id = $1 AND user_id = $2;`,
		b.BorrowingID, b.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete borrowing %s: %w", b.BorrowingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
