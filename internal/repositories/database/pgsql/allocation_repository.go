package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_app/internal/models"
	"github.com/fintrack/fintrack_app/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for allocation data.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepository {
	return &PgxAllocationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AllocationRepository = (*PgxAllocationRepository)(nil)

func toModelAllocation(d domain.Allocation) models.Allocation {
	return models.Allocation{
		AllocationID: d.AllocationID,
		UserID:       d.UserID,
		Name:         d.Name,
		Type:         string(d.Type),
		Amount:       d.Amount,
		Active:       d.Active,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainAllocation(m models.Allocation, payments []models.AllocationPayment) domain.Allocation {
	monthly := make([]domain.MonthlyPayment, 0, len(payments))
	for _, p := range payments {
		monthly = append(monthly, domain.MonthlyPayment{
			Month:     p.Month,
			AccountID: p.AccountID,
			Paid:      p.Paid,
			PaidDate:  p.PaidDate,
		})
	}
	return domain.Allocation{
		AllocationID:    m.AllocationID,
		UserID:          m.UserID,
		Name:            m.Name,
		Type:            domain.AllocationType(m.Type),
		Amount:          m.Amount,
		Active:          m.Active,
		MonthlyPayments: monthly,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const allocationColumns = `allocation_id, user_id, name, type, amount, active, created_at, last_updated_at`

func scanAllocation(row pgx.Row) (*models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.Amount,
		&m.Active,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAllocation inserts a new allocation.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := toModelAllocation(allocation)

	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AllocationID,
		m.UserID,
		m.Name,
		m.Type,
		m.Amount,
		m.Active,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: allocation with ID %s already exists", apperrors.ErrDuplicate, m.AllocationID)
		}
		return fmt.Errorf("failed to save allocation %s: %w", m.AllocationID, err)
	}
	return nil
}

func (r *PgxAllocationRepository) loadPayments(ctx context.Context, allocationIDs []string) (map[string][]models.AllocationPayment, error) {
	if len(allocationIDs) == 0 {
		return map[string][]models.AllocationPayment{}, nil
	}

	query := `
		SELECT allocation_id, month, account_id, paid, paid_date, position
		FROM allocation_payments
		WHERE allocation_id = ANY($1)
		ORDER BY allocation_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, allocationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation payments: %w", err)
	}
	defer rows.Close()

	payments := make(map[string][]models.AllocationPayment)
	for rows.Next() {
		var p models.AllocationPayment
		if err := rows.Scan(&p.AllocationID, &p.Month, &p.AccountID, &p.Paid, &p.PaidDate, &p.Position); err != nil {
			return nil, fmt.Errorf("failed to scan allocation payment row: %w", err)
		}
		payments[p.AllocationID] = append(payments[p.AllocationID], p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allocation payment rows: %w", rows.Err())
	}
	return payments, nil
}

// FindAllocationByID retrieves an allocation with its payment entries in
// insertion order.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = $1 AND user_id = $2;`

	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation by ID %s: %w", allocationID, err)
	}

	payments, err := r.loadPayments(ctx, []string{allocationID})
	if err != nil {
		return nil, err
	}

	domainAlloc := toDomainAllocation(*m, payments[allocationID])
	return &domainAlloc, nil
}

// ListAllocations retrieves all of the user's allocations, each with its
// payment entries.
func (r *PgxAllocationRepository) ListAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE user_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	modelAllocs := []models.Allocation{}
	ids := []string{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		modelAllocs = append(modelAllocs, *m)
		ids = append(ids, m.AllocationID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", rows.Err())
	}

	payments, err := r.loadPayments(ctx, ids)
	if err != nil {
		return nil, err
	}

	allocations := make([]domain.Allocation, 0, len(modelAllocs))
	for _, m := range modelAllocs {
		allocations = append(allocations, toDomainAllocation(m, payments[m.AllocationID]))
	}
	return allocations, nil
}

// UpdateAllocation updates the allocation's editable fields. Payment
// entries only change through MarkPaid.
func (r *PgxAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := toModelAllocation(allocation)

	query := `
		UPDATE allocations
		SET name = $3, amount = $4, active = $5, last_updated_at = $6
		WHERE allocation_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AllocationID,
		m.UserID,
		m.Name,
		m.Amount,
		m.Active,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", m.AllocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAllocation removes the allocation and its payment entries. Synthetic
// transactions already written stay on the ledger.
func (r *PgxAllocationRepository) DeleteAllocation(ctx context.Context, userID string, allocationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM allocation_payments WHERE allocation_id = $1;`,
		allocationID,
	); err != nil {
		return fmt.Errorf("failed to delete payments for allocation %s: %w", allocationID, err)
	}

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM allocations WHERE allocation_id = $1 AND user_id = $2;`,
		allocationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", allocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// MarkPaid upserts the monthly payment entry, inserts the synthetic
// transaction, and applies the balance delta, all in one database
// transaction. Re-marking an existing month overwrites the entry in place
// without moving its position.
func (r *PgxAllocationRepository) MarkPaid(ctx context.Context, allocationID string, payment domain.MonthlyPayment, syntheticTxn domain.Transaction, delta accounting.Delta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceDelta(ctx, tx, syntheticTxn.UserID, syntheticTxn.AccountID, delta); err != nil {
		return err
	}

	upsert := `
		INSERT INTO allocation_payments (allocation_id, month, account_id, paid, paid_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (allocation_id, month)
		DO UPDATE SET account_id = EXCLUDED.account_id, paid = EXCLUDED.paid, paid_date = EXCLUDED.paid_date;
	`
	if _, err := tx.Exec(ctx, upsert,
		allocationID,
		payment.Month,
		payment.AccountID,
		payment.Paid,
		payment.PaidDate,
	); err != nil {
		return fmt.Errorf("failed to upsert payment for allocation %s month %s: %w", allocationID, payment.Month, err)
	}

	if err := insertTransactionInTx(ctx, tx, toModelTransaction(syntheticTxn)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
