package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		UserID:       d.UserID,
		Name:         d.Name,
		AccountType:  models.AccountType(d.AccountType),
		Balance:      d.Balance,
		CurrencyCode: d.CurrencyCode,
		Icon:         d.Icon,
		Color:        d.Color,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		UserID:       m.UserID,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		Balance:      m.Balance,
		CurrencyCode: m.CurrencyCode,
		Icon:         m.Icon,
		Color:        m.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const accountColumns = `account_id, user_id, name, account_type, balance, currency_code, icon, color, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.CurrencyCode,
		&m.Icon,
		&m.Color,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.Balance,
		modelAcc.CurrencyCode,
		modelAcc.Icon,
		modelAcc.Color,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account scoped to its owner. Another user's
// account reads as not found.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND user_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := toDomainAccount(*m)
	return &domainAcc, nil
}

// ListAccounts retrieves all of the user's accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}

// UpdateAccount updates the account's editable fields. Balance changes go
// through applyBalanceDelta, never through here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $3, currency_code = $4, icon = $5, color = $6, last_updated_at = $7
		WHERE account_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.CurrencyCode,
		modelAcc.Icon,
		modelAcc.Color,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccountCascade removes the account's transactions and then the
// account itself in one database transaction. Allocation payment entries
// and borrowing ledger rows that reference the account keep their history.
func (r *PgxAccountRepository) DeleteAccountCascade(ctx context.Context, userID string, accountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM transactions WHERE account_id = $1 AND user_id = $2;`,
		accountID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete transactions for account %s: %w", accountID, err)
	}

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM accounts WHERE account_id = $1 AND user_id = $2;`,
		accountID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
