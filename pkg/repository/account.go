package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akovalev/feedsync/pkg/domain"
)

// AccountRepository handles account-related database operations
type AccountRepository struct {
	db dbx
}

// accountSQL represents an account for SQL operations
type accountSQL struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(database *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: database}
}

// CreateAccount inserts a new account
func (r *AccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO accounts (name, kind) VALUES (?, ?)`
	var result sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, account.Name, string(account.Kind))
		return execErr
	})
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	account.ID = id
	return nil
}

// GetAccount retrieves an account by ID
func (r *AccountRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	var a accountSQL
	err := r.db.GetContext(ctx, &a, "SELECT * FROM accounts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return toDomainAccount(&a), nil
}

// GetAccounts retrieves all accounts
func (r *AccountRepository) GetAccounts(ctx context.Context) ([]*domain.Account, error) {
	var rows []accountSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM accounts ORDER BY id"); err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	accounts := make([]*domain.Account, len(rows))
	for i := range rows {
		accounts[i] = toDomainAccount(&rows[i])
	}
	return accounts, nil
}

// EnsureDefaultAccount creates the local account on first start when no account
// exists yet, and returns the first account otherwise
func (r *AccountRepository) EnsureDefaultAccount(ctx context.Context) (*domain.Account, error) {
	accounts, err := r.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return accounts[0], nil
	}

	account := &domain.Account{Name: "Local", Kind: domain.AccountLocal}
	if err := r.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func toDomainAccount(a *accountSQL) *domain.Account {
	return &domain.Account{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      domain.AccountKind(a.Kind),
		CreatedAt: a.CreatedAt,
	}
}
