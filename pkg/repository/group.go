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

// GroupRepository handles group-related database operations
type GroupRepository struct {
	db dbx
}

// groupSQL represents a group for SQL operations
type groupSQL struct {
	ID        int64     `db:"id"`
	AccountID int64     `db:"account_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(database *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: database}
}

// EnsureGroup returns the named group for the account, creating it when missing
func (r *GroupRepository) EnsureGroup(ctx context.Context, accountID int64, name string) (*domain.Group, error) {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx,
			`INSERT INTO groups (account_id, name) VALUES (?, ?) ON CONFLICT(account_id, name) DO NOTHING`,
			accountID, name)
		return execErr
	})
	if err != nil {
		return nil, fmt.Errorf("ensure group: %w", err)
	}
	return r.GetGroupByName(ctx, accountID, name)
}

// GetGroupByName retrieves a group by account and name
func (r *GroupRepository) GetGroupByName(ctx context.Context, accountID int64, name string) (*domain.Group, error) {
	var g groupSQL
	err := r.db.GetContext(ctx, &g, "SELECT * FROM groups WHERE account_id = ? AND name = ?", accountID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get group by name: %w", err)
	}
	return toDomainGroup(&g), nil
}

// GetGroups retrieves the account's groups in insertion order
func (r *GroupRepository) GetGroups(ctx context.Context, accountID int64) ([]*domain.Group, error) {
	var rows []groupSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM groups WHERE account_id = ? ORDER BY id", accountID)
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}
	groups := make([]*domain.Group, len(rows))
	for i := range rows {
		groups[i] = toDomainGroup(&rows[i])
	}
	return groups, nil
}

// DeleteGroup removes an empty group, feeds must be moved out first
func (r *GroupRepository) DeleteGroup(ctx context.Context, id int64) error {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM feeds WHERE group_id = ?", id); err != nil {
		return fmt.Errorf("count group feeds: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("group %d still has %d feeds", id, count)
	}

	return withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
		return err
	})
}

func toDomainGroup(g *groupSQL) *domain.Group {
	return &domain.Group{
		ID:        g.ID,
		AccountID: g.AccountID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}
