package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// preference keys read by the sync engine
const (
	SettingNotificationsEnabled = "notifications_enabled"
	SettingHighlightStarred     = "highlight_starred" // notify only for starred-priority matches
	SettingSyncUnmeteredOnly    = "sync_unmetered_only"
)

// SettingRepository is the key-value preference boundary
type SettingRepository struct {
	db dbx
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(database *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: database}
}

// GetSetting retrieves a setting value, empty string when unset
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// GetBool reads a boolean toggle, returning the default when unset
func (r *SettingRepository) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	value, err := r.GetSetting(ctx, key)
	if err != nil {
		return def, err
	}
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def, nil // unparseable value behaves like unset
	}
	return parsed, nil
}

// SetBool stores a boolean toggle
func (r *SettingRepository) SetBool(ctx context.Context, key string, value bool) error {
	return r.SetSetting(ctx, key, strconv.FormatBool(value))
}

// NotificationsEnabled reports the global notification toggle, on by default
func (r *SettingRepository) NotificationsEnabled(ctx context.Context) (bool, error) {
	return r.GetBool(ctx, SettingNotificationsEnabled, true)
}

// HighlightStarredOnly reports the starred-priority highlight preference,
// on by default
func (r *SettingRepository) HighlightStarredOnly(ctx context.Context) (bool, error) {
	return r.GetBool(ctx, SettingHighlightStarred, true)
}

// SyncUnmeteredOnly reports whether periodic sync should run only on
// unmetered networks, off by default
func (r *SettingRepository) SyncUnmeteredOnly(ctx context.Context) (bool, error) {
	return r.GetBool(ctx, SettingSyncUnmeteredOnly, false)
}
