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

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db dbx
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID            int64      `db:"id"`
	AccountID     int64      `db:"account_id"`
	GroupID       int64      `db:"group_id"`
	URL           string     `db:"url"`
	Title         string     `db:"title"`
	SiteURL       string     `db:"site_url"`
	IconURL       string     `db:"icon_url"`
	Notify        bool       `db:"notify"`
	FullContent   bool       `db:"full_content"`
	FetchInterval int        `db:"fetch_interval"`
	ETag          string     `db:"etag"`
	LastModified  string     `db:"last_modified"`
	LastSynced    *time.Time `db:"last_synced"`
	LastError     string     `db:"last_error"`
	ErrorCount    int        `db:"error_count"`
	CreatedAt     time.Time  `db:"created_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed, URL identity is unique per account
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	if feed.FetchInterval == 0 {
		feed.FetchInterval = 1800
	}

	sqlFeed := &feedSQL{
		AccountID:     feed.AccountID,
		GroupID:       feed.GroupID,
		URL:           feed.URL,
		Title:         feed.Title,
		SiteURL:       feed.SiteURL,
		IconURL:       feed.IconURL,
		Notify:        feed.Notify,
		FullContent:   feed.FullContent,
		FetchInterval: feed.FetchInterval,
	}

	query := `
		INSERT INTO feeds (account_id, group_id, url, title, site_url, icon_url, notify, full_content, fetch_interval)
		VALUES (:account_id, :group_id, :url, :title, :site_url, :icon_url, :notify, :full_content, :fetch_interval)
	`
	var result sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.NamedExecContext(ctx, query, sqlFeed)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("create feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	feed.ID = id
	return nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var f feedSQL
	err := r.db.GetContext(ctx, &f, "SELECT * FROM feeds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return toDomainFeed(&f), nil
}

// GetFeedByURL retrieves a feed by its (account, URL) identity
func (r *FeedRepository) GetFeedByURL(ctx context.Context, accountID int64, url string) (*domain.Feed, error) {
	var f feedSQL
	err := r.db.GetContext(ctx, &f, "SELECT * FROM feeds WHERE account_id = ? AND url = ?", accountID, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed %s: %w", url, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return toDomainFeed(&f), nil
}

// GetFeeds retrieves all feeds of one account
func (r *FeedRepository) GetFeeds(ctx context.Context, accountID int64) ([]*domain.Feed, error) {
	var rows []feedSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM feeds WHERE account_id = ? ORDER BY id", accountID)
	if err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}
	return toDomainFeeds(rows), nil
}

// GetAllFeeds retrieves feeds across every account
func (r *FeedRepository) GetAllFeeds(ctx context.Context) ([]*domain.Feed, error) {
	var rows []feedSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM feeds ORDER BY account_id, id")
	if err != nil {
		return nil, fmt.Errorf("get all feeds: %w", err)
	}
	return toDomainFeeds(rows), nil
}

// UpdateFeedSynced records a successful sync: timestamp, cleared error and the
// cache validators for the next conditional request
func (r *FeedRepository) UpdateFeedSynced(ctx context.Context, feedID int64, validators domain.CacheValidators) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, `
			UPDATE feeds
			SET last_synced = datetime('now'),
			    last_error = '',
			    error_count = 0,
			    etag = ?,
			    last_modified = ?
			WHERE id = ?
		`, validators.ETag, validators.LastModified, feedID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update feed synced: %w", err)
	}
	return nil
}

// UpdateFeedError records a failed sync, the timestamp still advances so
// staleness stays observable
func (r *FeedRepository) UpdateFeedError(ctx context.Context, feedID int64, errMsg string) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, `
			UPDATE feeds
			SET last_synced = datetime('now'),
			    last_error = ?,
			    error_count = error_count + 1
			WHERE id = ?
		`, errMsg, feedID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update feed error: %w", err)
	}
	return nil
}

// UpdateFeedMeta refreshes feed-supplied fields discovered during sync
func (r *FeedRepository) UpdateFeedMeta(ctx context.Context, feedID int64, title, siteURL string) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx,
			"UPDATE feeds SET title = ?, site_url = ? WHERE id = ? AND title = ''",
			title, siteURL, feedID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update feed meta: %w", err)
	}
	return nil
}

// UpdateFeedFlags sets the user-controlled subscription flags
func (r *FeedRepository) UpdateFeedFlags(ctx context.Context, feedID int64, notify, fullContent bool) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx,
			"UPDATE feeds SET notify = ?, full_content = ? WHERE id = ?", notify, fullContent, feedID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update feed flags: %w", err)
	}
	return nil
}

// UpdateFeedGroup moves a feed to another group
func (r *FeedRepository) UpdateFeedGroup(ctx context.Context, feedID, groupID int64) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, "UPDATE feeds SET group_id = ? WHERE id = ?", groupID, feedID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update feed group: %w", err)
	}
	return nil
}

// DeleteFeed unsubscribes, removing the feed and its articles
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	var result sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomainFeed(f *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:            f.ID,
		AccountID:     f.AccountID,
		GroupID:       f.GroupID,
		URL:           f.URL,
		Title:         f.Title,
		SiteURL:       f.SiteURL,
		IconURL:       f.IconURL,
		Notify:        f.Notify,
		FullContent:   f.FullContent,
		FetchInterval: f.FetchInterval,
		ETag:          f.ETag,
		LastModified:  f.LastModified,
		LastSynced:    f.LastSynced,
		LastError:     f.LastError,
		ErrorCount:    f.ErrorCount,
		CreatedAt:     f.CreatedAt,
	}
}

func toDomainFeeds(rows []feedSQL) []*domain.Feed {
	feeds := make([]*domain.Feed, len(rows))
	for i := range rows {
		feeds[i] = toDomainFeed(&rows[i])
	}
	return feeds
}
