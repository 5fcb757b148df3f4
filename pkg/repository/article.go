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

// ArticleRepository handles article-related database operations. The insert
// path is insert-if-absent on (feed, guid), user state columns are never
// written by sync code.
type ArticleRepository struct {
	db dbx
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64     `db:"id"`
	FeedID      int64     `db:"feed_id"`
	GUID        string    `db:"guid"`
	Title       string    `db:"title"`
	Link        string    `db:"link"`
	Summary     string    `db:"summary"`
	Content     string    `db:"content"`
	Author      string    `db:"author"`
	Enclosure   string    `db:"enclosure"`
	Published   time.Time `db:"published"`
	Read        bool      `db:"read"`
	Starred     bool      `db:"starred"`
	ExtractErr  string    `db:"extract_error"`
	FirstSeenAt time.Time `db:"first_seen_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// InsertIfAbsent inserts the article unless its (feed, guid) identity already
// exists. Returns true when a new row was created. An existing row is left
// completely untouched here, summary refresh is a separate explicit call.
func (r *ArticleRepository) InsertIfAbsent(ctx context.Context, a *domain.Article) (bool, error) {
	sqlArticle := &articleSQL{
		FeedID:    a.FeedID,
		GUID:      a.GUID,
		Title:     a.Title,
		Link:      a.Link,
		Summary:   a.Summary,
		Content:   a.Content,
		Author:    a.Author,
		Enclosure: a.Enclosure,
		Published: a.Published,
	}

	query := `
		INSERT INTO articles (feed_id, guid, title, link, summary, content, author, enclosure, published)
		VALUES (:feed_id, :guid, :title, :link, :summary, :content, :author, :enclosure, :published)
		ON CONFLICT(feed_id, guid) DO NOTHING
	`
	var result sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.NamedExecContext(ctx, query, sqlArticle)
		return execErr
	})
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		// the insert was skipped, so the identity must be present. If it is
		// not, a concurrent write removed it mid-pass, e.g. the feed deleted
		// under a running sync.
		present, err := r.Exists(ctx, a.FeedID, a.GUID)
		if err != nil {
			return false, err
		}
		if !present {
			return false, &domain.ConflictError{FeedID: a.FeedID, GUID: a.GUID}
		}
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("get insert id: %w", err)
	}
	a.ID = id
	return true, nil
}

// Exists checks whether the (feed, guid) identity is already stored
func (r *ArticleRepository) Exists(ctx context.Context, feedID int64, guid string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE feed_id = ? AND guid = ?)", feedID, guid)
	if err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return exists, nil
}

// GetArticle retrieves an article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var a articleSQL
	err := r.db.GetContext(ctx, &a, "SELECT * FROM articles WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return toDomainArticle(&a), nil
}

// GetByGUID retrieves an article by its (feed, guid) identity
func (r *ArticleRepository) GetByGUID(ctx context.Context, feedID int64, guid string) (*domain.Article, error) {
	var a articleSQL
	err := r.db.GetContext(ctx, &a, "SELECT * FROM articles WHERE feed_id = ? AND guid = ?", feedID, guid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %s: %w", guid, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article by guid: %w", err)
	}
	return toDomainArticle(&a), nil
}

// GetArticles retrieves a feed's articles, newest first
func (r *ArticleRepository) GetArticles(ctx context.Context, feedID int64, limit, offset int) ([]*domain.Article, error) {
	var rows []articleSQL
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM articles WHERE feed_id = ?
		ORDER BY published DESC, id DESC
		LIMIT ? OFFSET ?
	`, feedID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}

	articles := make([]*domain.Article, len(rows))
	for i := range rows {
		articles[i] = toDomainArticle(&rows[i])
	}
	return articles, nil
}

// CountByFeed returns the number of stored articles for a feed
func (r *ArticleRepository) CountByFeed(ctx context.Context, feedID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE feed_id = ?", feedID); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// RefreshSummary updates feed-supplied fields on an existing row. User state
// and first-seen are deliberately not in the column list.
func (r *ArticleRepository) RefreshSummary(ctx context.Context, feedID int64, guid, title, summary string) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx,
			"UPDATE articles SET title = ?, summary = ? WHERE feed_id = ? AND guid = ?",
			title, summary, feedID, guid)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("refresh article summary: %w", err)
	}
	return nil
}

// UpdateExtraction stores the full-content backfill result or its error
func (r *ArticleRepository) UpdateExtraction(ctx context.Context, articleID int64, content, extractErr string) error {
	err := withLockRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx,
			"UPDATE articles SET content = ?, extract_error = ? WHERE id = ?",
			content, extractErr, articleID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update article extraction: %w", err)
	}
	return nil
}

// SetRead flips the user read flag
func (r *ArticleRepository) SetRead(ctx context.Context, articleID int64, read bool) error {
	var result sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, "UPDATE articles SET read = ? WHERE id = ?", read, articleID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("set article read: %w", err)
	}
	return checkUpdated(result, articleID)
}

// SetStarred flips the user starred flag
func (r *ArticleRepository) SetStarred(ctx context.Context, articleID int64, starred bool) error {
	var result sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, "UPDATE articles SET starred = ? WHERE id = ?", starred, articleID)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("set article starred: %w", err)
	}
	return checkUpdated(result, articleID)
}

// checkUpdated maps a zero-row update to ErrNotFound
func checkUpdated(result sql.Result, articleID int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("article %d: %w", articleID, domain.ErrNotFound)
	}
	return nil
}

func toDomainArticle(a *articleSQL) *domain.Article {
	return &domain.Article{
		ID:          a.ID,
		FeedID:      a.FeedID,
		GUID:        a.GUID,
		Title:       a.Title,
		Link:        a.Link,
		Summary:     a.Summary,
		Content:     a.Content,
		Author:      a.Author,
		Enclosure:   a.Enclosure,
		Published:   a.Published,
		Read:        a.Read,
		Starred:     a.Starred,
		ExtractErr:  a.ExtractErr,
		FirstSeenAt: a.FirstSeenAt,
	}
}
