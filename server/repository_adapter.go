package server

import (
	"context"

	"github.com/akovalev/feedsync/pkg/domain"
	"github.com/akovalev/feedsync/pkg/opml"
	"github.com/akovalev/feedsync/pkg/repository"
)

// RepositoryAdapter flattens the per-entity repositories into the single
// persistence surface the server and the OPML importer work against
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates an adapter over the repositories
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// InTransaction runs fn against a transactional view of the adapter
func (a *RepositoryAdapter) InTransaction(ctx context.Context, fn func(tx opml.Store) error) error {
	return a.repos.InTransaction(ctx, func(tx *repository.Repositories) error {
		return fn(NewRepositoryAdapter(tx))
	})
}

// GetAccounts returns all accounts
func (a *RepositoryAdapter) GetAccounts(ctx context.Context) ([]*domain.Account, error) {
	return a.repos.Account.GetAccounts(ctx)
}

// GetFeed returns a feed by ID
func (a *RepositoryAdapter) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return a.repos.Feed.GetFeed(ctx, id)
}

// GetFeedByURL returns a feed by its (account, URL) identity
func (a *RepositoryAdapter) GetFeedByURL(ctx context.Context, accountID int64, url string) (*domain.Feed, error) {
	return a.repos.Feed.GetFeedByURL(ctx, accountID, url)
}

// GetFeeds returns feeds for an account
func (a *RepositoryAdapter) GetFeeds(ctx context.Context, accountID int64) ([]*domain.Feed, error) {
	return a.repos.Feed.GetFeeds(ctx, accountID)
}

// CreateFeed inserts a new feed
func (a *RepositoryAdapter) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	return a.repos.Feed.CreateFeed(ctx, feed)
}

// UpdateFeedFlags updates the notify and full-content toggles
func (a *RepositoryAdapter) UpdateFeedFlags(ctx context.Context, feedID int64, notify, fullContent bool) error {
	return a.repos.Feed.UpdateFeedFlags(ctx, feedID, notify, fullContent)
}

// UpdateFeedGroup moves a feed to another group
func (a *RepositoryAdapter) UpdateFeedGroup(ctx context.Context, feedID, groupID int64) error {
	return a.repos.Feed.UpdateFeedGroup(ctx, feedID, groupID)
}

// DeleteFeed removes a feed with its articles
func (a *RepositoryAdapter) DeleteFeed(ctx context.Context, id int64) error {
	return a.repos.Feed.DeleteFeed(ctx, id)
}

// GetGroups returns groups for an account
func (a *RepositoryAdapter) GetGroups(ctx context.Context, accountID int64) ([]*domain.Group, error) {
	return a.repos.Group.GetGroups(ctx, accountID)
}

// EnsureGroup returns an existing group by name or creates it
func (a *RepositoryAdapter) EnsureGroup(ctx context.Context, accountID int64, name string) (*domain.Group, error) {
	return a.repos.Group.EnsureGroup(ctx, accountID, name)
}

// GetArticles returns a page of articles for a feed
func (a *RepositoryAdapter) GetArticles(ctx context.Context, feedID int64, limit, offset int) ([]*domain.Article, error) {
	return a.repos.Article.GetArticles(ctx, feedID, limit, offset)
}

// SetRead sets the read flag on an article
func (a *RepositoryAdapter) SetRead(ctx context.Context, articleID int64, read bool) error {
	return a.repos.Article.SetRead(ctx, articleID, read)
}

// SetStarred sets the starred flag on an article
func (a *RepositoryAdapter) SetStarred(ctx context.Context, articleID int64, starred bool) error {
	return a.repos.Article.SetStarred(ctx, articleID, starred)
}
