package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/akovalev/feedsync/pkg/domain"
)

//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore

// ArticleStore is the persistence surface the reconciler needs
type ArticleStore interface {
	InsertIfAbsent(ctx context.Context, a *domain.Article) (bool, error)
	GetByGUID(ctx context.Context, feedID int64, guid string) (*domain.Article, error)
	RefreshSummary(ctx context.Context, feedID int64, guid, title, summary string) error
}

// ReconcileResult reports what a single reconciliation pass changed.
// Inserted holds exactly the articles that did not exist before the pass,
// which is the only signal used for notification qualification.
type ReconcileResult struct {
	Inserted []*domain.Article
}

// Reconciler merges parsed articles into the store. Existing rows keep
// their read/starred/first-seen state untouched; at most title and summary
// are refreshed when the policy allows it.
type Reconciler struct {
	store            ArticleStore
	refreshSummaries bool
}

// NewReconciler creates a reconciler. With refreshSummaries enabled,
// already-known articles get their title and summary updated from the feed.
func NewReconciler(store ArticleStore, refreshSummaries bool) *Reconciler {
	return &Reconciler{store: store, refreshSummaries: refreshSummaries}
}

// Reconcile inserts previously-unseen articles for the feed and returns them.
// The caller must hold the feed's lock, reconciliation of a single feed is
// not safe to run concurrently with itself.
func (r *Reconciler) Reconcile(ctx context.Context, feedID int64, incoming []domain.RawArticle) (*ReconcileResult, error) {
	res := &ReconcileResult{}

	for _, raw := range incoming {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		article := &domain.Article{
			FeedID:    feedID,
			GUID:      raw.GUID,
			Title:     raw.Title,
			Link:      raw.Link,
			Summary:   raw.Summary,
			Content:   raw.Content,
			Author:    raw.Author,
			Enclosure: raw.Enclosure,
			Published: raw.Published,
		}

		inserted, err := r.store.InsertIfAbsent(ctx, article)
		if err != nil {
			return res, fmt.Errorf("insert article %q: %w", raw.GUID, err)
		}
		if inserted {
			res.Inserted = append(res.Inserted, article)
			continue
		}

		if r.refreshSummaries {
			if err := r.refresh(ctx, feedID, raw); err != nil {
				if conflict := (*domain.ConflictError)(nil); errors.As(err, &conflict) {
					return res, err
				}
				lgr.Printf("[WARN] failed to refresh summary for %q in feed %d: %v", raw.GUID, feedID, err)
			}
		}
	}

	return res, nil
}

// refresh updates title and summary of a known article when the feed changed
// them. A row missing for an identity the insert just reported as present
// means a concurrent write removed it, that is surfaced as a conflict.
func (r *Reconciler) refresh(ctx context.Context, feedID int64, raw domain.RawArticle) error {
	existing, err := r.store.GetByGUID(ctx, feedID, raw.GUID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ConflictError{FeedID: feedID, GUID: raw.GUID}
	}
	if err != nil {
		return err
	}
	if existing.Title == raw.Title && existing.Summary == raw.Summary {
		return nil
	}
	return r.store.RefreshSummary(ctx, feedID, raw.GUID, raw.Title, raw.Summary)
}
