package opml

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomakado/containers/set"

	"github.com/akovalev/feedsync/pkg/domain"
)

// DefaultGroupName receives entries that carry no group in the imported list
const DefaultGroupName = "Default"

// Store is the subscription persistence needed by the importer
type Store interface {
	EnsureGroup(ctx context.Context, accountID int64, name string) (*domain.Group, error)
	GetFeedByURL(ctx context.Context, accountID int64, url string) (*domain.Feed, error)
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	UpdateFeedGroup(ctx context.Context, feedID, groupID int64) error
}

// Txer runs a function against a transactional view of the store
type Txer interface {
	InTransaction(ctx context.Context, fn func(tx Store) error) error
}

// ImportStats reports what one import changed
type ImportStats struct {
	GroupsCreated int
	FeedsCreated  int
	FeedsMoved    int
	Skipped       int // already subscribed, left untouched
}

// Importer applies a parsed subscription list to an account. Default policy is
// additive, existing feeds keep their group unless overwrite is requested.
type Importer struct {
	store Store
	tx    Txer
}

// NewImporter creates an importer over the given store
func NewImporter(store Store) *Importer {
	return &Importer{store: store}
}

// NewTransactionalImporter creates an importer whose writes happen inside a
// single transaction, so a mid-import failure leaves the account untouched
func NewTransactionalImporter(store Store, tx Txer) *Importer {
	return &Importer{store: store, tx: tx}
}

// Import parses OPML bytes and creates missing groups and feeds for the
// account. The parse is all-or-nothing, nothing is written when the document
// is malformed. With a Txer the write phase is atomic as well.
func (i *Importer) Import(ctx context.Context, accountID int64, data []byte, overwrite bool) (*ImportStats, error) {
	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{}
	if i.tx != nil {
		err := i.tx.InTransaction(ctx, func(tx Store) error {
			return i.apply(ctx, tx, accountID, entries, overwrite, stats)
		})
		return stats, err
	}
	return stats, i.apply(ctx, i.store, accountID, entries, overwrite, stats)
}

func (i *Importer) apply(ctx context.Context, store Store, accountID int64, entries []Entry, overwrite bool, stats *ImportStats) error {
	seenGroups := set.New[string]()
	seenURLs := set.New[string]()

	for _, e := range entries {
		if e.XMLURL == "" || seenURLs.Contains(e.XMLURL) {
			continue
		}
		seenURLs.Add(e.XMLURL)

		groupName := e.Group
		if groupName == "" {
			groupName = DefaultGroupName
		}

		group, err := store.EnsureGroup(ctx, accountID, groupName)
		if err != nil {
			return fmt.Errorf("ensure group %q: %w", groupName, err)
		}
		if !seenGroups.Contains(groupName) {
			seenGroups.Add(groupName)
			stats.GroupsCreated++ // counts touched groups, creation is idempotent
		}

		existing, err := store.GetFeedByURL(ctx, accountID, e.XMLURL)
		switch {
		case err == nil:
			if overwrite && existing.GroupID != group.ID {
				if err := store.UpdateFeedGroup(ctx, existing.ID, group.ID); err != nil {
					return fmt.Errorf("reassign feed %s: %w", e.XMLURL, err)
				}
				stats.FeedsMoved++
				continue
			}
			stats.Skipped++
		case errors.Is(err, domain.ErrNotFound):
			feed := &domain.Feed{
				AccountID: accountID,
				GroupID:   group.ID,
				URL:       e.XMLURL,
				Title:     e.Title,
				SiteURL:   e.HTMLURL,
			}
			if err := store.CreateFeed(ctx, feed); err != nil {
				return fmt.Errorf("create feed %s: %w", e.XMLURL, err)
			}
			stats.FeedsCreated++
		default:
			return fmt.Errorf("lookup feed %s: %w", e.XMLURL, err)
		}
	}

	return nil
}
