// Package notify delivers notifications about newly synced articles.
// It is a boundary: the sync engine decides which articles qualify and
// hands them over, dispatchers only deliver.
package notify

import (
	"context"

	"github.com/go-pkgz/lgr"
)

// Notification describes one newly inserted article worth telling the user about
type Notification struct {
	AccountID    int64  `json:"account_id"`
	FeedTitle    string `json:"feed_title"`
	ArticleTitle string `json:"article_title"`
	Link         string `json:"link"`
}

// Dispatcher delivers a batch of notifications
type Dispatcher interface {
	Send(ctx context.Context, notifications []Notification) error
}

// LogDispatcher writes notifications to the log, used when no external
// channel is configured
type LogDispatcher struct{}

// Send logs each notification
func (LogDispatcher) Send(_ context.Context, notifications []Notification) error {
	for _, n := range notifications {
		lgr.Printf("[INFO] new article in %q: %s (%s)", n.FeedTitle, n.ArticleTitle, n.Link)
	}
	return nil
}
