package syncer

import (
	"context"
	"fmt"

	"github.com/akovalev/feedsync/pkg/domain"
	"github.com/akovalev/feedsync/pkg/feed"
)

//go:generate moq -out mocks/protocol.go -pkg mocks -skip-ensure -fmt goimports . Protocol

// Protocol is the per-account sync capability. The orchestrator depends on
// this interface only, so account kinds with a remote backend plug in as
// alternative implementations.
type Protocol interface {
	// FetchFeeds returns the subscription list for the account
	FetchFeeds(ctx context.Context, accountID int64) ([]*domain.Feed, error)
	// FetchArticles pulls and parses the current articles of one feed
	FetchArticles(ctx context.Context, f *domain.Feed) (*feed.FetchedFeed, error)
	// PushReadState propagates a read/unread change to the account backend
	PushReadState(ctx context.Context, articleID int64, read bool) error
}

// FeedFetcher retrieves a feed document with conditional request support
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string, validators domain.CacheValidators) (*feed.FetchResult, error)
}

// FeedParser converts raw feed bytes into normalized articles
type FeedParser interface {
	Parse(data []byte, contentTypeHint string) (*feed.ParsedFeed, error)
}

// FeedLister reads the locally stored subscription list
type FeedLister interface {
	GetFeeds(ctx context.Context, accountID int64) ([]*domain.Feed, error)
}

// LocalProtocol serves accounts whose subscriptions live entirely in the
// local store. Articles come straight from the feed URLs.
type LocalProtocol struct {
	fetcher FeedFetcher
	parser  FeedParser
	feeds   FeedLister
}

// NewLocalProtocol creates the protocol variant for local accounts
func NewLocalProtocol(fetcher FeedFetcher, parser FeedParser, feeds FeedLister) *LocalProtocol {
	return &LocalProtocol{fetcher: fetcher, parser: parser, feeds: feeds}
}

// FetchFeeds lists the account's subscriptions from the local store
func (p *LocalProtocol) FetchFeeds(ctx context.Context, accountID int64) ([]*domain.Feed, error) {
	res, err := p.feeds.GetFeeds(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list feeds for account %d: %w", accountID, err)
	}
	return res, nil
}

// FetchArticles fetches the feed document with its stored cache validators
// and parses it. A not-modified answer is passed through without parsing.
func (p *LocalProtocol) FetchArticles(ctx context.Context, f *domain.Feed) (*feed.FetchedFeed, error) {
	fetched, err := p.fetcher.Fetch(ctx, f.URL, f.Validators())
	if err != nil {
		return nil, err
	}
	if fetched.NotModified {
		return &feed.FetchedFeed{NotModified: true, Validators: fetched.Validators}, nil
	}

	parsed, err := p.parser.Parse(fetched.Body, fetched.ContentType)
	if err != nil {
		return nil, err
	}
	return &feed.FetchedFeed{Parsed: parsed, Validators: fetched.Validators}, nil
}

// PushReadState is a no-op for local accounts, read state lives in the
// local store already
func (p *LocalProtocol) PushReadState(_ context.Context, _ int64, _ bool) error {
	return nil
}
