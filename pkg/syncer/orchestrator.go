// Package syncer runs the feed synchronization pipelines: fetch, parse,
// optional full-content extraction and reconciliation into the store,
// with bounded concurrency across feeds and strict serialization per feed.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/akovalev/feedsync/pkg/content"
	"github.com/akovalev/feedsync/pkg/domain"
	"github.com/akovalev/feedsync/pkg/feed"
	"github.com/akovalev/feedsync/pkg/notify"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/extraction_store.go -pkg mocks -skip-ensure -fmt goimports . ExtractionStore
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/preferences.go -pkg mocks -skip-ensure -fmt goimports . Preferences
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher

// FeedStore is the feed-level persistence surface the orchestrator needs
type FeedStore interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetAllFeeds(ctx context.Context) ([]*domain.Feed, error)
	UpdateFeedSynced(ctx context.Context, feedID int64, validators domain.CacheValidators) error
	UpdateFeedError(ctx context.Context, feedID int64, errMsg string) error
	UpdateFeedMeta(ctx context.Context, feedID int64, title, siteURL string) error
}

// ExtractionStore persists full-content extraction results per article
type ExtractionStore interface {
	UpdateExtraction(ctx context.Context, articleID int64, content, extractErr string) error
}

// Extractor pulls the full content of an article page
type Extractor interface {
	Extract(ctx context.Context, urlStr string) (*content.ExtractResult, error)
}

// Preferences exposes the user toggles the engine consults
type Preferences interface {
	NotificationsEnabled(ctx context.Context) (bool, error)
	HighlightStarredOnly(ctx context.Context) (bool, error)
	SyncUnmeteredOnly(ctx context.Context) (bool, error)
}

// Dispatcher receives qualifying newly inserted articles
type Dispatcher interface {
	Send(ctx context.Context, notifications []notify.Notification) error
}

// NotifyPolicy is the configurable notification predicate. An inserted
// article qualifies when every enabled condition holds.
type NotifyPolicy struct {
	RequireFeedFlag     bool // feed must have its notify flag on
	RequireGlobalToggle bool // the global notifications preference must be on
	// Priority filters articles further when the highlight-priority
	// preference is on. Nil means no extra filtering.
	Priority func(a *domain.Article) bool
}

// DefaultNotifyPolicy gates on the per-feed flag and the global toggle
func DefaultNotifyPolicy() NotifyPolicy {
	return NotifyPolicy{RequireFeedFlag: true, RequireGlobalToggle: true}
}

// PriorityByKeywords builds a priority predicate matching articles whose
// title or summary contains any of the keywords, case-insensitive. Used with
// the highlight-priority preference to narrow notifications down.
func PriorityByKeywords(keywords []string) func(a *domain.Article) bool {
	lowered := lo.Map(keywords, func(k string, _ int) string { return strings.ToLower(k) })
	return func(a *domain.Article) bool {
		text := strings.ToLower(a.Title + " " + a.Summary)
		return lo.SomeBy(lowered, func(k string) bool { return k != "" && strings.Contains(text, k) })
	}
}

// Params holds orchestrator dependencies and tuning
type Params struct {
	Protocol        Protocol
	Extractor       Extractor
	FeedStore       FeedStore
	ExtractionStore ExtractionStore
	Reconciler      *Reconciler
	Preferences     Preferences
	Dispatcher      Dispatcher
	Policy          NotifyPolicy
	MaxWorkers      int
	RunTimeout      time.Duration
	MinTextLength   int // threshold for the shallow-summary heuristic
}

// Orchestrator runs sync pipelines over a scope of feeds. Safe for
// concurrent use, overlapping runs serialize per feed.
type Orchestrator struct {
	protocol    Protocol
	extractor   Extractor
	feeds       FeedStore
	extractions ExtractionStore
	reconciler  *Reconciler
	prefs       Preferences
	dispatcher  Dispatcher
	policy      NotifyPolicy
	maxWorkers  int
	runTimeout  time.Duration
	minTextLen  int
	locks       *feedLocks
}

// NewOrchestrator creates an orchestrator with the given dependencies
func NewOrchestrator(p Params) *Orchestrator {
	if p.MaxWorkers == 0 {
		p.MaxWorkers = 5
	}
	if p.MinTextLength == 0 {
		p.MinTextLength = 100
	}
	return &Orchestrator{
		protocol:    p.Protocol,
		extractor:   p.Extractor,
		feeds:       p.FeedStore,
		extractions: p.ExtractionStore,
		reconciler:  p.Reconciler,
		prefs:       p.Preferences,
		dispatcher:  p.Dispatcher,
		policy:      p.Policy,
		maxWorkers:  p.MaxWorkers,
		runTimeout:  p.RunTimeout,
		minTextLen:  p.MinTextLength,
		locks:       newFeedLocks(),
	}
}

// SyncAll runs the pipeline for every feed in scope. Feed failures are
// isolated per feed, the run itself fails only when the scope cannot be
// enumerated.
func (o *Orchestrator) SyncAll(ctx context.Context, scope domain.SyncScope, reason domain.SyncReason) (*domain.SyncRunResult, error) {
	started := time.Now()

	runCtx := ctx
	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	feeds, err := o.feedsForScope(runCtx, scope)
	if err != nil {
		return nil, fmt.Errorf("enumerate feeds: %w", err)
	}
	if reason == domain.ReasonPeriodic {
		// periodic runs honor per-feed fetch intervals, manual and forced
		// runs always touch everything in scope
		now := time.Now()
		feeds = lo.Filter(feeds, func(f *domain.Feed, _ int) bool { return f.Due(now) })
	}

	lgr.Printf("[INFO] sync run started: scope=%s reason=%s feeds=%d", scope.Kind, reason, len(feeds))

	outcomes := make([]domain.FeedOutcome, len(feeds))
	notifs := make([][]notify.Notification, len(feeds))

	var g errgroup.Group
	g.SetLimit(o.maxWorkers)
	for i, f := range feeds {
		g.Go(func() error {
			if runCtx.Err() != nil {
				// run deadline hit before this feed started, skip it
				outcomes[i] = domain.FeedOutcome{FeedID: f.ID, FeedURL: f.URL, Status: domain.OutcomeTimeout, Err: runCtx.Err().Error()}
				return nil
			}
			outcomes[i], notifs[i] = o.syncOne(runCtx, f, reason)
			return nil
		})
	}
	_ = g.Wait() // workers report failures via outcomes, never as errors

	result := &domain.SyncRunResult{
		Scope:    scope,
		Reason:   reason,
		Started:  started,
		Elapsed:  time.Since(started),
		Outcomes: outcomes,
		Inserted: lo.SumBy(outcomes, func(o domain.FeedOutcome) int { return o.Inserted }),
	}

	// dispatch on the caller's context, a run that hit its deadline still
	// delivers the notifications it collected
	o.dispatch(context.WithoutCancel(ctx), lo.Flatten(notifs))

	lgr.Printf("[INFO] sync run completed in %v: %d feeds, %d inserted, %d failed",
		result.Elapsed, len(outcomes), result.Inserted, result.Failed())
	return result, nil
}

// SyncFeed runs the pipeline for a single feed, used for manual refresh
func (o *Orchestrator) SyncFeed(ctx context.Context, feedID int64, reason domain.SyncReason) (*domain.SyncRunResult, error) {
	return o.SyncAll(ctx, domain.ScopeOfFeed(feedID), reason)
}

func (o *Orchestrator) feedsForScope(ctx context.Context, scope domain.SyncScope) ([]*domain.Feed, error) {
	switch scope.Kind {
	case domain.ScopeFeed:
		f, err := o.feeds.GetFeed(ctx, scope.FeedID)
		if err != nil {
			return nil, err
		}
		return []*domain.Feed{f}, nil
	case domain.ScopeAccount:
		return o.protocol.FetchFeeds(ctx, scope.AccountID)
	default:
		return o.feeds.GetAllFeeds(ctx)
	}
}

// syncOne runs the full pipeline for one feed under its lock
func (o *Orchestrator) syncOne(ctx context.Context, f *domain.Feed, reason domain.SyncReason) (domain.FeedOutcome, []notify.Notification) {
	start := time.Now()
	outcome := domain.FeedOutcome{FeedID: f.ID, FeedURL: f.URL}

	o.locks.lock(f.ID)
	defer o.locks.unlock(f.ID)

	target := *f
	if reason == domain.ReasonForced {
		// forced refresh bypasses conditional request validators
		target.ETag, target.LastModified = "", ""
	}

	fetched, err := o.protocol.FetchArticles(ctx, &target)
	if err != nil {
		outcome.Status = classifyOutcome(err)
		outcome.Err = err.Error()
		outcome.Elapsed = time.Since(start)
		lgr.Printf("[WARN] sync failed for %s: %v", f.URL, err)
		o.recordError(ctx, f.ID, err)
		return outcome, nil
	}

	if fetched.NotModified {
		// nothing new, but the staleness clock still advances
		outcome.Status = domain.OutcomeNotModified
		outcome.Elapsed = time.Since(start)
		o.recordSynced(ctx, f.ID, fetched.Validators)
		return outcome, nil
	}

	if err := o.feeds.UpdateFeedMeta(ctx, f.ID, fetched.Parsed.Title, fetched.Parsed.SiteURL); err != nil {
		lgr.Printf("[WARN] failed to update metadata for %s: %v", f.URL, err)
	}

	rec, err := o.reconciler.Reconcile(ctx, f.ID, fetched.Parsed.Articles)
	if err != nil {
		outcome.Status = classifyOutcome(err)
		outcome.Err = err.Error()
		outcome.Inserted = len(rec.Inserted)
		outcome.Elapsed = time.Since(start)
		lgr.Printf("[WARN] reconciliation failed for %s: %v", f.URL, err)
		o.recordError(ctx, f.ID, err)
		return outcome, nil
	}

	if f.FullContent {
		o.backfillContent(ctx, rec.Inserted)
	}

	outcome.Status = domain.OutcomeSuccess
	outcome.Inserted = len(rec.Inserted)
	outcome.Elapsed = time.Since(start)
	o.recordSynced(ctx, f.ID, fetched.Validators)

	if outcome.Inserted > 0 {
		lgr.Printf("[INFO] %d new articles from %s", outcome.Inserted, f.URL)
	}
	return outcome, o.qualify(ctx, f, rec.Inserted)
}

// backfillContent extracts full content for inserted articles whose feed
// summary looks too thin to stand on its own
func (o *Orchestrator) backfillContent(ctx context.Context, inserted []*domain.Article) {
	if o.extractor == nil || o.extractions == nil {
		return
	}
	for _, a := range inserted {
		if a.Link == "" || !content.IsShallow(a.Title, a.Summary, o.minTextLen) {
			continue
		}
		res, err := o.extractor.Extract(ctx, a.Link)
		if err != nil {
			lgr.Printf("[WARN] extraction failed for %s: %v", a.Link, err)
			if serr := o.extractions.UpdateExtraction(ctx, a.ID, "", err.Error()); serr != nil {
				lgr.Printf("[WARN] failed to store extraction error for %s: %v", a.Link, serr)
			}
			continue
		}
		if err := o.extractions.UpdateExtraction(ctx, a.ID, res.RichHTML, ""); err != nil {
			lgr.Printf("[WARN] failed to store extracted content for %s: %v", a.Link, err)
		}
	}
}

// qualify applies the notification policy to the inserted articles
func (o *Orchestrator) qualify(ctx context.Context, f *domain.Feed, inserted []*domain.Article) []notify.Notification {
	if len(inserted) == 0 || o.dispatcher == nil {
		return nil
	}
	if o.policy.RequireFeedFlag && !f.Notify {
		return nil
	}
	if o.policy.RequireGlobalToggle && o.prefs != nil {
		enabled, err := o.prefs.NotificationsEnabled(ctx)
		if err != nil {
			lgr.Printf("[WARN] failed to read notification toggle: %v", err)
		}
		if !enabled {
			return nil
		}
	}

	priorityOnly := false
	if o.policy.Priority != nil && o.prefs != nil {
		on, err := o.prefs.HighlightStarredOnly(ctx)
		if err != nil {
			lgr.Printf("[WARN] failed to read highlight preference: %v", err)
		}
		priorityOnly = on
	}

	res := make([]notify.Notification, 0, len(inserted))
	for _, a := range inserted {
		if priorityOnly && !o.policy.Priority(a) {
			continue
		}
		res = append(res, notify.Notification{
			AccountID:    f.AccountID,
			FeedTitle:    f.Title,
			ArticleTitle: a.Title,
			Link:         a.Link,
		})
	}
	return res
}

func (o *Orchestrator) dispatch(ctx context.Context, notifications []notify.Notification) {
	if o.dispatcher == nil || len(notifications) == 0 {
		return
	}
	if err := o.dispatcher.Send(ctx, notifications); err != nil {
		lgr.Printf("[WARN] notification dispatch failed: %v", err)
	}
}

func (o *Orchestrator) recordSynced(ctx context.Context, feedID int64, validators domain.CacheValidators) {
	if err := o.feeds.UpdateFeedSynced(ctx, feedID, validators); err != nil {
		lgr.Printf("[WARN] failed to update sync metadata for feed %d: %v", feedID, err)
	}
}

func (o *Orchestrator) recordError(ctx context.Context, feedID int64, cause error) {
	if err := o.feeds.UpdateFeedError(ctx, feedID, cause.Error()); err != nil {
		lgr.Printf("[WARN] failed to record sync error for feed %d: %v", feedID, err)
	}
}

// classifyOutcome maps a pipeline error to its outcome status
func classifyOutcome(err error) domain.OutcomeStatus {
	var fetchErr *feed.FetchError
	var parseErr *feed.ParseError
	switch {
	case errors.As(err, &fetchErr):
		if fetchErr.Kind == feed.KindTimeout {
			return domain.OutcomeTimeout
		}
		return domain.OutcomeFetchError
	case errors.As(err, &parseErr):
		return domain.OutcomeParseError
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return domain.OutcomeTimeout
	default:
		return domain.OutcomeStoreError
	}
}
