package domain

import "time"

// ScopeKind selects what a sync run covers
type ScopeKind string

// sync scope kinds
const (
	ScopeAll     ScopeKind = "all"
	ScopeAccount ScopeKind = "account"
	ScopeFeed    ScopeKind = "feed"
)

// SyncScope narrows a run to everything, one account or one feed
type SyncScope struct {
	Kind      ScopeKind
	AccountID int64
	FeedID    int64
}

// ScopeEverything covers all feeds of all accounts
func ScopeEverything() SyncScope { return SyncScope{Kind: ScopeAll} }

// ScopeOfAccount covers all feeds of one account
func ScopeOfAccount(accountID int64) SyncScope {
	return SyncScope{Kind: ScopeAccount, AccountID: accountID}
}

// ScopeOfFeed covers a single feed
func ScopeOfFeed(feedID int64) SyncScope { return SyncScope{Kind: ScopeFeed, FeedID: feedID} }

// SyncReason records what triggered a run
type SyncReason string

// sync trigger reasons
const (
	ReasonPeriodic SyncReason = "periodic"
	ReasonManual   SyncReason = "manual"
	ReasonForced   SyncReason = "forced" // manual, ignoring cache validators
)

// OutcomeStatus is the per-feed result of one run
type OutcomeStatus string

// per-feed outcome statuses
const (
	OutcomeSuccess     OutcomeStatus = "success"
	OutcomeNotModified OutcomeStatus = "not-modified"
	OutcomeFetchError  OutcomeStatus = "fetch-error"
	OutcomeParseError  OutcomeStatus = "parse-error"
	OutcomeStoreError  OutcomeStatus = "store-error"
	OutcomeTimeout     OutcomeStatus = "timeout" // run deadline hit before the feed started or finished
)

// FeedOutcome is the result of one feed's pipeline within a run
type FeedOutcome struct {
	FeedID   int64
	FeedURL  string
	Status   OutcomeStatus
	Err      string
	Inserted int
	Elapsed  time.Duration
}

// SyncRunResult aggregates one orchestrator invocation. Ephemeral, consumed by
// the caller and the notification step, never persisted.
type SyncRunResult struct {
	Scope    SyncScope
	Reason   SyncReason
	Started  time.Time
	Elapsed  time.Duration
	Outcomes []FeedOutcome
	Inserted int // total newly inserted articles across all feeds
}

// Failed counts feeds that ended with any error status
func (r *SyncRunResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		switch o.Status {
		case OutcomeFetchError, OutcomeParseError, OutcomeStoreError, OutcomeTimeout:
			n++
		}
	}
	return n
}
