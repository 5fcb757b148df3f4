package domain

import "time"

// Feed represents a subscribed source, identified by (account, URL)
type Feed struct {
	ID            int64
	AccountID     int64
	GroupID       int64
	URL           string
	Title         string
	SiteURL       string
	IconURL       string
	Notify        bool // per-feed notification flag
	FullContent   bool // fetch readable article body when the feed only has summaries
	FetchInterval int  // seconds between periodic syncs
	ETag          string
	LastModified  string
	LastSynced    *time.Time
	LastError     string
	ErrorCount    int
	CreatedAt     time.Time
}

// CacheValidators carries conditional-request state between fetches of one feed
type CacheValidators struct {
	ETag         string
	LastModified string
}

// Validators returns the feed's stored cache validators
func (f *Feed) Validators() CacheValidators {
	return CacheValidators{ETag: f.ETag, LastModified: f.LastModified}
}

// Due reports whether the feed's fetch interval has elapsed since the last
// sync. Never-synced feeds and feeds without an interval are always due.
func (f *Feed) Due(now time.Time) bool {
	if f.LastSynced == nil || f.FetchInterval <= 0 {
		return true
	}
	return now.Sub(*f.LastSynced) >= time.Duration(f.FetchInterval)*time.Second
}
