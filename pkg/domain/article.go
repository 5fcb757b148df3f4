package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RawArticle is one normalized entry produced by the parser, before reconciliation
type RawArticle struct {
	GUID      string
	Title     string
	Link      string
	Summary   string
	Content   string
	Author    string
	Enclosure string
	Published time.Time
}

// Article is a persisted entry belonging to a feed.
// Identity is (feed, GUID); re-syncing the same entry never creates another row
// and never resets the user-owned Read/Starred flags.
type Article struct {
	ID          int64
	FeedID      int64
	GUID        string
	Title       string
	Link        string
	Summary     string
	Content     string // empty until full-content extraction backfills it
	Author      string
	Enclosure   string
	Published   time.Time
	Read        bool
	Starred     bool
	ExtractErr  string
	FirstSeenAt time.Time
}

// ContentHash derives a stable identity for entries that carry no usable GUID
func ContentHash(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}
