package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores for missing rows
var ErrNotFound = errors.New("not found")

// ConflictError reports an unexpected concurrent write. The per-feed
// serialization should make it impossible, it is detected and surfaced rather
// than silently dropped.
type ConflictError struct {
	FeedID int64
	GUID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting concurrent write for feed %d guid %q", e.FeedID, e.GUID)
}
