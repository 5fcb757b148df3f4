package domain

import "time"

// AccountKind identifies the sync protocol an account speaks
type AccountKind string

// known account kinds
const (
	AccountLocal   AccountKind = "local"   // feeds fetched directly by this instance
	AccountGReader AccountKind = "greader" // Google-Reader-compatible remote service
)

// Account owns groups of feeds and selects the sync protocol for them
type Account struct {
	ID        int64
	Name      string
	Kind      AccountKind
	CreatedAt time.Time
}

// Group is a named collection of feeds under an account, names unique per account
type Group struct {
	ID        int64
	AccountID int64
	Name      string
	CreatedAt time.Time
}
