// Package entity defines the domain models for the watchlist feature.
package entity

// Watchlist is a user-owned named collection of stock symbols.
//
// Invariants: (Name, OwnerID) is unique — no user has two watchlists with
// the same name — and OwnerID is immutable after creation. A watchlist is
// visible and editable only by its owner.
type Watchlist struct {
	ID      string   // Opaque identifier, assigned at creation
	Name    string   // Display name, unique per owner
	Symbols []string // Ordered symbol list
	OwnerID string   // Identity key of the owning user
}
