// Package entity defines the domain models for the identity feature.
package entity

// Identity is the user record resolved by the remote identity service.
// It is attached to the request context for the lifetime of one request
// and never persisted locally. ID is the ownership key for watchlists.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}
