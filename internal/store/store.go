// Package store persists editor snippets for the preview server.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no snippet has the requested id.
var ErrNotFound = errors.New("snippet not found")

// Snippet is a saved diagram source document.
type Snippet struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists snippets.
type Store interface {
	// Save inserts the snippet, or updates it when the id already exists.
	Save(sn *Snippet) error

	// Get returns the snippet with the given id, or ErrNotFound.
	Get(id string) (*Snippet, error)

	// List returns snippets ordered by most recent update. limit <= 0
	// returns all of them.
	List(limit int) ([]*Snippet, error)

	// Delete removes the snippet with the given id, or returns
	// ErrNotFound when it does not exist.
	Delete(id string) error

	// Close releases the underlying database.
	Close() error
}
