// Package store holds the authoritative collection of posts.
package store

import (
	"context"
	"errors"

	"github.com/inkwellhq/inkwell/models"
)

var (
	// ErrNotFound is returned by Replace when no post has the given id.
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateID is returned by Insert when the id is already taken.
	ErrDuplicateID = errors.New("post id already exists")
	// ErrUnavailable wraps backend failures of networked stores.
	ErrUnavailable = errors.New("post store unavailable")
)

// Store is the post collection. Implementations must never expose their
// internal records: every returned Post is a copy.
type Store interface {
	// List returns a snapshot of all posts in insertion order.
	List(ctx context.Context) ([]models.Post, error)
	// Get returns the post with the given id, or false when absent.
	Get(ctx context.Context, id string) (models.Post, bool, error)
	// Insert adds a new post.
	Insert(ctx context.Context, post models.Post) error
	// Replace overwrites the post stored under id.
	Replace(ctx context.Context, id string, post models.Post) error
	// Remove deletes the post with the given id and reports whether it existed.
	Remove(ctx context.Context, id string) (bool, error)
	// Len returns the number of stored posts.
	Len(ctx context.Context) (int, error)
}
