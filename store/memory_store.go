package store

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/inkwellhq/inkwell/models"
)

// MemoryStore keeps posts in process memory. State is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	posts []models.Post
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: []models.Post{}}
}

func (s *MemoryStore) List(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.posts, func(p models.Post, _ int) models.Post {
		return p.Clone()
	}), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.indexOf(id)
	if index == -1 {
		return models.Post{}, false, nil
	}
	return s.posts[index].Clone(), true, nil
}

func (s *MemoryStore) Insert(_ context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(post.ID) != -1 {
		return ErrDuplicateID
	}
	s.posts = append(s.posts, post.Clone())
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, id string, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index == -1 {
		return ErrNotFound
	}
	// A record may only move to another id if that id is free.
	if post.ID != id && s.indexOf(post.ID) != -1 {
		return ErrDuplicateID
	}
	s.posts[index] = post.Clone()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index == -1 {
		return false, nil
	}
	s.posts = append(s.posts[:index], s.posts[index+1:]...)
	return true, nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts), nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id string) int {
	_, index, ok := lo.FindIndexOf(s.posts, func(p models.Post) bool {
		return p.ID == id
	})
	if !ok {
		return -1
	}
	return index
}
