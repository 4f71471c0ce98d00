package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/store"
)

func newPost(id string) models.Post {
	return models.Post{
		ID:        id,
		Title:     "title " + id,
		Content:   "content " + id,
		Author:    "author " + id,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreInsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, s.Insert(ctx, newPost("a")))

	got, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, newPost("a"), got)

	_, ok, err = s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreInsertDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, s.Insert(ctx, newPost("a")))
	err := s.Insert(ctx, newPost("a"))
	assert.ErrorIs(t, err, store.ErrDuplicateID)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryStoreListIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Insert(ctx, newPost("a")))
	require.NoError(t, s.Insert(ctx, newPost("b")))

	snapshot, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	_, err = s.Remove(ctx, "a")
	require.NoError(t, err)
	updated := newPost("b")
	updated.Title = "changed"
	require.NoError(t, s.Replace(ctx, "b", updated))

	assert.Equal(t, "a", snapshot[0].ID)
	assert.Equal(t, "title b", snapshot[1].Title)

	snapshot[1].Title = "mutated by caller"
	got, _, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Title)
}

func TestMemoryStoreListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Insert(ctx, newPost(id)))
	}

	posts, err := s.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestMemoryStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Insert(ctx, newPost("a")))
	require.NoError(t, s.Insert(ctx, newPost("b")))

	err := s.Replace(ctx, "missing", newPost("missing"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.Replace(ctx, "a", newPost("b"))
	assert.ErrorIs(t, err, store.ErrDuplicateID)

	updated := newPost("a")
	updated.Title = "new"
	require.NoError(t, s.Replace(ctx, "a", updated))
	got, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)
}

func TestMemoryStoreRemove(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Insert(ctx, newPost("a")))

	removed, err := s.Remove(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryStoreConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Insert(ctx, newPost(fmt.Sprintf("p%d", i)))
		}(i)
	}
	wg.Wait()

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
