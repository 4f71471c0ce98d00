package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/store"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `
[[posts]]
id = "welcome"
title = "Welcome"
content = """
First line
Second line"""
author = "Ann"
created_at = 2024-02-03T04:05:06Z
`)

	posts, err := store.LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "welcome", posts[0].ID)
	assert.Equal(t, "Ann", posts[0].Author)
	assert.Equal(t, []string{"First line", "Second line"}, posts[0].Paragraphs())
	assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), posts[0].CreatedAt)
	assert.Nil(t, posts[0].UpdatedAt)
}

func TestLoadSeedFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid toml", body: "[[posts]\n"},
		{name: "missing id", body: "[[posts]]\ntitle = \"T\"\ncreated_at = 2024-01-01T00:00:00Z\n"},
		{name: "missing created_at", body: "[[posts]]\nid = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.LoadSeedFile(writeSeed(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := store.LoadSeedFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestSeedDefault(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, store.Seed(ctx, s, store.DefaultSeed()))
	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	post, ok, err := s.Get(ctx, "2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "John Smith", post.Author)
}

func TestSeedDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	posts := []models.Post{newPost("x"), newPost("x")}

	err := store.Seed(ctx, s, posts)
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}
