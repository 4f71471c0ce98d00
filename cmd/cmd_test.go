package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/store"
)

const validSeed = `
[[posts]]
id = "a"
title = "First"
content = "Hello"
author = "Ann"
created_at = 2024-01-01T10:00:00Z

[[posts]]
id = "b"
title = "Second"
content = "World"
author = "Bob"
created_at = 2024-01-02T10:00:00Z
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedCheckCommand(t *testing.T) {
	path := writeFile(t, validSeed)

	var out bytes.Buffer
	app := RootApp()
	app.Writer = &out
	require.NoError(t, app.Run([]string{"inkwell", "seed", "check", path}))
	assert.Contains(t, out.String(), "2 posts ok")
}

func TestCheckSeedFileRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "blank author",
			content: `[[posts]]
id = "a"
title = "t"
content = "c"
author = "  "
created_at = 2024-01-01T10:00:00Z`,
			wantErr: "author is required",
		},
		{
			name: "duplicate id",
			content: validSeed + `
[[posts]]
id = "a"
title = "t"
content = "c"
author = "x"
created_at = 2024-01-03T10:00:00Z`,
			wantErr: "already exists",
		},
		{
			name:    "not toml",
			content: "[[posts]\n",
			wantErr: "error parsing seed file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkSeedFile(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeedCheckRequiresOneArgument(t *testing.T) {
	app := RootApp()
	app.Writer = &bytes.Buffer{}
	assert.Error(t, app.Run([]string{"inkwell", "seed", "check"}))
}

func runServeFlags(t *testing.T, args ...string) config.AppConfig {
	t.Helper()
	var got config.AppConfig
	app := &cli.App{
		Flags: serveCmd().Flags,
		Action: func(ctx *cli.Context) error {
			got = applyServeFlags(ctx, config.AppConfig{AppPort: "8080", StoreDriver: "memory", LatencyMS: 500})
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"inkwell"}, args...)))
	return got
}

func TestApplyServeFlags(t *testing.T) {
	got := runServeFlags(t, "--port", "9000", "--latency", "0", "--no-seed", "--seed-file", "posts.toml")
	assert.Equal(t, "9000", got.AppPort)
	assert.Equal(t, "memory", got.StoreDriver)
	assert.Equal(t, 0, got.LatencyMS)
	assert.True(t, got.NoSeed)
	assert.Equal(t, "posts.toml", got.SeedFile)

	got = runServeFlags(t, "--latency", "250ms", "--store", "mysql")
	assert.Equal(t, 250, got.LatencyMS)
	assert.Equal(t, "mysql", got.StoreDriver)
	assert.Equal(t, "8080", got.AppPort)
	assert.False(t, got.NoSeed)
}

func TestSeedPosts(t *testing.T) {
	posts, err := seedPosts(config.AppConfig{})
	require.NoError(t, err)
	assert.Len(t, posts, len(store.DefaultSeed()))

	posts, err = seedPosts(config.AppConfig{NoSeed: true})
	require.NoError(t, err)
	assert.Empty(t, posts)

	posts, err = seedPosts(config.AppConfig{NoSeed: true, SeedFile: writeFile(t, validSeed)})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestSeedPostsRejectsBlankFields(t *testing.T) {
	path := writeFile(t, `[[posts]]
id = "blank"
title = "   "
content = ""
author = ""
created_at = 2024-01-01T10:00:00Z`)

	posts, err := seedPosts(config.AppConfig{SeedFile: path})
	require.Error(t, err)
	assert.Nil(t, posts)
	assert.ErrorContains(t, err, "title is required")

	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestSeedPostsRejectsBlankAuthor(t *testing.T) {
	path := writeFile(t, `[[posts]]
id = "a"
title = "t"
content = "c"
author = " "
created_at = 2024-01-01T10:00:00Z`)

	s := store.NewMemoryStore()
	posts, err := seedPosts(config.AppConfig{SeedFile: path})
	require.ErrorContains(t, err, "author is required")
	require.NoError(t, seedIfEmpty(context.Background(), s, posts))

	n, err := s.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedPostsRejectsDuplicateIDs(t *testing.T) {
	path := writeFile(t, validSeed+`
[[posts]]
id = "b"
title = "t"
content = "c"
author = "x"
created_at = 2024-01-03T10:00:00Z`)

	_, err := seedPosts(config.AppConfig{SeedFile: path})
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestSeedIfEmptySeedsOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, seedIfEmpty(ctx, s, store.DefaultSeed()))
	require.NoError(t, seedIfEmpty(ctx, s, store.DefaultSeed()))

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(store.DefaultSeed()), n)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, _, err := openStore(config.AppConfig{StoreDriver: "cassandra"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A disabled delay only reports the context state.
	assert.ErrorIs(t, newDelay(-1)(ctx), context.Canceled)
	assert.NoError(t, newDelay(-1)(context.Background()))
	assert.ErrorIs(t, newDelay(0)(ctx), context.Canceled)

	// Zero must not wait even though the default latency is not zero.
	start := time.Now()
	require.NoError(t, newDelay(0)(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	start = time.Now()
	require.NoError(t, newDelay(20)(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
