// Package repository exposes create/read/update/delete operations over a post store.
//
// Every operation first waits for the configured Delay, then reads or mutates
// the store. Mutations are serialized; reads observe the store as it is when
// they run, which may be later than when they were issued.
package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/metrics"
	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/store"
)

// Repository mediates all access to a Store.
type Repository struct {
	store  store.Store
	delay  Delay
	now    func() time.Time
	newID  func() string
	logger *zap.Logger

	// writeMu serializes create, update and delete.
	writeMu sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithDelay sets the simulated latency strategy.
func WithDelay(d Delay) Option {
	return func(r *Repository) {
		if d != nil {
			r.delay = d
		}
	}
}

// WithClock sets the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the id source for new posts.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// WithLogger sets the logger for operation traces.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Repository over s. Without options it waits DefaultLatency
// per call and assigns random UUIDs.
func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  s,
		delay:  FixedDelay(DefaultLatency),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListPosts returns all posts, most recently created first. Posts created at
// the same instant keep their insertion order.
func (r *Repository) ListPosts(ctx context.Context) (posts []models.Post, err error) {
	defer r.observe("list", time.Now(), &err, func() string { return outcomeOK })

	if err = r.delay(ctx); err != nil {
		return nil, err
	}
	posts, err = r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// GetPost returns the post with the given id. A missing post is reported
// with ok == false and a nil error.
func (r *Repository) GetPost(ctx context.Context, id string) (post models.Post, ok bool, err error) {
	defer r.observe("get", time.Now(), &err, func() string { return presence(ok) })

	if err = r.delay(ctx); err != nil {
		return models.Post{}, false, err
	}
	return r.store.Get(ctx, id)
}

// CreatePost validates draft, assigns an id and creation time and stores the post.
func (r *Repository) CreatePost(ctx context.Context, draft models.PostDraft) (post models.Post, err error) {
	defer r.observe("create", time.Now(), &err, func() string { return outcomeOK })

	if err = r.delay(ctx); err != nil {
		return models.Post{}, err
	}
	if err = Validate(draft); err != nil {
		return models.Post{}, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	post = models.Post{
		ID:        r.newID(),
		Title:     draft.Title,
		Content:   draft.Content,
		Author:    draft.Author,
		CreatedAt: r.now(),
	}
	if err = r.store.Insert(ctx, post); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			r.logger.Error("id generator produced a duplicate id", zap.String("id", post.ID))
		}
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost validates draft and overwrites the editable fields of the post
// with the given id. It fails with ErrNotFound when no such post exists.
func (r *Repository) UpdatePost(ctx context.Context, id string, draft models.PostDraft) (post models.Post, err error) {
	defer r.observe("update", time.Now(), &err, func() string { return outcomeOK })

	if err = r.delay(ctx); err != nil {
		return models.Post{}, err
	}
	if err = Validate(draft); err != nil {
		return models.Post{}, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	existing, ok, err := r.store.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if !ok {
		return models.Post{}, ErrNotFound
	}

	updatedAt := r.now()
	if updatedAt.Before(existing.CreatedAt) {
		updatedAt = existing.CreatedAt
	}
	post = existing
	post.Title = draft.Title
	post.Content = draft.Content
	post.Author = draft.Author
	post.UpdatedAt = &updatedAt

	if err = r.store.Replace(ctx, id, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost removes the post with the given id and reports whether a post
// was removed. Deleting a missing id is not an error.
func (r *Repository) DeletePost(ctx context.Context, id string) (removed bool, err error) {
	defer r.observe("delete", time.Now(), &err, func() string { return presence(removed) })

	if err = r.delay(ctx); err != nil {
		return false, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	return r.store.Remove(ctx, id)
}

// CountPosts returns the number of stored posts.
func (r *Repository) CountPosts(ctx context.Context) (n int, err error) {
	defer r.observe("count", time.Now(), &err, func() string { return outcomeOK })

	if err = r.delay(ctx); err != nil {
		return 0, err
	}
	return r.store.Len(ctx)
}

// Validate checks the draft fields in form order and names the first empty
// one. Whitespace-only values count as empty.
func Validate(draft models.PostDraft) error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", draft.Title},
		{"content", draft.Content},
		{"author", draft.Author},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

const (
	outcomeOK          = "ok"
	outcomeAbsent      = "absent"
	outcomeInvalid     = "invalid"
	outcomeNotFound    = "not_found"
	outcomeDuplicate   = "duplicate"
	outcomeUnavailable = "unavailable"
	outcomeCanceled    = "canceled"
	outcomeError       = "error"
)

func presence(ok bool) string {
	if ok {
		return outcomeOK
	}
	return outcomeAbsent
}

func outcomeOf(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return outcomeInvalid
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrDuplicateID):
		return outcomeDuplicate
	case errors.Is(err, ErrUnavailable):
		return outcomeUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeError
	}
}

func (r *Repository) observe(op string, start time.Time, errp *error, success func() string) {
	elapsed := time.Since(start)
	outcome := success()
	if *errp != nil {
		outcome = outcomeOf(*errp)
	}
	metrics.RepositoryOperations.WithLabelValues(op, outcome).Inc()
	metrics.RepositoryDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	r.logger.Debug("repository operation",
		zap.String("op", op),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
		zap.Error(*errp),
	)
}
