package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// postRow is the table layout used by GormStore. Seq keeps insertion order.
type postRow struct {
	Seq       uint64     `gorm:"primaryKey;autoIncrement"`
	PostID    string     `gorm:"size:64;uniqueIndex;not null"`
	Title     string     `gorm:"size:255;not null"`
	Content   string     `gorm:"type:text;not null"`
	Author    string     `gorm:"size:255;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;index"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (postRow) TableName() string { return "posts" }

func rowFromPost(p models.Post) postRow {
	return postRow{
		PostID:    p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r postRow) post() models.Post {
	return models.Post{
		ID:        r.PostID,
		Title:     r.Title,
		Content:   r.Content,
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}.Clone()
}

// GormStore implements Store on top of a relational database.
// Backend failures are reported as ErrUnavailable.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the posts table and returns a store using db.
// db should be opened with TranslateError enabled so duplicate keys are detected.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&postRow{}); err != nil {
		return nil, unavailable("migrate posts", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Post, error) {
	var rows []postRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, unavailable("list posts", err)
	}
	return lo.Map(rows, func(r postRow, _ int) models.Post { return r.post() }), nil
}

func (s *GormStore) Get(ctx context.Context, id string) (models.Post, bool, error) {
	var row postRow
	err := s.db.WithContext(ctx).Where("post_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Post{}, false, nil
	}
	if err != nil {
		return models.Post{}, false, unavailable("get post", err)
	}
	return row.post(), true, nil
}

func (s *GormStore) Insert(ctx context.Context, post models.Post) error {
	row := rowFromPost(post)
	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateID
	}
	if err != nil {
		return unavailable("insert post", err)
	}
	return nil
}

func (s *GormStore) Replace(ctx context.Context, id string, post models.Post) error {
	res := s.db.WithContext(ctx).Model(&postRow{}).Where("post_id = ?", id).Updates(map[string]interface{}{
		"post_id":    post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"author":     post.Author,
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	})
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicateID
	}
	if res.Error != nil {
		return unavailable("replace post", res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports 0 affected rows when nothing changed; tell that apart from absence.
		if _, ok, err := s.Get(ctx, id); err != nil {
			return err
		} else if !ok {
			return ErrNotFound
		}
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("post_id = ?", id).Delete(&postRow{})
	if res.Error != nil {
		return false, unavailable("remove post", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Len(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&postRow{}).Count(&n).Error; err != nil {
		return 0, unavailable("count posts", err)
	}
	return int(n), nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
