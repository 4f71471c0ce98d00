package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/utils"
)

// StatsController provides blog statistics.
type StatsController struct {
	repo *repository.Repository
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(repo *repository.Repository) *StatsController {
	return &StatsController{repo: repo}
}

// GetStats returns the number of posts and the creation time of the newest one.
// Both come from one listing; latest_post_at is null while the blog is empty.
func (s *StatsController) GetStats(ctx *gin.Context) {
	posts, err := s.repo.ListPosts(ctx.Request.Context())
	if err != nil {
		respondRepoError(ctx, err, 50026, "failed to load stats")
		return
	}

	var latest interface{}
	if len(posts) > 0 {
		latest = posts[0].CreatedAt
	}

	utils.Success(ctx, gin.H{
		"post_count":     len(posts),
		"latest_post_at": latest,
	})
}
