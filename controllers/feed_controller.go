package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/utils"
)

// feedSize is the number of newest posts published in the feed.
const feedSize = 20

// FeedController renders the RSS feed.
type FeedController struct {
	repo *repository.Repository
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(repo *repository.Repository) *FeedController {
	return &FeedController{repo: repo}
}

// RSS writes an RSS 2.0 document of the latest posts.
func (f *FeedController) RSS(ctx *gin.Context) {
	cfg := config.Get()
	siteURL := cfg.BaseURL()

	posts, err := f.repo.ListPosts(ctx.Request.Context())
	if err != nil {
		respondRepoError(ctx, err, 50027, "failed to build feed")
		return
	}
	if len(posts) > feedSize {
		posts = posts[:feedSize]
	}

	feed := &feeds.Feed{
		Title:       cfg.SiteTitle,
		Link:        &feeds.Link{Href: siteURL},
		Description: cfg.SiteTitle + " latest posts",
		Created:     time.Now().UTC(),
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].CreatedAt
	}

	for _, post := range posts {
		content, err := utils.RenderContent(post.Content)
		if err != nil {
			utils.Logger.Warn("render post content", zap.String("id", post.ID), zap.Error(err))
			content = utils.Sanitize(post.Content)
		}
		item := &feeds.Item{
			Id:          post.ID,
			Title:       post.Title,
			Link:        &feeds.Link{Href: siteURL + "/api/v1/posts/" + post.ID},
			Description: utils.Excerpt(post.Content, excerptLength),
			Content:     content,
			Created:     post.CreatedAt,
		}
		if post.UpdatedAt != nil {
			item.Updated = *post.UpdatedAt
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		utils.Logger.Error("write rss", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to build feed")
		return
	}
	ctx.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
