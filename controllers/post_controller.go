package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/utils"
)

// excerptLength is the number of runes of plain text shown per list item.
const excerptLength = 150

// PostController manages CRUD operations for posts.
type PostController struct {
	repo *repository.Repository
}

// NewPostController creates a new PostController instance.
func NewPostController(repo *repository.Repository) *PostController {
	return &PostController{repo: repo}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (r postRequest) draft() models.PostDraft {
	return models.PostDraft{Title: r.Title, Content: r.Content, Author: r.Author}
}

// postSummary is a list item: the post plus a plain text excerpt.
type postSummary struct {
	models.Post
	Excerpt string `json:"excerpt"`
}

// ListPosts returns every post, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyPostList); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	gen := utils.CacheGeneration()
	posts, err := p.repo.ListPosts(ctx.Request.Context())
	if err != nil {
		respondRepoError(ctx, err, 50022, "failed to list posts")
		return
	}

	items := lo.Map(posts, func(post models.Post, _ int) postSummary {
		return postSummary{Post: post, Excerpt: utils.Excerpt(post.Content, excerptLength)}
	})
	payload := gin.H{"items": items, "total": len(items)}
	utils.CacheFillJSON(utils.CacheKeyPostList, payload, gen)
	utils.Success(ctx, payload)
}

// GetPost returns a single post with its content split into paragraphs.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")

	if b, ok := utils.CacheGetBytes(utils.CacheKeyPostDetail + postID); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	gen := utils.CacheGeneration()
	post, ok, err := p.repo.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		respondRepoError(ctx, err, 50023, "failed to load post")
		return
	}
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	payload := gin.H{"post": post, "paragraphs": post.Paragraphs()}
	utils.CacheFillJSON(utils.CacheKeyPostDetail+postID, payload, gen)
	utils.Success(ctx, payload)
}

// CreatePost stores a new post and answers 201 with it.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	post, err := p.repo.CreatePost(ctx.Request.Context(), req.draft())
	if err != nil {
		var verr *repository.ValidationError
		if errors.As(err, &verr) {
			utils.Fail(ctx, http.StatusBadRequest, 40021, verr.Error(), gin.H{"field": verr.Field})
			return
		}
		respondRepoError(ctx, err, 50020, "failed to create post")
		return
	}

	utils.InvalidatePost(post.ID)
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost overwrites title, content and author of an existing post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	postID := ctx.Param("id")

	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	post, err := p.repo.UpdatePost(ctx.Request.Context(), postID, req.draft())
	if err != nil {
		var verr *repository.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.Fail(ctx, http.StatusBadRequest, 40025, verr.Error(), gin.H{"field": verr.Field})
		case errors.Is(err, repository.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		default:
			respondRepoError(ctx, err, 50024, "failed to update post")
		}
		return
	}

	utils.InvalidatePost(post.ID)
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post. Deleting a missing post succeeds with deleted=false.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID := ctx.Param("id")

	removed, err := p.repo.DeletePost(ctx.Request.Context(), postID)
	if err != nil {
		respondRepoError(ctx, err, 50025, "failed to delete post")
		return
	}
	if removed {
		utils.InvalidatePost(postID)
	}
	utils.Success(ctx, gin.H{"deleted": removed})
}

// respondRepoError maps repository failures that are not the caller's fault.
// An unreachable backend is 503, everything else 500 with the given code.
func respondRepoError(ctx *gin.Context, err error, code int, message string) {
	if errors.Is(err, repository.ErrUnavailable) {
		utils.Logger.Warn("post store unavailable", zap.String("path", ctx.FullPath()), zap.Error(err))
		utils.Error(ctx, http.StatusServiceUnavailable, 50300, "post store unavailable")
		return
	}
	utils.Logger.Error(message, zap.String("path", ctx.FullPath()), zap.Error(err))
	utils.Error(ctx, http.StatusInternalServerError, code, message)
}
