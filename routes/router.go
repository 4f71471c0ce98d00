package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/controllers"
	"github.com/inkwellhq/inkwell/middleware"
	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(repo *repository.Repository) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to GinPath when set, otherwise to the application log.
	gl := utils.NewRollingFileLogger(cfg.GinPath, cfg)
	r.Use(utils.Ginzap(gl, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(gl, true))

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestMetrics())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	postController := controllers.NewPostController(repo)
	statsController := controllers.NewStatsController(repo)
	feedController := controllers.NewFeedController(repo)

	r.GET("/rss", feedController.RSS)

	api := r.Group("/api/v1")
	api.GET("/stats", statsController.GetStats)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:id", postController.GetPost)

	limited := postsGroup.Group("")
	limited.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	limited.POST("", postController.CreatePost)
	limited.PUT("/:id", postController.UpdatePost)
	limited.DELETE("/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		utils.Error(ctx, http.StatusNotFound, 40400, "not found")
	})

	return r
}
