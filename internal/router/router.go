package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/blogverse/internal/config"
	"github.com/iliyamo/blogverse/internal/handler"
	"github.com/iliyamo/blogverse/internal/middleware"
)

// RegisterRoutes wires every endpoint onto the Echo instance.
//
// Route groups:
//
//	/auth      – registration and login, each behind its own fixed-window
//	             rate limit (no token required)
//	/post      – listing and single-post reads are public; create, update,
//	             delete and the by-author listing require a session token
//	/analytics – per-user dashboard, token required
//
// The rdb client may be nil, in which case the rate limiters pass requests
// straight through.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, p *handler.PostHandler, an *handler.AnalyticsHandler, rlCfg config.RateLimitConfig, rdb *redis.Client, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/auth")
	auth.POST("/register", a.Register, middleware.NewFixedWindow(rlCfg, rlCfg.Register, rdb))
	auth.POST("/login", a.Login, middleware.NewFixedWindow(rlCfg, rlCfg.Login, rdb))

	requireToken := middleware.JWTAuth(jwtSecret)

	post := e.Group("/post")
	post.GET("/allPosts", p.List)
	post.GET("/singlePost/:postId", p.GetByID)
	post.POST("/createPost", p.Create, requireToken)
	post.GET("/all-authors-post/:authorId", p.ListByAuthor, requireToken)
	post.PATCH("/updatePost/:postId", p.Update, requireToken)
	post.DELETE("/deletePost/:postId", p.Delete, requireToken)

	analytics := e.Group("/analytics", requireToken)
	analytics.GET("/dashboard", an.Dashboard)
}
