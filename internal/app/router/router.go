// Package router assembles the HTTP routes of the API.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	posthandler "toysns/internal/feature/post/transport/handler"
	userhandler "toysns/internal/feature/user/transport/handler"
	"toysns/internal/platform/http/handler"
	"toysns/internal/platform/http/middleware"
	jwtmw "toysns/internal/platform/jwt"
	"toysns/internal/platform/metrics"
	"toysns/internal/shared/ratelimiter"
)

// Deps are the components the router mounts.
type Deps struct {
	Users *userhandler.UserHandler
	Posts *posthandler.PostHandler

	JWT        jwtmw.Config
	Principals jwtmw.PrincipalLoader

	// AuthLimiter guards join and login.
	AuthLimiter ratelimiter.Limiter
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	ReadyChecks map[string]handler.Check

	// CORSAllowedOrigins enables CORS when non-empty.
	CORSAllowedOrigins []string
}

// NewRouter builds the gin engine.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Public routes
	// Liveness, readiness and metrics
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(d.ReadyChecks))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api/v1")

	users := api.Group("/users")
	if d.AuthLimiter != nil {
		users.Use(middleware.RateLimit(d.AuthLimiter))
	}
	{
		// Sign up
		users.POST("/join", d.Users.Join)
		// Log in (issues a JWT)
		users.POST("/login", d.Users.Login)
	}

	// Routes that require a token
	posts := api.Group("/posts")
	posts.Use(jwtmw.AuthRequired(d.JWT, d.Principals))
	{
		posts.POST("", d.Posts.Create)
		posts.PUT("/:postId", d.Posts.Modify)
		posts.DELETE("/:postId", d.Posts.Delete)
		posts.GET("", d.Posts.List)
		posts.GET("/my", d.Posts.ListMine)
	}

	return r
}
