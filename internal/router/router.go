package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/studentdesk/studentdesk-backend/internal/config"
	"github.com/studentdesk/studentdesk-backend/internal/handler"
	"github.com/studentdesk/studentdesk-backend/internal/middleware"
	"github.com/studentdesk/studentdesk-backend/internal/response"
	"github.com/studentdesk/studentdesk-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Student *handler.StudentHandler
	Account *handler.AccountHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// rdb may be nil, in which case the auth routes run unthrottled.
func SetupRouter(
	tokens *service.TokenService,
	accounts service.CredentialStore,
	rdb *redis.Client,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// Unmatched routes still answer in the envelope shape.
	router.NoRoute(func(c *gin.Context) {
		response.FailWithErrors(c, http.StatusNotFound, "Route not found",
			[]string{c.Request.URL.Path})
	})

	router.GET("/", handlers.System.Index)
	router.GET("/api/health", handlers.System.Health)

	authenticate := middleware.Authenticate(tokens, accounts)

	// ─── Auth Group (Public, Rate Limited) ─────────────────────────────
	auth := router.Group("/api/auth")
	if rdb != nil {
		limiter := middleware.NewRateLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow)
		auth.Use(limiter.Middleware())
	}
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", authenticate, handlers.Auth.Me)
	}

	// ─── Student Directory Group (Authenticated) ───────────────────────
	students := router.Group("/api/students")
	students.Use(authenticate)
	{
		students.GET("", handlers.Student.ListStudents)
		students.POST("", middleware.AdminOnly(), handlers.Student.CreateStudent)

		// Admin operations on registered accounts. Registered before the
		// :id routes so the static "user" segment wins.
		students.GET("/user/:id", middleware.AdminOnly(), handlers.Account.GetUser)
		students.PUT("/user/:id", middleware.AdminOnly(), handlers.Account.UpdateUser)
		students.DELETE("/user/:id", middleware.AdminOnly(), handlers.Account.DeleteUser)

		students.GET("/:id", handlers.Student.GetStudent)
		students.PUT("/:id", middleware.AdminOnly(), handlers.Student.UpdateStudent)
		students.DELETE("/:id", middleware.AdminOnly(), handlers.Student.DeleteStudent)
	}

	return router
}
