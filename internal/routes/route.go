package routes

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillswap/internal/container"
	"github.com/joshua-takyi/skillswap/internal/handlers"
	"github.com/joshua-takyi/skillswap/internal/middleware"
	"go.uber.org/zap"
)

// SetupRoutes configures all routes with the dependency container. ctx bounds
// the lifetime of background middleware state.
func SetupRoutes(ctx context.Context, container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))
	// without an explicit list gin trusts X-Forwarded-For from anyone,
	// which would let clients pick their own rate-limit bucket
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		container.Logger.Warn("Invalid TRUSTED_PROXIES, trusting no proxies", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(middleware.PrometheusMiddleware())
	r.Use(gin.Recovery())

	r.GET("/metrics", middleware.MetricsHandler())

	auth := middleware.NewAuth(container.TokenValidator, container.AuthService, cfg.CookieSecure, container.Logger.Named("auth"))
	limiter := middleware.RateLimiter(ctx, float64(cfg.RateLimitRPS), cfg.RateLimitBurst)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "skillswap-api",
			})
		})

		// public routes
		v1.POST("/signup", limiter, handlers.Signup(container.AuthService))
		v1.POST("/login", limiter, handlers.Login(container.AuthService, cfg.CookieSecure))
		v1.POST("/logout", handlers.Logout(container.AuthService, cfg.CookieSecure))
	}

	browse := v1.Group("/profiles")
	browse.Use(auth.OptionalUser())
	{
		browse.GET("", handlers.BrowseProfiles(container.ProfileService))
		browse.GET("/:id", handlers.GetProfile(container.ProfileService))
	}

	protected := v1.Group("/")
	protected.Use(auth.RequireUser())

	me := protected.Group("/me")
	{
		me.GET("", handlers.GetMe())
		me.PATCH("", handlers.UpdateMe(container.ProfileService))
		me.POST("/photo", handlers.UploadPhoto(container.ProfileService))
		me.DELETE("/photo", handlers.DeletePhoto(container.ProfileService))
	}

	swapRoutes := protected.Group("/swaps")
	{
		swapRoutes.POST("", limiter, handlers.CreateSwap(container.SwapService))
		swapRoutes.GET("", handlers.ListSwaps(container.SwapService))
		swapRoutes.GET("/:id", handlers.GetSwap(container.SwapService))
		swapRoutes.PATCH("/:id/status", handlers.SetSwapStatus(container.SwapService))
		swapRoutes.POST("/:id/feedback", handlers.AttachFeedback(container.SwapService))
		swapRoutes.DELETE("/:id", handlers.DeleteSwap(container.SwapService))
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.AdminListUsers(container.AdminService))
		admin.GET("/swaps", handlers.AdminListSwaps(container.AdminService))
		admin.PATCH("/users/:id/ban", handlers.AdminSetBanned(container.AdminService))
	}

	return r
}
