package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ivoicehq/ivoice-server/internal/app"
	iauth "github.com/ivoicehq/ivoice-server/internal/auth"
	"github.com/ivoicehq/ivoice-server/internal/handlers"
	"github.com/ivoicehq/ivoice-server/internal/middleware"
	"github.com/ivoicehq/ivoice-server/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(auth *services.AuthService, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if auth == nil {
		return nil, fmt.Errorf("auth service must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateInterval))

	r.NoRoute(middleware.NotFoundHandler)

	// Public probes
	r.GET("/api", handlers.Liveness)
	r.GET("/health", handlers.Health)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	authHandler := handlers.NewAuthHandler(auth, jwt)

	// Public auth routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/verify-otp", authHandler.VerifyOTP)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Protected routes
	authGroup.GET("/users", middleware.Auth(jwt), authHandler.ListUsers)

	return r, nil
}
