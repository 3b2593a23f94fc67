package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api/handlers"
	"github.com/lankacraft/marketapi/internal/api/middleware"
	"github.com/lankacraft/marketapi/internal/cart"
	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/internal/repository"
	"github.com/lankacraft/marketapi/internal/service"
)

// Services bundles the service layer handed to the router.
type Services struct {
	Auth     *service.AuthService
	Orders   *service.OrderService
	Profiles *service.ProfileService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, carts *cart.Registry, services Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", handlers.HandleLogin(services.Auth, logger))
			auth.POST("/register", handlers.HandleRegister(services.Auth, logger))
			auth.POST("/google", handlers.HandleGoogleLogin(services.Auth, logger))
			auth.POST("/otp/send", handlers.HandleSendOTP(services.Auth, logger))
			auth.POST("/otp/verify", handlers.HandleVerifyOTP(services.Auth, logger))
		}
		v1.GET("/payment-methods", handlers.HandleListPaymentMethods())

		// Routes that require authentication
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(repos, logger))
		{
			authed.POST("/auth/logout", handlers.HandleLogout(services.Auth, logger))

			authed.GET("/me", handlers.HandleGetMe())
			authed.POST("/me/mode", handlers.HandleSwitchMode(services.Auth, logger))
			authed.POST("/me/onboarding/complete", handlers.HandleCompleteOnboarding(services.Auth, logger))

			authed.GET("/cart", handlers.HandleGetCart(carts))
			authed.DELETE("/cart", handlers.HandleClearCart(carts))
			authed.POST("/cart/items", handlers.HandleAddItem(carts, logger))
			authed.PUT("/cart/items/:id", handlers.HandleUpdateQuantity(carts, logger))
			authed.DELETE("/cart/items/:id", handlers.HandleRemoveItem(carts))
			authed.PUT("/cart/payment-method", handlers.HandleSetPaymentMethod(carts))

			authed.POST("/checkout/quote", handlers.HandleQuote(services.Orders, logger))
			authed.POST("/checkout/confirm", handlers.HandleConfirm(services.Orders, logger))

			authed.GET("/orders", handlers.HandleListOrders(services.Orders, logger))
			authed.GET("/orders/:id", handlers.HandleGetOrder(services.Orders, logger))

			authed.POST("/shop/generate-profile", handlers.HandleGenerateShopProfile(services.Profiles, logger))
		}

		// Admin routes (internal - for now using same auth, can be separated later)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.POST("/orders/:id/status", handlers.HandleAdvanceOrderStatus(services.Orders, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
