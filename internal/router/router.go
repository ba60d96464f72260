// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/storelabs/orders-backend/internal/cache"
	"github.com/storelabs/orders-backend/internal/config"
	"github.com/storelabs/orders-backend/internal/handlers"
	"github.com/storelabs/orders-backend/internal/middleware"
	"github.com/storelabs/orders-backend/internal/repository"
	"github.com/storelabs/orders-backend/internal/services"
	"github.com/storelabs/orders-backend/internal/utils"
)

func Initialize(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	// Initialize collaborators
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	store := cache.NewStore(redisClient)

	// Initialize services
	orderService := services.NewOrderService(orderRepo, store)
	syncService := services.NewSyncService(orderRepo, store)
	reportService := services.NewReportService(store, userRepo, productRepo)
	authService := services.NewAuthService(userRepo, cfg)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService, reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	syncHandler := handlers.NewSyncHandler(syncService)
	catalogHandler := handlers.NewCatalogHandler(productRepo, userRepo)
	authHandler := handlers.NewAuthHandler(authService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Catalog routes (order form data)
		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/users", catalogHandler.ListUsers)

		// Order routes
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.DELETE("/:id", middleware.AuthRequired(), orderHandler.DeleteOrder)
		}

		// Report routes
		reports := v1.Group("/reports")
		{
			reports.GET("/top-spenders", reportHandler.TopSpenders)
			reports.GET("/best-sellers", reportHandler.BestSellers)
			reports.GET("/best-sellers/cache", reportHandler.BestSellersFromCache)
		}

		// Cache reconciliation routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			admin.POST("/sync/orders", syncHandler.SyncOrders)
			admin.POST("/sync/products", syncHandler.SyncProducts)
		}
	}

	return r
}
