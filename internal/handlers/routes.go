package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"odoo-inventory-api/internal/config"
	"odoo-inventory-api/internal/middleware"
	"odoo-inventory-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Config           *config.Config
	InventoryService services.InventoryService
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, rc *RouterConfig) {
	inventoryHandler := NewInventoryHandler(rc.InventoryService)
	tagHandler := NewTagHandler(rc.InventoryService)
	productHandler := NewProductHandler(rc.InventoryService)

	// A wrong method on a known path answers 405, matching the Lambda
	// surface; gin's default is 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method Not Allowed",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "odoo-inventory-api",
			"mode":    config.GetDeploymentMode(),
		})
	})

	// All inventory routes sit behind the shared-secret check
	api := router.Group("")
	api.Use(middleware.ClientAuth(rc.Config))
	{
		api.GET("/", inventoryHandler.ListProducts)
		api.POST("/", inventoryHandler.SearchProducts)
		api.POST("/search", inventoryHandler.SearchProducts)

		api.GET("/tags", tagHandler.ListTags)
		api.POST("/tags", tagHandler.PostTags)

		api.POST("/products", productHandler.PostProducts)
		api.PUT("/products", productHandler.UpdatePrice)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.StructuredLogger())
}
