package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storebot/internal/config"
	"github.com/polkiloo/storebot/internal/server/http/handlers"
	"github.com/polkiloo/storebot/internal/server/http/middleware"
)

const maxInflatedBody = 8 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	if len(cfg.AdminOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AdminOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	webhookHandler := handlers.NewWebhookHandler(facade, cfg.WebhookSecret, logger)
	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	productHandler := handlers.NewProductHandler(facade)
	customerHandler := handlers.NewCustomerHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	telegram := api.Group("/telegram")
	telegram.POST("/webhook", webhookHandler.Receive)
	telegram.GET("/webhook", webhookHandler.Status)

	admin := api.Group("/admin")
	admin.Use(middleware.DecompressRequest(maxInflatedBody))
	admin.Use(gzip.Gzip(gzip.DefaultCompression))
	admin.POST("/login", authHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired(facade))
	adminAuth.POST("/complete-order", orderHandler.Complete)
	adminAuth.GET("/orders", orderHandler.List)
	adminAuth.GET("/orders/export", orderHandler.Export)
	adminAuth.GET("/orders/:id", orderHandler.Get)
	adminAuth.GET("/stats", orderHandler.Stats)
	adminAuth.GET("/products", productHandler.List)
	adminAuth.POST("/products", productHandler.Create)
	adminAuth.GET("/products/:id", productHandler.Get)
	adminAuth.PUT("/products/:id", productHandler.Update)
	adminAuth.DELETE("/products/:id", productHandler.Delete)
	adminAuth.GET("/users/:id/messages", customerHandler.Messages)
	adminAuth.POST("/users/:id/messages", customerHandler.Send)

	return engine
}
