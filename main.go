package main

import (
	"log"
	"net/http"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/catalog"
	"food-delivery-admin/config"
	"food-delivery-admin/deliveries"
	"food-delivery-admin/handlers"
	"food-delivery-admin/middleware"
	"food-delivery-admin/orderform"
	"food-delivery-admin/routes"
	"food-delivery-admin/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Set Gin mode
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	logger := config.NewLogger(cfg.LogLevel, "console")

	// Backend client and the session that feeds it tokens
	api := apiclient.New(cfg.BackendURL, cfg.HTTPTimeout, nil)
	api.Logger = logger

	repo, err := session.OpenRepository(cfg.SessionDB)
	if err != nil {
		log.Fatal("Failed to open session database:", err)
	}
	defer repo.Close()

	store, err := session.NewStore(api, repo, logger)
	if err != nil {
		log.Fatal("Failed to restore session:", err)
	}
	api.Tokens = store

	form := orderform.NewForm(catalog.NewLoader(api, logger), api, logger)
	board := deliveries.NewBoard(api, logger)
	h := handlers.New(store, api, form, board, cfg.Currency, logger)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	routes.SetupRoutes(r, h)

	logger.Info("console running", "addr", "http://localhost:"+cfg.Port, "backend", cfg.BackendURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
