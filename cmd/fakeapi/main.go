// Command fakeapi serves a local stand-in for the marketplace admin API,
// seeded with an administrator and demo data.
package main

import (
	"flag"
	"log"

	"food-delivery-admin/config"
	"food-delivery-admin/fakeapi"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	dsn := flag.String("db", "fakeapi.db", "sqlite database file for the fake backend")
	email := flag.String("admin-email", "admin@delivery.tn", "seeded administrator email")
	password := flag.String("admin-password", "admin123", "seeded administrator password")
	flag.Parse()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	logger := config.NewLogger(cfg.LogLevel, "fakeapi")

	srv, err := fakeapi.Open(*dsn, cfg.JWTSecret, logger)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	if _, err := srv.SeedAdmin("Super", "Admin", *email, *password); err != nil {
		logger.Warn("admin not seeded", "error", err)
	} else if _, err := srv.SeedDemo(); err != nil {
		logger.Warn("demo data not seeded", "error", err)
	}

	logger.Info("fake backend listening", "addr", "http://localhost:"+cfg.FakeAPIPort, "admin", *email)
	if err := srv.Router().Run(":" + cfg.FakeAPIPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
