package main

import (
	"os"

	"github.com/elrathor/casting-api-go/pkg/auth"
	"github.com/elrathor/casting-api-go/pkg/cache"
	"github.com/elrathor/casting-api-go/pkg/database"
	"github.com/elrathor/casting-api-go/pkg/handlers"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	if created, err := auth.EnsureAdminExists(db); err != nil {
		logger.Fatal("could not ensure admin user", zap.Error(err))
	} else if created {
		logger.Info("default admin user created")
	}

	h := &handlers.Handler{
		DB:    db,
		Log:   logger,
		Cache: cache.New(logger),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	h.Register(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logger.Info("server starting", zap.String("port", port), zap.Bool("cache", h.Cache.Enabled()))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
