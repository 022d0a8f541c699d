package handler

import (
	"net/http"

	"github.com/elrathor/casting-api-go/pkg/auth"
	"github.com/elrathor/casting-api-go/pkg/cache"
	"github.com/elrathor/casting-api-go/pkg/database"
	"github.com/elrathor/casting-api-go/pkg/handlers"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	if _, err := auth.EnsureAdminExists(db); err != nil {
		logger.Warn("could not ensure admin user", zap.Error(err))
	}

	h := &handlers.Handler{
		DB:    db,
		Log:   logger,
		Cache: cache.New(logger),
	}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Recovery())
	h.Register(r)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
