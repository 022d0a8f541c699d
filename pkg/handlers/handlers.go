package handlers

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/elrathor/casting-api-go/pkg/auth"
	"github.com/elrathor/casting-api-go/pkg/cache"
	"github.com/elrathor/casting-api-go/pkg/casting"
	"github.com/elrathor/casting-api-go/pkg/database"
	"github.com/elrathor/casting-api-go/pkg/loader"
	"github.com/elrathor/casting-api-go/pkg/models"
	"github.com/elrathor/casting-api-go/pkg/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed static/*
var staticEmbed embed.FS

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Cache *cache.Cache
}

// RequestLogger logs one line per request.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.Log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.GetString("userID")),
		)
	}
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for casting routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		userID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      userID,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// CastJSON solves a casting request with a JSON preference document.
func (h *Handler) CastJSON(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	var opts models.CastOptions
	if err := json.Unmarshal(body, &opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := loader.ParseJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.finishCast(c, body, doc, opts)
}

// CastYAML is CastJSON for a YAML request body.
func (h *Handler) CastYAML(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	var opts models.CastOptions
	if err := yaml.Unmarshal(body, &opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := loader.ParseYAML(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.finishCast(c, body, doc, opts)
}

// finishCast runs the usage/cache/solve/persist pipeline shared by the JSON
// and YAML endpoints.
func (h *Handler) finishCast(c *gin.Context, body []byte, doc *loader.Document, opts models.CastOptions) {
	h.RecordUsage(c, len(doc.Players), len(doc.Characters))

	key := cache.Key(body)
	if data, ok := h.Cache.Get(c.Request.Context(), key); ok {
		var resp models.CastResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			resp.Cached = true
			c.JSON(http.StatusOK, resp)
			return
		}
		// Fall through and solve on a corrupt cache entry.
	}

	resp, err := h.runCast(doc, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.saveRecord(c, body, doc, resp)
	if data, err := json.Marshal(resp); err == nil {
		h.Cache.Set(c.Request.Context(), key, data)
	}

	c.JSON(http.StatusOK, resp)
}

// runCast converts a preference document into a solved, analyzed response.
func (h *Handler) runCast(doc *loader.Document, opts models.CastOptions) (*models.CastResponse, error) {
	policy, err := casting.ParsePolicy(opts.Scoring)
	if err != nil {
		return nil, err
	}

	matrix, err := casting.BuildMatrix(doc.Characters, doc.Players, policy)
	if err != nil {
		return nil, err
	}

	solverName := opts.Solver
	if solverName == "" {
		solverName = "optimal"
	}
	var res *casting.Result
	switch solverName {
	case "optimal":
		res, err = casting.SolveOptimal(matrix)
	case "exhaustive":
		res, err = casting.SolveExhaustive(matrix, 0)
	default:
		return nil, fmt.Errorf("solver must be %q or %q, got %q", "optimal", "exhaustive", solverName)
	}
	if err != nil {
		return nil, err
	}

	rep, err := casting.Analyze(res.Details, matrix.Size(), opts.MaxRank)
	if err != nil {
		return nil, err
	}

	return &models.CastResponse{
		Scoring:     policy.String(),
		Solver:      solverName,
		Assignments: res.Assignments,
		TotalScore:  res.TotalScore,
		Details:     res.Details,
		Report:      rep,
	}, nil
}

// saveRecord persists the solved cast so it can be fetched by ID later.
// Persistence failures are logged, not surfaced: the solve itself succeeded.
func (h *Handler) saveRecord(c *gin.Context, body []byte, doc *loader.Document, resp *models.CastResponse) {
	resp.ID = uuid.NewString()

	result, err := json.Marshal(resp)
	if err != nil {
		h.Log.Warn("could not marshal cast record", zap.Error(err))
		return
	}

	rec := database.CastRecord{
		ID:          resp.ID,
		KeyName:     c.GetString("userID"),
		Scoring:     resp.Scoring,
		Solver:      resp.Solver,
		PlayerCount: len(doc.Players),
		TotalScore:  resp.TotalScore,
		Document:    string(body),
		Result:      string(result),
	}
	if err := h.DB.Create(&rec).Error; err != nil {
		h.Log.Warn("could not persist cast record", zap.String("id", resp.ID), zap.Error(err))
	}
}

// GetCast returns a previously solved cast by ID.
func (h *Handler) GetCast(c *gin.Context) {
	var rec database.CastRecord
	if err := h.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cast not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CastExport solves a JSON casting request and responds with an XLSX
// workbook instead of JSON.
func (h *Handler) CastExport(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	var opts models.CastOptions
	if err := json.Unmarshal(body, &opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := loader.ParseJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(doc.Players), len(doc.Characters))

	resp, err := h.runCast(doc, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, _ := casting.ParsePolicy(opts.Scoring)
	res := &casting.Result{
		Assignments: resp.Assignments,
		TotalScore:  resp.TotalScore,
		Details:     resp.Details,
	}
	data, err := report.ExportXLSX(res, resp.Report, policy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="casting.xlsx"`)
	c.Data(http.StatusOK, xlsxMIME, data)
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, playerCount, characterCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":    gorm.Expr("request_count + ?", 1),
			"total_players":    gorm.Expr("total_players + ?", playerCount),
			"total_characters": gorm.Expr("total_characters + ?", characterCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:           apiKey.ID,
		Date:            today,
		RequestCount:    1,
		TotalPlayers:    playerCount,
		TotalCharacters: characterCount,
	})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	if created, err := auth.EnsureAdminExists(h.DB); err != nil {
		h.Log.Warn("could not ensure admin user", zap.Error(err))
	} else if created {
		h.Log.Info("default admin user created")
	}

	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
