package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/internal/database"
	"github.com/pageza/dishdash/backend/internal/middleware"
	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/types"
)

const healthCheckTimeout = 2 * time.Second

// Dependencies are the services the HTTP surface is built from
type Dependencies struct {
	DB            *gorm.DB
	Auth          *service.AuthService
	Acquisition   *service.AcquisitionService
	SavedRecipes  *service.SavedRecipeService
	Preferences   *service.PreferencesService
	Log           logrus.FieldLogger
	APIPrefix     string
	Version       string
	ExposeDetails bool
}

// HealthHandler serves the unauthenticated status endpoints
type HealthHandler struct {
	db      *gorm.DB
	version string
}

func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthCheck pings the database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse(
			types.ErrCodeDatabaseUnavailable, "Database connection failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// Root returns the API banner
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "DishDash API is running!",
		"version": h.version,
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	respond := responder{log: deps.Log, exposeDetails: deps.ExposeDetails}

	health := NewHealthHandler(deps.DB, deps.Version)
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group(deps.APIPrefix)

	NewAuthHandler(deps.Auth, respond).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth, deps.Log))

	NewRecipeHandler(deps.Acquisition, deps.SavedRecipes, deps.Preferences, respond).RegisterRoutes(protected)
	NewProfileHandler(deps.Preferences, respond).RegisterRoutes(protected)
}
