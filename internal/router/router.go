package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/config"
	"github.com/pageza/dishdash/backend/internal/api"
	"github.com/pageza/dishdash/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(cfg *config.Config, deps api.Dependencies, log logrus.FieldLogger) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// ErrorHandler must stay inside Logger and Metrics so recovered panics
	// are observed as 500s.
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.Metrics(),
		middleware.Logger(log),
		middleware.ErrorHandler(log, cfg.ExposeErrorDetails),
		middleware.CORS(cfg.CORSOrigins),
	)
	router.NoRoute(middleware.NotFound)

	api.RegisterRoutes(router, deps)

	return router
}
