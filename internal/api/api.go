package api

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/config"
	"github.com/pageza/dishdash/backend/internal/service"
)

// NewDependencies builds the services behind the HTTP surface from cfg.
// cache may be nil.
func NewDependencies(cfg *config.Config, db *gorm.DB, generator service.Generator, cache service.SuggestionCache, log logrus.FieldLogger) (Dependencies, error) {
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		return Dependencies{}, err
	}

	users := service.NewUserService(db, cfg.DBQueryTimeout)
	recipes := service.NewRecipeService(db, cfg.DBQueryTimeout)

	return Dependencies{
		DB:            db,
		Auth:          service.NewAuthService(users, tokens),
		Acquisition:   service.NewAcquisitionService(recipes, generator, cache, log),
		SavedRecipes:  service.NewSavedRecipeService(db, recipes, cfg.DBQueryTimeout),
		Preferences:   service.NewPreferencesService(db, cfg.DBQueryTimeout),
		Log:           log,
		APIPrefix:     cfg.APIV1Prefix,
		Version:       cfg.Version,
		ExposeDetails: cfg.ExposeErrorDetails,
	}, nil
}
