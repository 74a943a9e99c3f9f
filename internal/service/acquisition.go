package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/internal/metrics"
	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/types"
)

// AcquisitionService answers recipe requests from the store when it can and
// from the generator otherwise.
type AcquisitionService struct {
	recipes   *RecipeService
	generator Generator
	cache     SuggestionCache
	log       logrus.FieldLogger
}

// NewAcquisitionService wires the workflow. cache may be nil.
func NewAcquisitionService(recipes *RecipeService, generator Generator, cache SuggestionCache, log logrus.FieldLogger) *AcquisitionService {
	return &AcquisitionService{
		recipes:   recipes,
		generator: generator,
		cache:     cache,
		log:       log.WithField("component", "acquisition"),
	}
}

// GenerateList asks the generator for suggestions matching criteria. The
// returned slice is never nil. ErrNoResults and ErrGeneratorUnavailable come
// with an empty slice.
func (s *AcquisitionService) GenerateList(ctx context.Context, criteria types.RecipeGenerateRequest) ([]types.RecipeSuggestion, error) {
	key := suggestionCacheKey(criteria)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok && len(cached) > 0 {
			return cached, nil
		}
	}

	content, err := s.complete(ctx, "list", listSystemPrompt, buildListPrompt(criteria))
	if err != nil {
		return []types.RecipeSuggestion{}, err
	}

	suggestions, err := parseSuggestions(content)
	if err != nil || len(suggestions) == 0 {
		metrics.GeneratorCallsTotal.WithLabelValues("list", "empty").Inc()
		s.log.WithError(err).Info("Generator returned no usable suggestions")
		return []types.RecipeSuggestion{}, ErrNoResults
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, suggestions)
	}
	return suggestions, nil
}

// GetOrGenerateDetails returns the stored recipe whose name equals
// criteria.RecipeName exactly. Only on a miss is the generator called; its
// normalized answer is persisted and returned. Stored recipes are never
// regenerated, whatever the criteria.
func (s *AcquisitionService) GetOrGenerateDetails(ctx context.Context, criteria types.RecipeDetailsRequest) (*models.Recipe, error) {
	existing, err := s.recipes.GetByName(ctx, criteria.RecipeName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	content, err := s.complete(ctx, "details", detailsSystemPrompt, buildDetailsPrompt(criteria))
	if err != nil {
		return nil, err
	}

	recipe, err := parseRecipeDetails(content, criteria)
	if err != nil {
		metrics.GeneratorCallsTotal.WithLabelValues("details", "empty").Inc()
		s.log.WithError(err).WithField("recipe_name", criteria.RecipeName).Info("Generator returned no usable recipe")
		return nil, fmt.Errorf("%w: %v", ErrNoResults, err)
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *AcquisitionService) complete(ctx context.Context, kind, system, prompt string) (string, error) {
	start := time.Now()
	content, err := s.generator.Complete(ctx, system, prompt)
	metrics.GeneratorCallDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GeneratorCallsTotal.WithLabelValues(kind, "error").Inc()
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		s.log.WithError(err).WithField("kind", kind).Warn("Recipe generator call failed")
		return "", fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}

	metrics.GeneratorCallsTotal.WithLabelValues(kind, "ok").Inc()
	return content, nil
}

// WithStoredPreferences fills criteria the request left empty from the
// user's stored preferences. Stored allergies are always included.
func WithStoredPreferences(criteria types.RecipeGenerateRequest, prefs *models.UserPreferences) types.RecipeGenerateRequest {
	if prefs == nil {
		return criteria
	}
	if len(criteria.DietaryRestrictions) == 0 {
		criteria.DietaryRestrictions = prefs.DietaryRestrictions
	}
	if len(criteria.CuisinePreferences) == 0 {
		criteria.CuisinePreferences = prefs.CuisinePreferences
	}
	if criteria.CookingTime == nil {
		criteria.CookingTime = prefs.CookingTimePreference
	}
	if criteria.Difficulty == nil {
		criteria.Difficulty = prefs.DifficultyPreference
	}
	criteria.Allergies = prefs.Allergies
	return criteria
}

// WithStoredDetailPreferences is WithStoredPreferences for detail requests.
func WithStoredDetailPreferences(criteria types.RecipeDetailsRequest, prefs *models.UserPreferences) types.RecipeDetailsRequest {
	if prefs == nil {
		return criteria
	}
	if len(criteria.DietaryRestrictions) == 0 {
		criteria.DietaryRestrictions = prefs.DietaryRestrictions
	}
	criteria.Allergies = prefs.Allergies
	return criteria
}
