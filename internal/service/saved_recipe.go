package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/dishdash/backend/internal/models"
)

// SavedRecipeService is the ledger of recipes users bookmarked.
type SavedRecipeService struct {
	store
	recipes *RecipeService
}

func NewSavedRecipeService(db *gorm.DB, recipes *RecipeService, queryTimeout time.Duration) *SavedRecipeService {
	return &SavedRecipeService{
		store:   newStore(db, queryTimeout),
		recipes: recipes,
	}
}

// Save bookmarks recipeID for userID. A repeated save fails with
// ErrAlreadySaved whether the pre-check or the unique index catches it.
func (s *SavedRecipeService) Save(ctx context.Context, userID, recipeID uint) (*models.SavedRecipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check saved recipe: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadySaved
	}

	saved := &models.SavedRecipe{
		UserID:   userID,
		RecipeID: recipeID,
		SavedAt:  time.Now().UTC(),
	}
	if err := db.Omit(clause.Associations).Create(saved).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadySaved
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	saved.Recipe = *recipe
	return saved, nil
}

// Unsave reports whether a saved row existed and was removed.
func (s *SavedRecipeService) Unsave(ctx context.Context, userID, recipeID uint) (bool, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	result := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to unsave recipe: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListForUser returns the user's saved recipes, most recently saved first.
func (s *SavedRecipeService) ListForUser(ctx context.Context, userID uint) ([]models.SavedRecipe, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	saved := []models.SavedRecipe{}
	if err := db.Preload("Recipe").
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Order("id DESC").
		Find(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	if saved == nil {
		saved = []models.SavedRecipe{}
	}
	return saved, nil
}
