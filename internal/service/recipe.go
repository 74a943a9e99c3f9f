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

// RecipeService is the durable store of detailed recipes.
type RecipeService struct {
	store
}

func NewRecipeService(db *gorm.DB, queryTimeout time.Duration) *RecipeService {
	return &RecipeService{store: newStore(db, queryTimeout)}
}

func (s *RecipeService) Create(ctx context.Context, recipe *models.Recipe) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	if err := db.Omit(clause.Associations).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetByID returns ErrRecipeNotFound when no recipe has the id.
func (s *RecipeService) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var recipe models.Recipe
	if err := db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// GetByName matches the name exactly, with no case or whitespace folding.
// Names are not unique, so the oldest match wins. Returns nil when absent.
func (s *RecipeService) GetByName(ctx context.Context, name string) (*models.Recipe, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var recipe models.Recipe
	if err := db.Where("name = ?", name).Order("id").First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by name: %w", err)
	}
	return &recipe, nil
}

// Delete removes the recipe and every saved reference to it.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.SavedRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete saved references: %w", err)
		}
		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}
