package testhelpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/internal/models"
)

// CreateUser inserts a user row directly.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

// CreateRecipe inserts a minimal but complete recipe row.
func CreateRecipe(t *testing.T, db *gorm.DB, name string) *models.Recipe {
	t.Helper()
	description := "A test recipe"
	difficulty := 3
	recipe := &models.Recipe{
		Name:        name,
		Description: &description,
		Servings:    2,
		Ingredients: []models.Ingredient{
			{Name: "pasta", Quantity: "200g"},
			{Name: "garlic", Quantity: "2 cloves"},
		},
		Instructions: "Boil pasta\nAdd garlic",
		Difficulty:   &difficulty,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %q: %v", name, err)
	}
	return recipe
}
