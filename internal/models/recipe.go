package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaxRecipeNameLength bounds Recipe.Name in runes.
const MaxRecipeNameLength = 200

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe is a persisted, fully detailed recipe. Name is indexed but not
// unique; lookups by name take the earliest matching row.
type Recipe struct {
	ID           uint                            `gorm:"primaryKey" json:"id"`
	Name         string                          `gorm:"size:200;not null;index" json:"name"`
	Description  *string                         `gorm:"type:text" json:"description"`
	Servings     int                             `gorm:"not null;default:1" json:"servings"`
	Ingredients  datatypes.JSONSlice[Ingredient] `gorm:"not null" json:"ingredients"`
	Instructions string                          `gorm:"type:text;not null" json:"instructions"`
	CookingTime  *int                            `json:"cooking_time"`
	PrepTime     *int                            `json:"prep_time"`
	Difficulty   *int                            `json:"difficulty"`
	CreatedAt    time.Time                       `json:"created_at"`
}
