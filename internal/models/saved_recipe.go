package models

import "time"

// SavedRecipe joins a user to a recipe they bookmarked. A user can save a
// given recipe at most once (uix_user_recipe).
type SavedRecipe struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:uix_user_recipe" json:"user_id"`
	RecipeID uint      `gorm:"not null;uniqueIndex:uix_user_recipe;index" json:"recipe_id"`
	SavedAt  time.Time `gorm:"not null;index;autoCreateTime" json:"saved_at"`

	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"recipe"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
