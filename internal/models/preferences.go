package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserPreferences is the one-to-one settings record of a user. It is created
// lazily on first write.
type UserPreferences struct {
	ID                    uint                        `gorm:"primaryKey" json:"id"`
	UserID                uint                        `gorm:"not null;uniqueIndex" json:"user_id"`
	DietaryRestrictions   datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	Allergies             datatypes.JSONSlice[string] `json:"allergies"`
	CookingTimePreference *int                        `json:"cooking_time_preference"`
	DifficultyPreference  *int                        `json:"difficulty_preference"`
	CuisinePreferences    datatypes.JSONSlice[string] `json:"cuisine_preferences"`
	UpdatedAt             time.Time                   `json:"updated_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

