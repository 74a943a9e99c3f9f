package types

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/pageza/dishdash/backend/internal/models"
)

// PreferencesUpdate is a partial preferences document. Only fields present
// in the request body are applied; an explicit null clears the field.
type PreferencesUpdate struct {
	DietaryRestrictions   Optional[[]string] `json:"dietary_restrictions"`
	Allergies             Optional[[]string] `json:"allergies"`
	CookingTimePreference Optional[int]      `json:"cooking_time_preference"`
	DifficultyPreference  Optional[int]      `json:"difficulty_preference"`
	CuisinePreferences    Optional[[]string] `json:"cuisine_preferences"`
}

// Validate checks the ranges of present numeric fields.
func (u PreferencesUpdate) Validate() error {
	if v := u.CookingTimePreference.Value; v != nil && *v < 1 {
		return fmt.Errorf("cooking_time_preference must be at least 1")
	}
	if v := u.DifficultyPreference.Value; v != nil && (*v < 1 || *v > 10) {
		return fmt.Errorf("difficulty_preference must be between 1 and 10")
	}
	return nil
}

// ApplyTo merges the present fields into p.
func (u PreferencesUpdate) ApplyTo(p *models.UserPreferences) {
	if u.DietaryRestrictions.Set {
		p.DietaryRestrictions = stringList(u.DietaryRestrictions.Value)
	}
	if u.Allergies.Set {
		p.Allergies = stringList(u.Allergies.Value)
	}
	if u.CookingTimePreference.Set {
		p.CookingTimePreference = u.CookingTimePreference.Value
	}
	if u.DifficultyPreference.Set {
		p.DifficultyPreference = u.DifficultyPreference.Value
	}
	if u.CuisinePreferences.Set {
		p.CuisinePreferences = stringList(u.CuisinePreferences.Value)
	}
}

func stringList(v *[]string) datatypes.JSONSlice[string] {
	if v == nil {
		return nil
	}
	return datatypes.JSONSlice[string](*v)
}

// EmptyPreferences is returned for users that never stored preferences
type EmptyPreferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
}

// NewEmptyPreferences returns the default shape with empty, non-null lists
func NewEmptyPreferences() EmptyPreferences {
	return EmptyPreferences{
		DietaryRestrictions: []string{},
		Allergies:           []string{},
		CuisinePreferences:  []string{},
	}
}

// PreferencesResponse renders a stored record. Unset lists are written as []
// so clients never see null for a list field.
type PreferencesResponse struct {
	ID                    uint      `json:"id"`
	UserID                uint      `json:"user_id"`
	DietaryRestrictions   []string  `json:"dietary_restrictions"`
	Allergies             []string  `json:"allergies"`
	CookingTimePreference *int      `json:"cooking_time_preference"`
	DifficultyPreference  *int      `json:"difficulty_preference"`
	CuisinePreferences    []string  `json:"cuisine_preferences"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func NewPreferencesResponse(p *models.UserPreferences) PreferencesResponse {
	return PreferencesResponse{
		ID:                    p.ID,
		UserID:                p.UserID,
		DietaryRestrictions:   nonNilList(p.DietaryRestrictions),
		Allergies:             nonNilList(p.Allergies),
		CookingTimePreference: p.CookingTimePreference,
		DifficultyPreference:  p.DifficultyPreference,
		CuisinePreferences:    nonNilList(p.CuisinePreferences),
		UpdatedAt:             p.UpdatedAt,
	}
}

func nonNilList(v datatypes.JSONSlice[string]) []string {
	if v == nil {
		return []string{}
	}
	return []string(v)
}
