package types

// DefaultRequestServings is used when a generation request omits servings.
const DefaultRequestServings = 2

// LoginRequest represents the request body for username-only login
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// RecipeGenerateRequest holds the criteria for a list of recipe suggestions
type RecipeGenerateRequest struct {
	Ingredients         []string `json:"ingredients" binding:"required,min=1,dive,required"`
	CookingTime         *int     `json:"cooking_time" binding:"omitempty,min=1"`
	Difficulty          *int     `json:"difficulty" binding:"omitempty,min=1,max=10"`
	Servings            *int     `json:"servings" binding:"omitempty,min=1"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreferences  []string `json:"cuisine_preferences"`

	// Allergies is filled from stored preferences, never from the request body.
	Allergies []string `json:"-"`
}

// ServingsOrDefault returns the requested servings or DefaultRequestServings
func (r RecipeGenerateRequest) ServingsOrDefault() int {
	if r.Servings == nil {
		return DefaultRequestServings
	}
	return *r.Servings
}

// RecipeDetailsRequest asks for the full recipe behind a suggestion name
type RecipeDetailsRequest struct {
	RecipeName          string   `json:"recipe_name" binding:"required,max=200"`
	Servings            *int     `json:"servings" binding:"omitempty,min=1"`
	DietaryRestrictions []string `json:"dietary_restrictions"`

	Allergies []string `json:"-"`
}

// ServingsOrDefault returns the requested servings or DefaultRequestServings
func (r RecipeDetailsRequest) ServingsOrDefault() int {
	if r.Servings == nil {
		return DefaultRequestServings
	}
	return *r.Servings
}

// MessageResponse is a plain acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}
