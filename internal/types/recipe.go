package types

// RecipeSuggestion is one ephemeral entry of a generated list. Suggestions
// are never persisted.
type RecipeSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CookingTime *int   `json:"cooking_time"`
	Difficulty  *int   `json:"difficulty"`
}

// RecipeListResponse wraps generated suggestions
type RecipeListResponse struct {
	Recipes []RecipeSuggestion `json:"recipes"`
}
