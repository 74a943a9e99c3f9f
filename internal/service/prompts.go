package service

import (
	"fmt"
	"strings"

	"github.com/pageza/dishdash/backend/internal/types"
)

const (
	listSystemPrompt    = "You are a professional chef assistant. Generate recipe suggestions in JSON format."
	detailsSystemPrompt = "You are a professional chef. Provide detailed recipes in JSON format."

	suggestionCount = 6
)

const listResponseShape = `

Return a JSON object with this structure (exactly 6 recipes):
{
  "recipes": [
    {
      "name": "Recipe Name",
      "description": "Brief description (1-2 sentences)",
      "cooking_time": 30,
      "difficulty": 5
    }
  ]
}`

const detailsResponseShape = `

Return a JSON object with this structure:
{
  "name": "Recipe Name",
  "description": "Detailed description",
  "servings": 2,
  "ingredients": [
    {"name": "Ingredient name", "quantity": "Amount with unit"}
  ],
  "instructions": "Step by step cooking instructions",
  "cooking_time": 30,
  "prep_time": 15,
  "difficulty": 5
}`

func buildListPrompt(req types.RecipeGenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d recipe suggestions using these ingredients: %s\n\n", suggestionCount, strings.Join(req.Ingredients, ", "))
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Servings: %d", req.ServingsOrDefault())

	if req.CookingTime != nil {
		fmt.Fprintf(&b, "\n- Max cooking time: %d minutes", *req.CookingTime)
	}
	if req.Difficulty != nil {
		fmt.Fprintf(&b, "\n- Difficulty level: %d/10", *req.Difficulty)
	}
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "\n- Dietary restrictions: %s", strings.Join(req.DietaryRestrictions, ", "))
	}
	if len(req.CuisinePreferences) > 0 {
		fmt.Fprintf(&b, "\n- Cuisine preferences: %s", strings.Join(req.CuisinePreferences, ", "))
	}
	if len(req.Allergies) > 0 {
		fmt.Fprintf(&b, "\n- Avoid these allergens: %s", strings.Join(req.Allergies, ", "))
	}

	b.WriteString(listResponseShape)
	return b.String()
}

func buildDetailsPrompt(req types.RecipeDetailsRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Provide a detailed recipe for: %s\n\n", req.RecipeName)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Servings: %d", req.ServingsOrDefault())

	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "\n- Dietary restrictions: %s", strings.Join(req.DietaryRestrictions, ", "))
	}
	if len(req.Allergies) > 0 {
		fmt.Fprintf(&b, "\n- Avoid these allergens: %s", strings.Join(req.Allergies, ", "))
	}

	b.WriteString(detailsResponseShape)
	return b.String()
}
