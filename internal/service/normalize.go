package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/types"
)

// defaultQuantity is used for ingredients generated as bare strings.
const defaultQuantity = "as needed"

// flexibleInt accepts 30, 30.0, "30" and "30 minutes". Anything else
// decodes to nil rather than failing the whole document.
type flexibleInt struct {
	Value *int
}

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	f.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		v := int(num)
		f.Value = &v
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		digits := strings.TrimSpace(str)
		end := strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) })
		if end >= 0 {
			digits = digits[:end]
		}
		if v, err := strconv.Atoi(digits); err == nil {
			f.Value = &v
		}
	}
	return nil
}

type generatedSuggestion struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CookingTime flexibleInt `json:"cooking_time"`
	Difficulty  flexibleInt `json:"difficulty"`
}

type generatedRecipe struct {
	Name         string            `json:"name"`
	Description  *string           `json:"description"`
	Servings     flexibleInt       `json:"servings"`
	Ingredients  []json.RawMessage `json:"ingredients"`
	Instructions json.RawMessage   `json:"instructions"`
	CookingTime  flexibleInt       `json:"cooking_time"`
	PrepTime     flexibleInt       `json:"prep_time"`
	Difficulty   flexibleInt       `json:"difficulty"`
}

var errEmptyContent = errors.New("empty generator content")

// parseSuggestions decodes {"recipes": [...]}. Entries without a name are dropped.
func parseSuggestions(content string) ([]types.RecipeSuggestion, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errEmptyContent
	}

	var doc struct {
		Recipes []generatedSuggestion `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("malformed suggestions: %w", err)
	}

	suggestions := make([]types.RecipeSuggestion, 0, len(doc.Recipes))
	for _, r := range doc.Recipes {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		suggestions = append(suggestions, types.RecipeSuggestion{
			Name:        name,
			Description: strings.TrimSpace(r.Description),
			CookingTime: positive(r.CookingTime.Value),
			Difficulty:  difficulty(r.Difficulty.Value),
		})
	}
	return suggestions, nil
}

// parseRecipeDetails decodes and normalizes a generated recipe. List
// instructions are joined with newlines, and bare string ingredients get
// the quantity "as needed".
func parseRecipeDetails(content string, req types.RecipeDetailsRequest) (*models.Recipe, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errEmptyContent
	}

	var doc generatedRecipe
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("malformed recipe: %w", err)
	}

	ingredients, err := normalizeIngredients(doc.Ingredients)
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, errors.New("recipe has no ingredients")
	}

	instructions, err := normalizeInstructions(doc.Instructions)
	if err != nil {
		return nil, err
	}
	if instructions == "" {
		return nil, errors.New("recipe has no instructions")
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = req.RecipeName
	}

	servings := req.ServingsOrDefault()
	if v := doc.Servings.Value; v != nil && *v >= 1 {
		servings = *v
	}

	return &models.Recipe{
		Name:         truncateRunes(name, models.MaxRecipeNameLength),
		Description:  doc.Description,
		Servings:     servings,
		Ingredients:  ingredients,
		Instructions: instructions,
		CookingTime:  positive(doc.CookingTime.Value),
		PrepTime:     positive(doc.PrepTime.Value),
		Difficulty:   difficulty(doc.Difficulty.Value),
	}, nil
}

func normalizeIngredients(raw []json.RawMessage) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)

		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				ingredients = append(ingredients, models.Ingredient{Name: name, Quantity: defaultQuantity})
			}
			continue
		}

		var obj struct {
			Name     string          `json:"name"`
			Quantity json.RawMessage `json:"quantity"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("malformed ingredient %s: %w", item, err)
		}
		if obj.Name = strings.TrimSpace(obj.Name); obj.Name == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{Name: obj.Name, Quantity: quantityString(obj.Quantity)})
	}
	return ingredients, nil
}

func quantityString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return defaultQuantity
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return defaultQuantity
	}
	// Numbers and anything else keep their JSON text.
	return string(raw)
}

func normalizeInstructions(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text), nil
	}

	var steps []string
	if err := json.Unmarshal(raw, &steps); err != nil {
		return "", fmt.Errorf("malformed instructions: %w", err)
	}
	return strings.Join(steps, "\n"), nil
}

func positive(v *int) *int {
	if v == nil || *v < 1 {
		return nil
	}
	return v
}

func difficulty(v *int) *int {
	if v == nil || *v < 1 || *v > 10 {
		return nil
	}
	return v
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
