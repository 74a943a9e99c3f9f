package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/dishdash/backend/internal/database"
	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/service"
)

// seedRecipe is one entry of a seed file. It mirrors the recipe record
// without ids or timestamps.
type seedRecipe struct {
	Name         string              `json:"name"`
	Description  *string             `json:"description"`
	Servings     int                 `json:"servings"`
	Ingredients  []models.Ingredient `json:"ingredients"`
	Instructions string              `json:"instructions"`
	CookingTime  *int                `json:"cooking_time"`
	PrepTime     *int                `json:"prep_time"`
	Difficulty   *int                `json:"difficulty"`
}

func (s seedRecipe) toModel() (*models.Recipe, error) {
	name := strings.TrimSpace(s.Name)
	switch {
	case name == "":
		return nil, errors.New("recipe without a name")
	case len([]rune(name)) > models.MaxRecipeNameLength:
		return nil, fmt.Errorf("recipe name %q is too long", name)
	case len(s.Ingredients) == 0:
		return nil, fmt.Errorf("recipe %q has no ingredients", name)
	case strings.TrimSpace(s.Instructions) == "":
		return nil, fmt.Errorf("recipe %q has no instructions", name)
	case s.Difficulty != nil && (*s.Difficulty < 1 || *s.Difficulty > 10):
		return nil, fmt.Errorf("recipe %q has difficulty outside 1..10", name)
	}

	servings := s.Servings
	if servings < 1 {
		servings = 1
	}

	return &models.Recipe{
		Name:         name,
		Description:  s.Description,
		Servings:     servings,
		Ingredients:  s.Ingredients,
		Instructions: s.Instructions,
		CookingTime:  s.CookingTime,
		PrepTime:     s.PrepTime,
		Difficulty:   s.Difficulty,
	}, nil
}

func readSeedRecipes(r io.Reader) ([]*models.Recipe, error) {
	var entries []seedRecipe
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	recipes := make([]*models.Recipe, 0, len(entries))
	for i, entry := range entries {
		recipe, err := entry.toModel()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func newSeedRecipesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-recipes <file.json>",
		Short: "Load recipes from a JSON array, skipping names that already exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer file.Close()

			recipes, err := readSeedRecipes(file)
			if err != nil {
				return err
			}

			db, err := ctx.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, ctx.log); err != nil {
				return err
			}

			store := service.NewRecipeService(db, ctx.cfg.DBQueryTimeout)
			created, skipped := 0, 0
			for _, recipe := range recipes {
				existing, err := store.GetByName(cmd.Context(), recipe.Name)
				if err != nil {
					return err
				}
				if existing != nil {
					skipped++
					continue
				}
				if err := store.Create(cmd.Context(), recipe); err != nil {
					return err
				}
				created++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d recipes (%d already present)\n", created, skipped)
			return nil
		},
	}
}

func newSeedUsersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-users <username>...",
		Short: "Create users for local testing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, ctx.log); err != nil {
				return err
			}

			users := service.NewUserService(db, ctx.cfg.DBQueryTimeout)
			for _, username := range args {
				if err := validateUsername(username); err != nil {
					return err
				}
				user, err := users.GetOrCreate(cmd.Context(), username)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", user.ID, user.Username)
			}
			return nil
		},
	}
}
