package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishdash/backend/internal/middleware"
	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/types"
)

// RecipeHandler serves generation and the saved-recipe ledger
type RecipeHandler struct {
	acquisition *service.AcquisitionService
	saved       *service.SavedRecipeService
	preferences *service.PreferencesService
	responder
}

func NewRecipeHandler(acquisition *service.AcquisitionService, saved *service.SavedRecipeService, preferences *service.PreferencesService, respond responder) *RecipeHandler {
	return &RecipeHandler{
		acquisition: acquisition,
		saved:       saved,
		preferences: preferences,
		responder:   respond,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", h.Generate)
		recipes.POST("/details", h.Details)
		recipes.GET("/saved", h.ListSaved)
		recipes.POST("/saved/:id", h.Save)
		recipes.DELETE("/saved/:id", h.Unsave)
	}
}

// Generate returns suggestions for the given ingredients
func (h *RecipeHandler) Generate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	var req types.RecipeGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationFailed(c, err)
		return
	}

	prefs, err := h.preferences.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	suggestions, err := h.acquisition.GenerateList(c.Request.Context(), service.WithStoredPreferences(req, prefs))
	if err != nil {
		h.fail(c, err, "No recipes found for the given ingredients")
		return
	}

	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: suggestions})
}

// Details returns the stored recipe with the given name, generating it first
// when it is not stored yet
func (h *RecipeHandler) Details(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	var req types.RecipeDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationFailed(c, err)
		return
	}

	prefs, err := h.preferences.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	recipe, err := h.acquisition.GetOrGenerateDetails(c.Request.Context(), service.WithStoredDetailPreferences(req, prefs))
	if err != nil {
		h.fail(c, err, "Failed to generate recipe details")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// ListSaved returns the caller's saved recipes, newest first
func (h *RecipeHandler) ListSaved(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	saved, err := h.saved.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *RecipeHandler) Save(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	recipeID, err := recipeIDParam(c)
	if err != nil {
		h.validationFailed(c, err)
		return
	}

	saved, err := h.saved.Save(c.Request.Context(), user.ID, recipeID)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *RecipeHandler) Unsave(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	recipeID, err := recipeIDParam(c)
	if err != nil {
		h.validationFailed(c, err)
		return
	}

	removed, err := h.saved.Unsave(c.Request.Context(), user.ID, recipeID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if !removed {
		h.fail(c, service.ErrNotSaved, "")
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Recipe unsaved successfully"})
}

func recipeIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid recipe id %q", c.Param("id"))
	}
	return uint(id), nil
}

