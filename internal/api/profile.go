package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishdash/backend/internal/middleware"
	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/types"
)

// ProfileHandler serves the caller's identity and preferences
type ProfileHandler struct {
	preferences *service.PreferencesService
	responder
}

func NewProfileHandler(preferences *service.PreferencesService, respond responder) *ProfileHandler {
	return &ProfileHandler{preferences: preferences, responder: respond}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/me")
	{
		me.GET("", h.Me)
		me.GET("/preferences", h.GetPreferences)
		me.PUT("/preferences", h.PutPreferences)
	}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetPreferences returns the stored record or the empty default shape
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	prefs, err := h.preferences.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if prefs == nil {
		c.JSON(http.StatusOK, types.NewEmptyPreferences())
		return
	}

	c.JSON(http.StatusOK, types.NewPreferencesResponse(prefs))
}

// PutPreferences applies the fields present in the body, creating the
// record on first write
func (h *ProfileHandler) PutPreferences(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.fail(c, service.ErrUnauthenticated, "")
		return
	}

	var update types.PreferencesUpdate
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		h.validationFailed(c, err)
		return
	}
	if err := update.Validate(); err != nil {
		h.validationFailed(c, err)
		return
	}

	prefs, err := h.preferences.Upsert(c.Request.Context(), user.ID, update)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, types.NewPreferencesResponse(prefs))
}
