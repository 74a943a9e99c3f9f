package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/types"
)

// AuthHandler serves username-only login
type AuthHandler struct {
	auth *service.AuthService
	responder
}

func NewAuthHandler(auth *service.AuthService, respond responder) *AuthHandler {
	return &AuthHandler{auth: auth, responder: respond}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

// Login creates the user on first use and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationFailed(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Username)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, resp)
}
