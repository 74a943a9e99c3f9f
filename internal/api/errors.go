package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/internal/middleware"
	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/types"
)

// responder writes error bodies. Unexpected errors are logged with the
// request id and only described to the client when exposeDetails is set.
type responder struct {
	log           logrus.FieldLogger
	exposeDetails bool
}

func (r responder) validationFailed(c *gin.Context, err error) {
	body := types.NewErrorResponse(types.ErrCodeValidationFailed, "Invalid request")
	body.Detail = err.Error()
	c.JSON(http.StatusUnprocessableEntity, body)
}

// fail maps domain errors to their status and code. notFoundMsg, when set,
// replaces the message of generator outcomes.
func (r responder) fail(c *gin.Context, err error, notFoundMsg string) {
	status, body := r.classify(err, notFoundMsg)
	if status >= http.StatusInternalServerError {
		r.log.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c),
			"path":       c.FullPath(),
		}).WithError(err).Error("Request failed")
		if r.exposeDetails {
			body.Detail = err.Error()
		}
	} else if errors.Is(err, service.ErrGeneratorUnavailable) {
		r.log.WithField("request_id", middleware.RequestID(c)).WithError(err).Warn("Recipe generator unavailable")
	}
	c.JSON(status, body)
}

func (r responder) classify(err error, notFoundMsg string) (int, types.ErrorResponse) {
	generatorMsg := func(fallback string) string {
		if notFoundMsg != "" {
			return notFoundMsg
		}
		return fallback
	}

	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidToken):
		return http.StatusForbidden, types.NewErrorResponse(types.ErrCodeNotAuthenticated, "Not authenticated")
	case errors.Is(err, service.ErrRecipeNotFound):
		return http.StatusNotFound, types.NewErrorResponse(types.ErrCodeRecipeNotFound, "Recipe not found")
	case errors.Is(err, service.ErrNotSaved):
		return http.StatusNotFound, types.NewErrorResponse(types.ErrCodeNotSaved, "Recipe not found in saved recipes")
	case errors.Is(err, service.ErrPreferencesNotFound):
		return http.StatusNotFound, types.NewErrorResponse(types.ErrCodeNotFound, "Preferences not found")
	case errors.Is(err, service.ErrAlreadySaved):
		return http.StatusBadRequest, types.NewErrorResponse(types.ErrCodeAlreadySaved, "Recipe already saved by user")
	case errors.Is(err, service.ErrPreferencesExist):
		return http.StatusBadRequest, types.NewErrorResponse(types.ErrCodeConflict, "Preferences already exist")
	case errors.Is(err, service.ErrNoResults):
		return http.StatusNotFound, types.NewErrorResponse(types.ErrCodeNoResults, generatorMsg("No results"))
	case errors.Is(err, service.ErrGeneratorUnavailable):
		return http.StatusNotFound, types.NewErrorResponse(types.ErrCodeGeneratorUnavailable, generatorMsg("Recipe generator unavailable"))
	}
	return http.StatusInternalServerError, types.NewErrorResponse(types.ErrCodeInternalServer, "Internal server error")
}
