package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/types"
)

// Context keys set by AuthMiddleware
const (
	UserKey     = "user"
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// UserResolver turns a bearer token into the user it was issued for
type UserResolver interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token. Every
// authentication failure gets the same 403 body.
func AuthMiddleware(resolver UserResolver, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortNotAuthenticated(c)
			return
		}

		user, err := resolver.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				log.WithField("request_id", RequestID(c)).WithError(err).Debug("Rejected bearer token")
				abortNotAuthenticated(c)
				return
			}
			log.WithField("request_id", RequestID(c)).WithError(err).Error("Failed to resolve user")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				types.NewErrorResponse(types.ErrCodeInternalServer, "Internal server error"))
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Set(UsernameKey, user.Username)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortNotAuthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		types.NewErrorResponse(types.ErrCodeNotAuthenticated, "Not authenticated"))
}
