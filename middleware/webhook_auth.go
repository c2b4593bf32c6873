package middleware

import (
	"context"
	"errors"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// TokenResolver resolves an opaque webhook token to a user id.
type TokenResolver interface {
	ResolveWebhookToken(ctx context.Context, token string) (string, error)
}

// WebhookAuth authenticates ingestion callers via the per-user opaque token
// passed as a query parameter (the upstream pipelines post to
// ...?token=<token>). Requests with a missing or unknown token are rejected
// before any persistence occurs.
func WebhookAuth(users TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		token := c.Query("token")
		if token == "" {
			if err := c.Error(apperrors.AuthenticationFailed("Missing webhook token")); err != nil {
				log.Debugw("Error attaching auth error", "error", err)
			}
			c.Abort()
			return
		}

		userID, err := users.ResolveWebhookToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warnw("Rejected unknown webhook token", "token", logger.MaskToken(token))
				_ = c.Error(apperrors.AuthenticationFailed("Invalid webhook token"))
			} else {
				_ = c.Error(apperrors.NewDatabaseError(err))
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
