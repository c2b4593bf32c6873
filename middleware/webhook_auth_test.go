package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticResolver struct {
	tokens map[string]string
	err    error
}

func (r *staticResolver) ResolveWebhookToken(_ context.Context, token string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if userID, ok := r.tokens[token]; ok {
		return userID, nil
	}
	return "", store.ErrNotFound
}

func newAuthRouter(resolver TokenResolver) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(), WebhookAuth(resolver))
	r.POST("/ingest", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})
	return r
}

func TestWebhookAuth_ValidToken(t *testing.T) {
	router := newAuthRouter(&staticResolver{tokens: map[string]string{"tok-abc": "user-1"}})

	req := httptest.NewRequest(http.MethodPost, "/ingest?token=tok-abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestWebhookAuth_MissingToken(t *testing.T) {
	router := newAuthRouter(&staticResolver{})

	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAuth_UnknownToken(t *testing.T) {
	router := newAuthRouter(&staticResolver{tokens: map[string]string{}})

	req := httptest.NewRequest(http.MethodPost, "/ingest?token=tok-bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAuth_ResolverFailureIs500(t *testing.T) {
	router := newAuthRouter(&staticResolver{err: context.DeadlineExceeded})

	req := httptest.NewRequest(http.MethodPost, "/ingest?token=tok-abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
