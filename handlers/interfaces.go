// Package handlers exposes the ingestion webhook endpoints. Each handler
// enforces idempotency before any reconciliation work, so at-least-once
// delivery from the upstream pipelines is safe.
package handlers

import (
	"context"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/gin-gonic/gin"
)

// EntityReconciler applies one normalized inbound event to a trip.
type EntityReconciler interface {
	Reconcile(ctx context.Context, tripID string, ev types.SourceEvent) ([]types.LinkedEntity, error)
}

// SeenChecker is the advisory idempotency fast path in front of the store.
type SeenChecker interface {
	Seen(ctx context.Context, kind, id string) bool
	Mark(ctx context.Context, kind, id string)
}

func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid_request_payload", err.Error()))
		return false
	}
	return true
}
