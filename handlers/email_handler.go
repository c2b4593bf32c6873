package handlers

import (
	"errors"
	"net/http"
	"time"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/middleware"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/gin-gonic/gin"
)

const seenKindEmail = "email"

// EmailHandler handles parsed-email ingestion from the mail pipeline.
type EmailHandler struct {
	inbound    store.InboundStore
	trips      store.TripStore
	reconciler EntityReconciler
	seen       SeenChecker
}

// NewEmailHandler creates an EmailHandler with the given dependencies.
func NewEmailHandler(
	inbound store.InboundStore,
	trips store.TripStore,
	reconciler EntityReconciler,
	seen SeenChecker,
) *EmailHandler {
	return &EmailHandler{
		inbound:    inbound,
		trips:      trips,
		reconciler: reconciler,
		seen:       seen,
	}
}

// IngestEmailRequest is the payload posted by the email parsing pipeline.
// The id is the caller-assigned idempotency key.
type IngestEmailRequest struct {
	ID              string            `json:"id" binding:"required"`
	TripID          *string           `json:"tripId"`
	Action          types.EventAction `json:"action"`
	BusinessKey     string            `json:"businessKey"`
	Category        string            `json:"category" binding:"required"`
	CategoryDetails map[string]any    `json:"categoryDetails"`
	GeoHierarchy    []types.GeoLevel  `json:"geoHierarchy"`
}

// LinkEmailRequest attaches a pending email to a trip.
type LinkEmailRequest struct {
	TripID string `json:"tripId" binding:"required"`
}

// IngestEmail handles POST /v1/ingest/email. A null tripId stores the record
// as pending; otherwise the event is reconciled into the trip immediately.
func (h *EmailHandler) IngestEmail(c *gin.Context) {
	log := logger.GetLogger()
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var req IngestEmailRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if h.seen.Seen(ctx, seenKindEmail, req.ID) {
		log.Infow("Duplicate email delivery (cache)", "emailID", req.ID)
		c.JSON(http.StatusOK, types.IngestResult{Duplicate: true})
		return
	}
	existing, err := h.inbound.GetEmail(ctx, req.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	if existing != nil {
		log.Infow("Duplicate email delivery", "emailID", req.ID)
		h.seen.Mark(ctx, seenKindEmail, req.ID)
		c.JSON(http.StatusOK, types.IngestResult{
			Status:         existing.Status,
			Duplicate:      true,
			TripID:         existing.TripID,
			LinkedEntities: existing.LinkedEntities,
		})
		return
	}

	record := &types.InboundEmail{
		ID:           req.ID,
		UserID:       userID,
		TripID:       req.TripID,
		Action:       req.Action,
		BusinessKey:  req.BusinessKey,
		TypeTag:      req.Category,
		Payload:      req.CategoryDetails,
		GeoHierarchy: req.GeoHierarchy,
		Status:       types.InboundPending,
		ReceivedAt:   time.Now().UTC(),
	}

	if req.TripID == nil || *req.TripID == "" {
		record.TripID = nil
		if err := h.inbound.CreateEmail(ctx, record); err != nil {
			_ = c.Error(apperrors.NewDatabaseError(err))
			return
		}
		h.seen.Mark(ctx, seenKindEmail, req.ID)
		log.Infow("Stored pending email, awaiting trip link", "emailID", req.ID)
		c.JSON(http.StatusAccepted, types.IngestResult{Status: types.InboundPending})
		return
	}

	trip, err := h.trips.GetTrip(ctx, *req.TripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Trip", *req.TripID))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	// The record is persisted before reconciling, so a mid-flight failure
	// leaves a retryable pending row guarded by the idempotency key.
	if err := h.inbound.CreateEmail(ctx, record); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	linked, err := h.reconciler.Reconcile(ctx, trip.ID, emailEvent(record))
	if err != nil {
		_ = c.Error(err)
		return
	}

	record.Status = types.InboundLinked
	record.LinkedEntities = linked
	if err := h.inbound.UpdateEmail(ctx, record); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	h.seen.Mark(ctx, seenKindEmail, req.ID)

	c.JSON(http.StatusOK, types.IngestResult{
		Status:         types.InboundLinked,
		TripID:         record.TripID,
		LinkedEntities: linked,
	})
}

// LinkEmail handles POST /v1/ingest/email/:id/link. A human picked the trip
// for a pending email; the deferred reconcile flow runs now.
func (h *EmailHandler) LinkEmail(c *gin.Context) {
	log := logger.GetLogger()
	ctx := c.Request.Context()
	emailID := c.Param("id")

	var req LinkEmailRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	record, err := h.inbound.GetEmail(ctx, emailID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("InboundEmail", emailID))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	if record.Status == types.InboundLinked {
		log.Infow("Email already linked", "emailID", emailID)
		c.JSON(http.StatusOK, types.IngestResult{
			Status:         types.InboundLinked,
			Duplicate:      true,
			TripID:         record.TripID,
			LinkedEntities: record.LinkedEntities,
		})
		return
	}

	trip, err := h.trips.GetTrip(ctx, req.TripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Trip", req.TripID))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	record.TripID = &trip.ID
	linked, err := h.reconciler.Reconcile(ctx, trip.ID, emailEvent(record))
	if err != nil {
		_ = c.Error(err)
		return
	}

	record.Status = types.InboundLinked
	record.LinkedEntities = linked
	if err := h.inbound.UpdateEmail(ctx, record); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	log.Infow("Linked pending email to trip", "emailID", emailID, "tripID", trip.ID)

	c.JSON(http.StatusOK, types.IngestResult{
		Status:         types.InboundLinked,
		TripID:         record.TripID,
		LinkedEntities: linked,
	})
}

// GetEmail handles GET /v1/ingest/email/:id, returning the stored record with
// its audit trail.
func (h *EmailHandler) GetEmail(c *gin.Context) {
	ctx := c.Request.Context()
	emailID := c.Param("id")

	record, err := h.inbound.GetEmail(ctx, emailID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("InboundEmail", emailID))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	c.JSON(http.StatusOK, record)
}

func emailEvent(record *types.InboundEmail) types.SourceEvent {
	return types.SourceEvent{
		Kind:         types.KindParsedEmail,
		ProvenanceID: record.ID,
		Action:       record.Action,
		BusinessKey:  record.BusinessKey,
		TypeTag:      record.TypeTag,
		Payload:      record.Payload,
		GeoHierarchy: record.GeoHierarchy,
	}
}
