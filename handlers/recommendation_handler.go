package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/internal/reconcile"
	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/middleware"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/gin-gonic/gin"
)

const seenKindRecommendation = "recommendation"

// RecommendationHandler handles ingestion from the URL/video/text extraction
// pipeline.
type RecommendationHandler struct {
	inbound    store.InboundStore
	trips      store.TripStore
	reconciler EntityReconciler
	seen       SeenChecker
}

// NewRecommendationHandler creates a RecommendationHandler with the given
// dependencies.
func NewRecommendationHandler(
	inbound store.InboundStore,
	trips store.TripStore,
	reconciler EntityReconciler,
	seen SeenChecker,
) *RecommendationHandler {
	return &RecommendationHandler{
		inbound:    inbound,
		trips:      trips,
		reconciler: reconciler,
		seen:       seen,
	}
}

// IngestRecommendationRequest is the payload posted by the extraction
// pipeline. The recommendationId is the caller-assigned idempotency key.
type IngestRecommendationRequest struct {
	RecommendationID string                       `json:"recommendationId" binding:"required"`
	Timestamp        string                       `json:"timestamp"`
	SourceURL        string                       `json:"sourceUrl" binding:"required"`
	SourceTitle      string                       `json:"sourceTitle"`
	SourceImage      string                       `json:"sourceImage"`
	Analysis         types.RecommendationAnalysis `json:"analysis" binding:"required"`
}

// IngestRecommendation handles POST /v1/ingest/recommendation. The target trip
// is inferred by matching the extraction's country hierarchy against the
// caller's trips; with no match the record stays pending.
func (h *RecommendationHandler) IngestRecommendation(c *gin.Context) {
	log := logger.GetLogger()
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var req IngestRecommendationRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if h.seen.Seen(ctx, seenKindRecommendation, req.RecommendationID) {
		log.Infow("Duplicate recommendation delivery (cache)", "recommendationID", req.RecommendationID)
		c.JSON(http.StatusOK, types.IngestResult{Duplicate: true})
		return
	}
	existing, err := h.inbound.GetRecommendation(ctx, req.RecommendationID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	if existing != nil {
		log.Infow("Duplicate recommendation delivery", "recommendationID", req.RecommendationID)
		h.seen.Mark(ctx, seenKindRecommendation, req.RecommendationID)
		c.JSON(http.StatusOK, types.IngestResult{
			Status:         existing.Status,
			Duplicate:      true,
			TripID:         existing.TripID,
			LinkedEntities: existing.LinkedEntities,
		})
		return
	}

	record := &types.InboundRecommendation{
		ID:          req.RecommendationID,
		UserID:      userID,
		Timestamp:   req.Timestamp,
		SourceURL:   req.SourceURL,
		SourceTitle: req.SourceTitle,
		SourceImage: req.SourceImage,
		Analysis:    req.Analysis,
		Status:      types.InboundPending,
		ReceivedAt:  time.Now().UTC(),
	}

	trip, err := h.matchTrip(c, userID, req.Analysis.SitesHierarchy)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if trip == nil {
		if err := h.inbound.CreateRecommendation(ctx, record); err != nil {
			_ = c.Error(apperrors.NewDatabaseError(err))
			return
		}
		h.seen.Mark(ctx, seenKindRecommendation, req.RecommendationID)
		log.Infow("No trip matched recommendation countries, stored pending",
			"recommendationID", req.RecommendationID)
		c.JSON(http.StatusAccepted, types.IngestResult{Status: types.InboundPending})
		return
	}

	record.TripID = &trip.ID
	if err := h.inbound.CreateRecommendation(ctx, record); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	linked, err := h.reconcileAnalysis(c, trip.ID, record)
	if err != nil {
		_ = c.Error(err)
		return
	}

	record.Status = types.InboundLinked
	record.LinkedEntities = linked
	if err := h.inbound.UpdateRecommendation(ctx, record); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	h.seen.Mark(ctx, seenKindRecommendation, req.RecommendationID)
	log.Infow("Reconciled recommendation into trip",
		"recommendationID", req.RecommendationID, "tripID", trip.ID, "entities", len(linked))

	c.JSON(http.StatusOK, types.IngestResult{
		Status:         types.InboundLinked,
		TripID:         record.TripID,
		LinkedEntities: linked,
	})
}

// GetRecommendation handles GET /v1/ingest/recommendation/:id.
func (h *RecommendationHandler) GetRecommendation(c *gin.Context) {
	ctx := c.Request.Context()
	recID := c.Param("id")

	record, err := h.inbound.GetRecommendation(ctx, recID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("InboundRecommendation", recID))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	c.JSON(http.StatusOK, record)
}

// matchTrip finds the caller's trip whose country list overlaps the
// extraction's country-typed hierarchy entries. First match wins.
func (h *RecommendationHandler) matchTrip(c *gin.Context, userID string, hierarchy []types.GeoLevel) (*types.Trip, error) {
	var countries []string
	for _, level := range hierarchy {
		if level.Type == "country" && level.Name != "" {
			countries = append(countries, level.Name)
		}
	}
	if len(countries) == 0 {
		return nil, nil
	}

	trips, err := h.trips.ListTripsByUser(c.Request.Context(), userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	for _, trip := range trips {
		for _, tripCountry := range trip.Countries {
			for _, country := range countries {
				if reconcile.FuzzyMatch(tripCountry, country) {
					return trip, nil
				}
			}
		}
	}
	return nil, nil
}

// reconcileAnalysis feeds every extracted item and contact through the
// reconciler. Negative-sentiment items are dropped here; geo, tip and
// unclassifiable tags are skipped downstream.
func (h *RecommendationHandler) reconcileAnalysis(c *gin.Context, tripID string, record *types.InboundRecommendation) ([]types.LinkedEntity, error) {
	log := logger.GetLogger()
	ctx := c.Request.Context()

	var linked []types.LinkedEntity
	for _, item := range record.Analysis.ExtractedItems {
		if strings.EqualFold(item.Sentiment, "negative") {
			log.Debugw("Skipping negative-sentiment item", "name", item.Name, "recommendationID", record.ID)
			continue
		}
		entities, err := h.reconciler.Reconcile(ctx, tripID, types.SourceEvent{
			Kind:         types.KindRecommendation,
			ProvenanceID: record.ID,
			TypeTag:      item.TypeTag,
			Name:         item.Name,
			Payload:      item.Details,
			Location:     item.Location,
			GeoHierarchy: record.Analysis.SitesHierarchy,
		})
		if err != nil {
			return nil, err
		}
		linked = append(linked, entities...)
	}

	for _, contact := range record.Analysis.Contacts {
		entities, err := h.reconciler.Reconcile(ctx, tripID, types.SourceEvent{
			Kind:         types.KindRecommendation,
			ProvenanceID: record.ID,
			TypeTag:      "contact",
			Name:         contact.Name,
			Payload: map[string]any{
				"name":  contact.Name,
				"phone": contact.Phone,
				"email": contact.Email,
				"notes": contact.Notes,
			},
		})
		if err != nil {
			return nil, err
		}
		linked = append(linked, entities...)
	}
	return linked, nil
}
