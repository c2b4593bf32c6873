package handlers

import (
	"net/http"
	"testing"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/middleware"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recFixture struct {
	inbound    *MockInboundStore
	trips      *MockTripStore
	reconciler *MockReconciler
	seen       *fakeSeen
	router     *gin.Engine
}

func newRecFixture() *recFixture {
	f := &recFixture{
		inbound:    new(MockInboundStore),
		trips:      new(MockTripStore),
		reconciler: new(MockReconciler),
		seen:       newFakeSeen(),
	}
	h := NewRecommendationHandler(f.inbound, f.trips, f.reconciler, f.seen)

	f.router = gin.New()
	f.router.Use(middleware.ErrorHandler(), asUser("user-1"))
	f.router.POST("/v1/ingest/recommendation", h.IngestRecommendation)
	f.router.GET("/v1/ingest/recommendation/:id", h.GetRecommendation)
	return f
}

func japanAnalysis() types.RecommendationAnalysis {
	return types.RecommendationAnalysis{
		SitesHierarchy: []types.GeoLevel{
			{Name: "Japan", Type: "country"},
			{Name: "Tokyo", Type: "city"},
		},
		ExtractedItems: []types.ExtractedItem{
			{TypeTag: "restaurant", Name: "Sukiyabashi Jiro", Sentiment: "positive"},
			{TypeTag: "restaurant", Name: "Tourist Trap Diner", Sentiment: "negative"},
			{TypeTag: "country", Name: "Japan"},
		},
		Contacts: []types.ExtractedContact{
			{Name: "Kenji Tanaka", Phone: "+81 90 0000 0000"},
		},
	}
}

func TestIngestRecommendation_MatchesTripByCountry(t *testing.T) {
	f := newRecFixture()

	f.inbound.On("GetRecommendation", mock.Anything, "rec-1").Return(nil, store.ErrNotFound)
	f.trips.On("ListTripsByUser", mock.Anything, "user-1").
		Return([]*types.Trip{sampleTrip()}, nil)
	f.inbound.On("CreateRecommendation", mock.Anything, mock.AnythingOfType("*types.InboundRecommendation")).Return(nil)
	f.reconciler.On("Reconcile", mock.Anything, "trip-1", mock.AnythingOfType("types.SourceEvent")).
		Return([]types.LinkedEntity{{EntityType: types.LinkedPOI, EntityID: "poi-1"}}, nil)
	f.inbound.On("UpdateRecommendation", mock.Anything, mock.AnythingOfType("*types.InboundRecommendation")).Return(nil)

	w := postJSON(f.router, "/v1/ingest/recommendation", IngestRecommendationRequest{
		RecommendationID: "rec-1",
		SourceURL:        "https://example.com/tokyo-guide",
		Analysis:         japanAnalysis(),
	})

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.Equal(t, types.InboundLinked, res.Status)
	require.NotNil(t, res.TripID)
	assert.Equal(t, "trip-1", *res.TripID)

	// The negative-sentiment item is dropped in the handler; the geo item and
	// the contact still flow to the reconciler (it decides what to skip).
	var names []string
	for _, call := range f.reconciler.Calls {
		ev := call.Arguments.Get(2).(types.SourceEvent)
		names = append(names, ev.Name)
		assert.Equal(t, types.KindRecommendation, ev.Kind)
		assert.Equal(t, "rec-1", ev.ProvenanceID)
	}
	assert.Equal(t, []string{"Sukiyabashi Jiro", "Japan", "Kenji Tanaka"}, names)
}

func TestIngestRecommendation_NoCountryMatchStoresPending(t *testing.T) {
	f := newRecFixture()

	f.inbound.On("GetRecommendation", mock.Anything, "rec-2").Return(nil, store.ErrNotFound)
	trip := sampleTrip()
	trip.Countries = []string{"Italy"}
	f.trips.On("ListTripsByUser", mock.Anything, "user-1").Return([]*types.Trip{trip}, nil)
	f.inbound.On("CreateRecommendation", mock.Anything, mock.AnythingOfType("*types.InboundRecommendation")).Return(nil)

	w := postJSON(f.router, "/v1/ingest/recommendation", IngestRecommendationRequest{
		RecommendationID: "rec-2",
		SourceURL:        "https://example.com/tokyo-guide",
		Analysis:         japanAnalysis(),
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, types.InboundPending, decodeResult(t, w).Status)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)

	stored := f.inbound.Calls[1].Arguments.Get(1).(*types.InboundRecommendation)
	assert.Nil(t, stored.TripID)
	assert.Equal(t, types.InboundPending, stored.Status)
}

func TestIngestRecommendation_NoHierarchyStoresPending(t *testing.T) {
	f := newRecFixture()

	f.inbound.On("GetRecommendation", mock.Anything, "rec-3").Return(nil, store.ErrNotFound)
	f.inbound.On("CreateRecommendation", mock.Anything, mock.AnythingOfType("*types.InboundRecommendation")).Return(nil)

	w := postJSON(f.router, "/v1/ingest/recommendation", IngestRecommendationRequest{
		RecommendationID: "rec-3",
		SourceURL:        "https://example.com/list",
		Analysis: types.RecommendationAnalysis{
			ExtractedItems: []types.ExtractedItem{{TypeTag: "restaurant", Name: "Somewhere"}},
		},
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	// Without country entries there is nothing to match against; the trip
	// store is not even consulted.
	f.trips.AssertNotCalled(t, "ListTripsByUser", mock.Anything, mock.Anything)
}

func TestIngestRecommendation_DuplicateDeliveryIsSkipped(t *testing.T) {
	f := newRecFixture()

	tripID := "trip-1"
	f.inbound.On("GetRecommendation", mock.Anything, "rec-1").Return(&types.InboundRecommendation{
		ID:     "rec-1",
		TripID: &tripID,
		Status: types.InboundLinked,
	}, nil)

	w := postJSON(f.router, "/v1/ingest/recommendation", IngestRecommendationRequest{
		RecommendationID: "rec-1",
		SourceURL:        "https://example.com/tokyo-guide",
		Analysis:         japanAnalysis(),
	})

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.True(t, res.Duplicate)
	f.inbound.AssertNotCalled(t, "CreateRecommendation", mock.Anything, mock.Anything)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestRecommendation_MissingSourceURLRejected(t *testing.T) {
	f := newRecFixture()

	w := postJSON(f.router, "/v1/ingest/recommendation", map[string]any{
		"recommendationId": "rec-4",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.inbound.AssertNotCalled(t, "CreateRecommendation", mock.Anything, mock.Anything)
}
