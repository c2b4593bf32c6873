package handlers

import (
	"context"

	"github.com/TripStitch/tripstitch-backend/middleware"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockInboundStore struct {
	mock.Mock
}

func (m *MockInboundStore) GetEmail(ctx context.Context, id string) (*types.InboundEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.InboundEmail), args.Error(1)
}

func (m *MockInboundStore) CreateEmail(ctx context.Context, email *types.InboundEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockInboundStore) UpdateEmail(ctx context.Context, email *types.InboundEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockInboundStore) GetRecommendation(ctx context.Context, id string) (*types.InboundRecommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.InboundRecommendation), args.Error(1)
}

func (m *MockInboundStore) CreateRecommendation(ctx context.Context, rec *types.InboundRecommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockInboundStore) UpdateRecommendation(ctx context.Context, rec *types.InboundRecommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockTripStore) ListTripsByUser(ctx context.Context, userID string) ([]*types.Trip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Trip), args.Error(1)
}

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, tripID string, ev types.SourceEvent) ([]types.LinkedEntity, error) {
	args := m.Called(ctx, tripID, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.LinkedEntity), args.Error(1)
}

// fakeSeen is an in-memory stand-in for the Redis seen-set.
type fakeSeen struct {
	entries map[string]bool
}

func newFakeSeen() *fakeSeen {
	return &fakeSeen{entries: map[string]bool{}}
}

func (f *fakeSeen) Seen(_ context.Context, kind, id string) bool {
	return f.entries[kind+":"+id]
}

func (f *fakeSeen) Mark(_ context.Context, kind, id string) {
	f.entries[kind+":"+id] = true
}

// asUser injects the authenticated user id the way WebhookAuth would.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}
