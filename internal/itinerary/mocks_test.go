package itinerary

import (
	"context"
	"time"

	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/stretchr/testify/mock"
)

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

type MockItineraryStore struct {
	mock.Mock
}

func (m *MockItineraryStore) GetDayByDate(ctx context.Context, tripID string, date time.Time) (*types.ItineraryDay, error) {
	args := m.Called(ctx, tripID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryDay), args.Error(1)
}

func (m *MockItineraryStore) ListDays(ctx context.Context, tripID string) ([]*types.ItineraryDay, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.ItineraryDay), args.Error(1)
}

func (m *MockItineraryStore) ListDayNumbers(ctx context.Context, tripID string) ([]int, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockItineraryStore) InsertDay(ctx context.Context, day *types.ItineraryDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockItineraryStore) UpdateDayLists(ctx context.Context, day *types.ItineraryDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}
