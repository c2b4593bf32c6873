package reconcile

import (
	"context"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/stretchr/testify/mock"
)

type MockPOIStore struct {
	mock.Mock
}

func (m *MockPOIStore) CreatePOI(ctx context.Context, poi *types.POI) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockPOIStore) GetPOI(ctx context.Context, id string) (*types.POI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.POI), args.Error(1)
}

func (m *MockPOIStore) UpdatePOI(ctx context.Context, poi *types.POI) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockPOIStore) FindPOIByOrderNumber(ctx context.Context, tripID string, category types.EntityCategory, orderNumber string) (*types.POI, error) {
	args := m.Called(ctx, tripID, category, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.POI), args.Error(1)
}

func (m *MockPOIStore) ListPOIsByCategory(ctx context.Context, tripID string, category types.EntityCategory) ([]*types.POI, error) {
	args := m.Called(ctx, tripID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.POI), args.Error(1)
}

func (m *MockPOIStore) AppendPOISourceRef(ctx context.Context, id string, field store.RefField, refID string) error {
	args := m.Called(ctx, id, field, refID)
	return args.Error(0)
}

func (m *MockPOIStore) SetPOICancelled(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTransportationStore struct {
	mock.Mock
}

func (m *MockTransportationStore) CreateTransportation(ctx context.Context, tr *types.Transportation) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockTransportationStore) GetTransportation(ctx context.Context, id string) (*types.Transportation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transportation), args.Error(1)
}

func (m *MockTransportationStore) UpdateTransportation(ctx context.Context, tr *types.Transportation) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockTransportationStore) FindTransportationByOrderNumber(ctx context.Context, tripID, orderNumber string) (*types.Transportation, error) {
	args := m.Called(ctx, tripID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transportation), args.Error(1)
}

func (m *MockTransportationStore) ListTransportationsByTrip(ctx context.Context, tripID string) ([]*types.Transportation, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Transportation), args.Error(1)
}

func (m *MockTransportationStore) AppendTransportationSourceRef(ctx context.Context, id string, field store.RefField, refID string) error {
	args := m.Called(ctx, id, field, refID)
	return args.Error(0)
}

func (m *MockTransportationStore) SetTransportationCancelled(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockContactStore struct {
	mock.Mock
}

func (m *MockContactStore) CreateContact(ctx context.Context, contact *types.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactStore) UpdateContact(ctx context.Context, contact *types.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactStore) ListContactsByTrip(ctx context.Context, tripID string) ([]*types.Contact, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Contact), args.Error(1)
}

func (m *MockContactStore) AppendContactSourceRef(ctx context.Context, id string, field store.RefField, refID string) error {
	args := m.Called(ctx, id, field, refID)
	return args.Error(0)
}

type MockDayLinker struct {
	mock.Mock
}

func (m *MockDayLinker) LinkPOI(ctx context.Context, poi *types.POI) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockDayLinker) UnlinkPOI(ctx context.Context, tripID, poiID string) error {
	args := m.Called(ctx, tripID, poiID)
	return args.Error(0)
}

func (m *MockDayLinker) LinkTransportation(ctx context.Context, tr *types.Transportation) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockDayLinker) UnlinkTransportation(ctx context.Context, tripID, transportationID string) error {
	args := m.Called(ctx, tripID, transportationID)
	return args.Error(0)
}
