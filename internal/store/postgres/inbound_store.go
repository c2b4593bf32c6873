package postgres

import (
	"context"
	"errors"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/jackc/pgx/v5"
)

// InboundStore implements store.InboundStore. Inbound record ids are the
// caller-assigned idempotency keys, so primary-key lookups double as the
// duplicate-delivery check.
type InboundStore struct {
	db DB
}

// NewInboundStore creates an InboundStore backed by the given connection.
func NewInboundStore(db DB) *InboundStore {
	return &InboundStore{db: db}
}

func (s *InboundStore) GetEmail(ctx context.Context, id string) (*types.InboundEmail, error) {
	query := `
		SELECT id, user_id, trip_id, action, business_key, type_tag, payload, geo_hierarchy, status, linked_entities, received_at
		FROM inbound_emails
		WHERE id = $1`

	email := &types.InboundEmail{}
	var payload, geoHierarchy, linkedEntities []byte
	err := s.db.QueryRow(ctx, query, id).Scan(
		&email.ID,
		&email.UserID,
		&email.TripID,
		&email.Action,
		&email.BusinessKey,
		&email.TypeTag,
		&payload,
		&geoHierarchy,
		&email.Status,
		&linkedEntities,
		&email.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if err := unmarshalJSONB(payload, &email.Payload); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(geoHierarchy, &email.GeoHierarchy); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(linkedEntities, &email.LinkedEntities); err != nil {
		return nil, err
	}
	return email, nil
}

func (s *InboundStore) CreateEmail(ctx context.Context, email *types.InboundEmail) error {
	payload, err := marshalJSONB(email.Payload)
	if err != nil {
		return err
	}
	geoHierarchy, err := marshalJSONB(email.GeoHierarchy)
	if err != nil {
		return err
	}
	linkedEntities, err := marshalJSONB(email.LinkedEntities)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO inbound_emails (id, user_id, trip_id, action, business_key, type_tag, payload, geo_hierarchy, status, linked_entities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = s.db.Exec(ctx, query,
		email.ID,
		email.UserID,
		email.TripID,
		email.Action,
		email.BusinessKey,
		email.TypeTag,
		payload,
		geoHierarchy,
		email.Status,
		linkedEntities,
	)
	return err
}

func (s *InboundStore) UpdateEmail(ctx context.Context, email *types.InboundEmail) error {
	linkedEntities, err := marshalJSONB(email.LinkedEntities)
	if err != nil {
		return err
	}

	query := `
		UPDATE inbound_emails
		SET trip_id = $2, status = $3, linked_entities = $4
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, email.ID, email.TripID, email.Status, linkedEntities)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *InboundStore) GetRecommendation(ctx context.Context, id string) (*types.InboundRecommendation, error) {
	query := `
		SELECT id, user_id, trip_id, ts, source_url, source_title, source_image, analysis, status, linked_entities, received_at
		FROM inbound_recommendations
		WHERE id = $1`

	rec := &types.InboundRecommendation{}
	var analysis, linkedEntities []byte
	err := s.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TripID,
		&rec.Timestamp,
		&rec.SourceURL,
		&rec.SourceTitle,
		&rec.SourceImage,
		&analysis,
		&rec.Status,
		&linkedEntities,
		&rec.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if err := unmarshalJSONB(analysis, &rec.Analysis); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(linkedEntities, &rec.LinkedEntities); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *InboundStore) CreateRecommendation(ctx context.Context, rec *types.InboundRecommendation) error {
	analysis, err := marshalJSONB(rec.Analysis)
	if err != nil {
		return err
	}
	linkedEntities, err := marshalJSONB(rec.LinkedEntities)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO inbound_recommendations (id, user_id, trip_id, ts, source_url, source_title, source_image, analysis, status, linked_entities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = s.db.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.TripID,
		rec.Timestamp,
		rec.SourceURL,
		rec.SourceTitle,
		rec.SourceImage,
		analysis,
		rec.Status,
		linkedEntities,
	)
	return err
}

func (s *InboundStore) UpdateRecommendation(ctx context.Context, rec *types.InboundRecommendation) error {
	linkedEntities, err := marshalJSONB(rec.LinkedEntities)
	if err != nil {
		return err
	}

	query := `
		UPDATE inbound_recommendations
		SET trip_id = $2, status = $3, linked_entities = $4
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, rec.ID, rec.TripID, rec.Status, linkedEntities)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
