package postgres

import (
	"context"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
)

// ContactStore implements store.ContactStore.
type ContactStore struct {
	db DB
}

// NewContactStore creates a ContactStore backed by the given connection.
func NewContactStore(db DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) CreateContact(ctx context.Context, contact *types.Contact) error {
	sourceRefs, err := marshalJSONB(contact.SourceRefs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contacts (id, trip_id, name, phone, email, notes, source_refs)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.db.Exec(ctx, query,
		contact.ID,
		contact.TripID,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Notes,
		sourceRefs,
	)
	return err
}

func (s *ContactStore) UpdateContact(ctx context.Context, contact *types.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, phone = $3, email = $4, notes = $5, updated_at = NOW()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query,
		contact.ID,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ContactStore) ListContactsByTrip(ctx context.Context, tripID string) ([]*types.Contact, error) {
	query := `
		SELECT id, trip_id, name, phone, email, notes, source_refs, created_at, updated_at
		FROM contacts
		WHERE trip_id = $1
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*types.Contact
	for rows.Next() {
		contact := &types.Contact{}
		var sourceRefs []byte
		err := rows.Scan(
			&contact.ID,
			&contact.TripID,
			&contact.Name,
			&contact.Phone,
			&contact.Email,
			&contact.Notes,
			&sourceRefs,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := unmarshalJSONB(sourceRefs, &contact.SourceRefs); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (s *ContactStore) AppendContactSourceRef(ctx context.Context, id string, field store.RefField, refID string) error {
	query := `
		UPDATE contacts
		SET source_refs = jsonb_set(
				source_refs,
				ARRAY[$2::text],
				COALESCE(source_refs->$2, '[]'::jsonb) || to_jsonb($3::text),
				true),
			updated_at = NOW()
		WHERE id = $1
		  AND NOT COALESCE(source_refs->$2, '[]'::jsonb) @> to_jsonb($3::text)`

	_, err := s.db.Exec(ctx, query, id, string(field), refID)
	return err
}
