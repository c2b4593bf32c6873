package postgres

import (
	"context"
	"errors"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/jackc/pgx/v5"
)

// UserStore implements store.UserStore.
type UserStore struct {
	db DB
}

// NewUserStore creates a UserStore backed by the given connection.
func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// ResolveWebhookToken maps an opaque webhook token to its owning user.
func (s *UserStore) ResolveWebhookToken(ctx context.Context, token string) (string, error) {
	query := `
		SELECT id
		FROM users
		WHERE webhook_token = $1`

	var userID string
	err := s.db.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return userID, nil
}
