package storage

import (
	"context"

	"github.com/gymslot/gymslot/libs/db"
)

type Notification struct {
	AppointmentID string
	UserID        string
	EventType     string
	Channel       string
	Recipient     string
	Body          string
	Status        string
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, n Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (appointment_id, user_id, event_type, channel, recipient, body, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.AppointmentID, n.UserID, n.EventType, n.Channel, n.Recipient, n.Body, n.Status)
	return err
}
