package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gymslot/gymslot/libs/db"
	"github.com/gymslot/gymslot/services/booking-service/internal/model"
)

// Provider is the narrow view of the staff and member directories that the
// booking operations need. Lookups see non-deleted rows only.
type Provider interface {
	StaffExists(ctx context.Context, role model.StaffRole, id string) (bool, error)
	StaffName(ctx context.Context, role model.StaffRole, id string) (string, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

// PGProvider reads the directory tables that live alongside the appointments
// table. Deployments that split the directory into its own service swap in the
// gRPC provider (protogen builds).
type PGProvider struct {
	pool *db.Pool
}

func NewPGProvider(pool *db.Pool) *PGProvider {
	return &PGProvider{pool: pool}
}

func (p *PGProvider) StaffExists(ctx context.Context, role model.StaffRole, id string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM staff
			WHERE id = $1 AND role = $2 AND NOT is_deleted
		)
	`, id, string(role)).Scan(&exists)
	return exists, err
}

func (p *PGProvider) StaffName(ctx context.Context, role model.StaffRole, id string) (string, error) {
	var name string
	err := p.pool.QueryRow(ctx, `
		SELECT full_name FROM staff
		WHERE id = $1 AND role = $2 AND NOT is_deleted
	`, id, string(role)).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return name, err
}

func (p *PGProvider) UserExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE id = $1 AND role = 'member' AND NOT is_deleted
		)
	`, id).Scan(&exists)
	return exists, err
}
