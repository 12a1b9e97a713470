package storage

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinels returned by the appointment store. The two conflict values are the
// storage-level truth behind the advisory availability checks: a write that
// loses a race surfaces as exactly one of them.
var (
	ErrNotFound       = errors.New("appointment not found")
	ErrUserDayTaken   = errors.New("user already has an appointment that day")
	ErrStaffSlotTaken = errors.New("staff member already booked in that slot")
)

// Partial unique index names from the appointments migration. Postgres reports
// the violated constraint by name, which is how a lost race is attributed to
// the right conflict kind.
const (
	constraintTrainerSlot      = "appointments_trainer_slot_key"
	constraintNutritionistSlot = "appointments_nutritionist_slot_key"
	constraintUserDay          = "appointments_user_day_key"
)

// translateConstraint maps a Postgres unique violation onto the matching
// conflict sentinel. Other errors pass through unchanged.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintTrainerSlot, constraintNutritionistSlot:
		return ErrStaffSlotTaken
	case constraintUserDay:
		return ErrUserDayTaken
	}
	return err
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrUserDayTaken) || errors.Is(err, ErrStaffSlotTaken)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
