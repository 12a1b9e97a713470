package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func uniqueViolation(constraint string) error {
	return fmt.Errorf("insert appointment: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: constraint,
	})
}

func TestTranslateConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"trainer slot", uniqueViolation("appointments_trainer_slot_key"), ErrStaffSlotTaken},
		{"nutritionist slot", uniqueViolation("appointments_nutritionist_slot_key"), ErrStaffSlotTaken},
		{"user day", uniqueViolation("appointments_user_day_key"), ErrUserDayTaken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := translateConstraint(tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !IsConflict(got) {
				t.Fatal("translated error must report as a conflict")
			}
		})
	}
}

func TestTranslateConstraint_PassThrough(t *testing.T) {
	// Unique violations on unknown constraints and non-unique failures must
	// surface untouched so they are treated as faults, not conflicts.
	unknown := uniqueViolation("appointments_pkey")
	if got := translateConstraint(unknown); !errors.Is(got, unknown) || IsConflict(got) {
		t.Fatalf("unknown constraint must pass through, got %v", got)
	}

	fk := fmt.Errorf("insert appointment: %w", &pgconn.PgError{Code: "23503"})
	if got := translateConstraint(fk); !errors.Is(got, fk) {
		t.Fatalf("non-unique failure must pass through, got %v", got)
	}

	plain := errors.New("connection reset")
	if got := translateConstraint(plain); got != plain {
		t.Fatalf("plain error must pass through, got %v", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrNotFound) || !IsNotFound(pgx.ErrNoRows) {
		t.Fatal("sentinel and pgx.ErrNoRows must both count as not found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Fatal("arbitrary errors must not count as not found")
	}
}
