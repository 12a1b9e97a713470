package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestExcludeParam(t *testing.T) {
	if got := excludeParam(""); got != nil {
		t.Fatalf("no exclusion must map to nil, got %q", *got)
	}
	id := uuid.NewString()
	got := excludeParam(id)
	if got == nil || *got != id {
		t.Fatalf("exclusion id must pass through, got %v", got)
	}
}

func TestExcludeParam_EncodesNullForUUID(t *testing.T) {
	m := pgtype.NewMap()

	// The create paths carry no exclusion; the parameter must reach the
	// server as NULL because uuid_in rejects an empty string.
	buf, err := m.Encode(pgtype.UUIDOID, pgtype.TextFormatCode, excludeParam(""), nil)
	if err != nil {
		t.Fatalf("encoding nil exclusion: %v", err)
	}
	if buf != nil {
		t.Fatalf("expected NULL encoding, got %q", buf)
	}

	id := uuid.NewString()
	buf, err = m.Encode(pgtype.UUIDOID, pgtype.TextFormatCode, excludeParam(id), nil)
	if err != nil {
		t.Fatalf("encoding exclusion id: %v", err)
	}
	if string(buf) != id {
		t.Fatalf("expected %q, got %q", id, buf)
	}
}

func TestReminderAt(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := func(lead time.Duration) *AppointmentRepository {
		return NewAppointmentRepository(nil, nil, nil, lead, func() time.Time { return now })
	}

	remindAt, ok := repo(24*time.Hour).reminderAt(time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected a reminder for a slot beyond the lead window")
	}
	if want := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC); !remindAt.Equal(want) {
		t.Fatalf("expected reminder at %s, got %s", want, remindAt)
	}

	if _, ok := repo(24*time.Hour).reminderAt(time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)); ok {
		t.Fatal("reminder inside the lead window must be skipped")
	}
	if _, ok := repo(0).reminderAt(time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)); ok {
		t.Fatal("zero lead disables reminders")
	}
}
