package notify

import (
	"strings"
	"testing"
)

func sampleEvent() BookingEvent {
	return BookingEvent{
		AppointmentID: "appt-1",
		UserID:        "u1",
		UserName:      "Jordan Blake",
		UserEmail:     "jordan@example.com",
		StaffRole:     "trainer",
		StaffID:       "t1",
		StaffName:     "Taylor Reed",
		SlotStart:     "2026-09-15T10:00:00Z",
	}
}

func TestDecode(t *testing.T) {
	raw := []byte(`{"appointment_id":"appt-1","user_id":"u1","user_name":"Jordan Blake","staff_role":"trainer","staff_id":"t1","slot_start":"2026-09-15T10:00:00Z"}`)
	evt, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if evt.AppointmentID != "appt-1" || evt.StaffRole != "trainer" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"appointment_id":`},
		{"missing appointment id", `{"user_id":"u1","slot_start":"2026-09-15T10:00:00Z"}`},
		{"bad slot start", `{"appointment_id":"a","user_id":"u1","slot_start":"tomorrow"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCompose(t *testing.T) {
	evt := sampleEvent()

	tests := []struct {
		topic   string
		subject string
		needle  string
	}{
		{"booking.appointment.booked.v1", "Appointment confirmed", "confirmed for"},
		{"booking.appointment.rescheduled.v1", "Appointment rescheduled", "moved to"},
		{"booking.appointment.cancelled.v1", "Appointment cancelled", "cancelled"},
		{"booking.reminder.due.v1", "Appointment reminder", "reminder"},
	}
	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			msg, err := Compose(tc.topic, evt)
			if err != nil {
				t.Fatalf("Compose failed: %v", err)
			}
			if msg.Subject != tc.subject {
				t.Fatalf("expected subject %q, got %q", tc.subject, msg.Subject)
			}
			if !strings.Contains(msg.Body, tc.needle) {
				t.Fatalf("body %q missing %q", msg.Body, tc.needle)
			}
			if !strings.Contains(msg.Body, "Hi Jordan") {
				t.Fatalf("body %q missing greeting", msg.Body)
			}
			if !strings.Contains(msg.Body, "Taylor Reed") || !strings.Contains(msg.SMSBody, "Taylor Reed") {
				t.Fatal("staff name missing from message")
			}
			if !strings.Contains(msg.Body, "Tuesday, 15 September 2026 at 10:00") {
				t.Fatalf("body %q missing formatted slot time", msg.Body)
			}
		})
	}
}

func TestCompose_Fallbacks(t *testing.T) {
	evt := sampleEvent()
	evt.UserName = ""
	evt.StaffName = ""

	msg, err := Compose("booking.reminder.due.v1", evt)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !strings.Contains(msg.Body, "Hi there") {
		t.Fatalf("expected neutral greeting, got %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "your trainer") {
		t.Fatalf("expected role fallback, got %q", msg.Body)
	}
}

func TestCompose_UnknownTopic(t *testing.T) {
	if _, err := Compose("billing.invoice.paid.v1", sampleEvent()); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}
