package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// BookingEvent is the payload carried by every booking.* topic. The optional
// fields are only present on the topic they belong to.
type BookingEvent struct {
	AppointmentID     string `json:"appointment_id"`
	UserID            string `json:"user_id"`
	UserName          string `json:"user_name"`
	UserEmail         string `json:"user_email"`
	UserPhone         string `json:"user_phone"`
	StaffRole         string `json:"staff_role"`
	StaffID           string `json:"staff_id"`
	StaffName         string `json:"staff_name"`
	SlotStart         string `json:"slot_start"`
	PreviousSlotStart string `json:"previous_slot_start,omitempty"`
	CancelledAt       string `json:"cancelled_at,omitempty"`
}

var errIncompleteEvent = errors.New("booking event missing required fields")

// Decode parses and validates a booking event payload.
func Decode(raw []byte) (BookingEvent, error) {
	var evt BookingEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return BookingEvent{}, err
	}
	if evt.AppointmentID == "" || evt.UserID == "" || evt.SlotStart == "" {
		return BookingEvent{}, errIncompleteEvent
	}
	if _, err := time.Parse(time.RFC3339, evt.SlotStart); err != nil {
		return BookingEvent{}, fmt.Errorf("invalid slot_start: %w", err)
	}
	return evt, nil
}

// Message is a composed notification, ready for the email and sms senders.
type Message struct {
	Subject string
	Body    string
	SMSBody string
}

const slotDisplayFormat = "Monday, 2 January 2006 at 15:04"

// Compose builds the member-facing message for one booking topic.
func Compose(topic string, evt BookingEvent) (Message, error) {
	staff := evt.StaffName
	if staff == "" {
		staff = "your " + evt.StaffRole
	}
	when := displayTime(evt.SlotStart)

	switch topic {
	case "booking.appointment.booked.v1":
		return Message{
			Subject: "Appointment confirmed",
			Body:    fmt.Sprintf("Hi %s,\n\nYour session with %s is confirmed for %s.\n\nSee you at the gym!", firstName(evt.UserName), staff, when),
			SMSBody: fmt.Sprintf("Confirmed: session with %s on %s.", staff, when),
		}, nil
	case "booking.appointment.rescheduled.v1":
		return Message{
			Subject: "Appointment rescheduled",
			Body:    fmt.Sprintf("Hi %s,\n\nYour session with %s has been moved to %s.", firstName(evt.UserName), staff, when),
			SMSBody: fmt.Sprintf("Rescheduled: session with %s now on %s.", staff, when),
		}, nil
	case "booking.appointment.cancelled.v1":
		return Message{
			Subject: "Appointment cancelled",
			Body:    fmt.Sprintf("Hi %s,\n\nYour session with %s on %s has been cancelled.", firstName(evt.UserName), staff, when),
			SMSBody: fmt.Sprintf("Cancelled: session with %s on %s.", staff, when),
		}, nil
	case "booking.reminder.due.v1":
		return Message{
			Subject: "Appointment reminder",
			Body:    fmt.Sprintf("Hi %s,\n\nThis is a reminder of your session with %s on %s.", firstName(evt.UserName), staff, when),
			SMSBody: fmt.Sprintf("Reminder: session with %s on %s.", staff, when),
		}, nil
	}
	return Message{}, fmt.Errorf("unknown topic %q", topic)
}

func displayTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format(slotDisplayFormat)
}

func firstName(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return "there"
	}
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
