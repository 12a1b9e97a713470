package outbox

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType (production-style: event per topic).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Topics emitted by the booking service.
const (
	TopicBooked      = "booking.appointment.booked.v1"
	TopicRescheduled = "booking.appointment.rescheduled.v1"
	TopicCancelled   = "booking.appointment.cancelled.v1"
	TopicReminderDue = "booking.reminder.due.v1"
)
