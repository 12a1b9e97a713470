package outbox

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Topics emitted by the notification service.
const (
	TopicSent   = "notification.sent.v1"
	TopicFailed = "notification.failed.v1"
)
