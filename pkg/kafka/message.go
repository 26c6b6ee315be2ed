package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the transport-neutral envelope used by the producer and
// consumer. Headers carry event metadata so consumers can route and dedupe
// without decoding the payload.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderRetryCount    = "retry-count"
	HeaderOriginalTopic = "original-topic"
)

// MessageHandler processes one message. A nil return commits the offset; an
// error triggers retry and eventually the DLQ.
type MessageHandler func(ctx context.Context, msg Message) error

// NewEventMessage builds a message for a domain event: JSON payload, routing
// key, and the standard headers with a fresh event ID.
func NewEventMessage(key, eventType, source string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now().UTC()
	return Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: eventType,
			HeaderSource:    source,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
	}, nil
}

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) GetHeader(key string) (string, bool) {
	value, exists := m.Headers[key]
	return value, exists
}

func (m *Message) EventID() string {
	return m.Headers[HeaderEventID]
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}
