package telemetry

import (
	"context"
	"log"
	"time"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// Notifier emits user-visible notification events (connection requested,
// accepted, rejected, message received) for downstream consumers. It is
// best-effort: publish failures are logged, never surfaced to the caller.
type Notifier struct {
	publisher   Publisher
	service     string
	environment string
}

type Envelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventType     string `json:"event_type"`
	EventName     string `json:"event_name"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	UserID        string `json:"user_id,omitempty"`
	Payload       any    `json:"payload,omitempty"`
}

func NewNotifier(publisher Publisher, service, environment string) *Notifier {
	return &Notifier{
		publisher:   publisher,
		service:     service,
		environment: environment,
	}
}

// Notify publishes an event addressed to userID. Safe on a nil Notifier.
func (n *Notifier) Notify(ctx context.Context, event string, userID string, payload any) {
	if n == nil || n.publisher == nil {
		return
	}

	envelope := Envelope{
		SchemaVersion: 1,
		EventType:     "notification",
		EventName:     event,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       n.service,
		Environment:   n.environment,
		UserID:        userID,
		Payload:       payload,
	}

	if err := n.publisher.Publish(ctx, "notifications."+event, envelope); err != nil {
		log.Printf("notify publish failed: %v", err)
	}
}
