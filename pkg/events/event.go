package events

import "time"

const (
	TypeTurnCompleted   = "turn_completed"
	TypeCrisisEscalated = "crisis_escalated"
	TypeSessionReset    = "session_reset"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "turn_completed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TurnCompleted carries routing metadata only. The utterance and the
// response never leave the service through events.
func TurnCompleted(sessionID, userID, intent, handler string, override, degraded bool) BaseEvent {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"intent":     intent,
			"handler":    handler,
			"override":   override,
			"degraded":   degraded,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func CrisisEscalated(sessionID, userID string) BaseEvent {
	return BaseEvent{
		Type: TypeCrisisEscalated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func SessionReset(sessionID, userID string) BaseEvent {
	return BaseEvent{
		Type: TypeSessionReset,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now().UTC(),
	}
}
