package store

import (
	"time"

	"maplemed-support-be/pkg/support/memory"
)

// Session is the caller-side record of one conversation. Its Memory is
// handed to the orchestrator each turn and replaced with what comes back.
type Session struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	Memory memory.Map `json:"memory"`

	// Override flag of the most recent turn
	LastOverride bool      `json:"last_override"`
	Turns        int       `json:"turns"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is what survives across sessions for one user
type Profile struct {
	UserID     string     `json:"user_id"`
	Values     memory.Map `json:"values"`     // mood, stress, sleep, feeling, ...
	Persistent memory.Map `json:"persistent"` // last_advice
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewProfile returns an empty profile for userID
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:     userID,
		Values:     memory.Map{},
		Persistent: memory.Map{},
	}
}
