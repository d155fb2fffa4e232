package dto

import "time"

type CreateSessionRequest struct {
	UserId string `json:"user_id" validate:"required,max=128"`
}

type CreateSessionResponse struct {
	SessionId string    `json:"session_id"`
	UserId    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
	UserId    string `json:"user_id" validate:"required,max=128"`
	Message   string `json:"message" validate:"required,max=4000"`
}

type SendMessageResponse struct {
	SessionId string `json:"session_id"`
	Response  string `json:"response"`
	Intent    string `json:"intent"`
	Handler   string `json:"handler"`
	Override  bool   `json:"override"`
	Degraded  bool   `json:"degraded"`
}

type MoodEntryResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Set      bool   `json:"set"`
}

type MoodSummaryResponse struct {
	UserId  string               `json:"user_id"`
	Entries []*MoodEntryResponse `json:"entries"`
}

type ExercisesResponse struct {
	Response string `json:"response"`
	Degraded bool   `json:"degraded"`
}

type ResourceResponse struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Contact string `json:"contact,omitempty"`
}

// SupportEventMessage is the watermill payload for in-process support events
type SupportEventMessage struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}
