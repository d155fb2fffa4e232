package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"maplemed-support-be/internal/dto"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedService struct {
	resets   int
	messages []string
}

func (s *scriptedService) CreateSession(_ context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{SessionId: "s1", UserId: req.UserId}, nil
}

func (s *scriptedService) ResetSession(context.Context, string) error {
	s.resets++
	return nil
}

func (s *scriptedService) SendMessage(_ context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	s.messages = append(s.messages, req.Message)
	return &dto.SendMessageResponse{Response: "reply to " + req.Message}, nil
}

func (s *scriptedService) GetMood(_ context.Context, userId string) (*dto.MoodSummaryResponse, error) {
	return &dto.MoodSummaryResponse{UserId: userId, Entries: []*dto.MoodEntryResponse{{Category: "mood", Value: "Not set"}}}, nil
}

func (s *scriptedService) SuggestExercises(context.Context, string) (*dto.ExercisesResponse, error) {
	return &dto.ExercisesResponse{Response: "1. Breathe"}, nil
}

func (s *scriptedService) GetResources(context.Context) []*dto.ResourceResponse {
	return nil
}

func TestREPLCommands(t *testing.T) {
	color.NoColor = true
	svc := &scriptedService{}
	in := strings.NewReader("hello\n\n/mood\n/exercises\n/reset\n/quit\nnever sent\n")
	var out bytes.Buffer

	require.NoError(t, runREPL(context.Background(), svc, "u1", in, &out))

	assert.Equal(t, []string{"hello"}, svc.messages)
	assert.Equal(t, 1, svc.resets)
	assert.Contains(t, out.String(), "reply to hello")
	assert.Contains(t, out.String(), "mood:    Not set")
	assert.Contains(t, out.String(), "1. Breathe")
	assert.Contains(t, out.String(), "Session memory cleared.")
}

func TestREPLEndsOnEOF(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer

	assert.NoError(t, runREPL(context.Background(), &scriptedService{}, "u1", strings.NewReader("hi"), &out))
}
