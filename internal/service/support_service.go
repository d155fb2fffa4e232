package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"maplemed-support-be/internal/constant"
	"maplemed-support-be/internal/dto"
	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/internal/repository/contract"
	"maplemed-support-be/internal/repository/memory"
	"maplemed-support-be/pkg/events"
	"maplemed-support-be/pkg/store"
	supportmemory "maplemed-support-be/pkg/support/memory"
	"maplemed-support-be/pkg/support/orchestrator"
	"maplemed-support-be/pkg/support/profile"
	"maplemed-support-be/pkg/support/router"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrSessionUserMismatch = errors.New("session belongs to a different user")
)

type ISupportService interface {
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	ResetSession(ctx context.Context, sessionId string) error
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetMood(ctx context.Context, userId string) (*dto.MoodSummaryResponse, error)
	SuggestExercises(ctx context.Context, userId string) (*dto.ExercisesResponse, error)
	GetResources(ctx context.Context) []*dto.ResourceResponse
}

type supportService struct {
	orchestrator *orchestrator.Orchestrator
	sessionRepo  *memory.SessionRepository
	profileRepo  contract.ProfileRepository
	publisher    IPublisherService
	logger       logger.ILogger

	// turns within a session never overlap
	sessionLocks *keyedMutex
	// profile read-modify-write is serialized across a user's sessions
	userLocks *keyedMutex
}

func NewSupportService(
	orch *orchestrator.Orchestrator,
	sessionRepo *memory.SessionRepository,
	profileRepo contract.ProfileRepository,
	publisher IPublisherService,
	log logger.ILogger,
) ISupportService {
	return &supportService{
		orchestrator: orch,
		sessionRepo:  sessionRepo,
		profileRepo:  profileRepo,
		publisher:    publisher,
		logger:       log,
		sessionLocks: newKeyedMutex(),
		userLocks:    newKeyedMutex(),
	}
}

func (s *supportService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	now := time.Now().UTC()
	session := &store.Session{
		ID:        uuid.NewString(),
		UserID:    request.UserId,
		Memory:    supportmemory.Map{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessionRepo.Save(session)

	s.logger.Info("SupportService", "Session created", map[string]interface{}{
		"session_id": session.ID,
		"user_id":    session.UserID,
	})

	return &dto.CreateSessionResponse{
		SessionId: session.ID,
		UserId:    session.UserID,
		CreatedAt: session.CreatedAt,
	}, nil
}

// ResetSession clears session memory but keeps the session id usable.
func (s *supportService) ResetSession(ctx context.Context, sessionId string) error {
	if _, ok := s.sessionRepo.Get(sessionId); !ok {
		return ErrSessionNotFound
	}

	unlock := s.sessionLocks.Lock(sessionId)
	defer unlock()

	// may have expired while waiting
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return ErrSessionNotFound
	}

	session.Memory = supportmemory.Map{}
	session.LastOverride = false
	session.Turns = 0
	session.UpdatedAt = time.Now().UTC()
	s.sessionRepo.Save(session)

	s.publish(ctx, events.SessionReset(session.ID, session.UserID))
	return nil
}

func (s *supportService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if _, ok := s.sessionRepo.Get(request.SessionId); !ok {
		return nil, ErrSessionNotFound
	}

	// always session first, then user
	unlockSession := s.sessionLocks.Lock(request.SessionId)
	defer unlockSession()

	session, ok := s.sessionRepo.Get(request.SessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.UserID != request.UserId {
		return nil, ErrSessionUserMismatch
	}

	unlockUser := s.userLocks.Lock(request.UserId)
	defer unlockUser()

	userProfile, err := s.loadProfile(ctx, request.UserId)
	if err != nil {
		return nil, err
	}

	res := s.orchestrator.Invoke(ctx, orchestrator.Request{
		Utterance:     request.Message,
		Profile:       userProfile.Values,
		Session:       session.Memory,
		Persistent:    userProfile.Persistent,
		PriorOverride: session.LastOverride,
	})

	session.Memory = res.Session
	session.LastOverride = res.Override
	session.Turns++
	session.UpdatedAt = time.Now().UTC()
	s.sessionRepo.Save(session)

	if !maps.Equal(userProfile.Values, res.Profile) || !maps.Equal(userProfile.Persistent, res.Persistent) {
		userProfile.Values = res.Profile
		userProfile.Persistent = res.Persistent
		userProfile.UpdatedAt = time.Now().UTC()
		if err := s.profileRepo.Save(ctx, userProfile); err != nil {
			// the reply still goes out; the profile change is lost
			s.logger.Error("SupportService", "Failed to save profile", map[string]interface{}{
				"user_id": request.UserId,
				"error":   err.Error(),
			})
		}
	}

	s.publish(ctx, events.TurnCompleted(session.ID, session.UserID, string(res.Intent), string(res.Handler), res.Override, res.Degraded))
	if res.Handler == router.EmergencyEscalation {
		s.publish(ctx, events.CrisisEscalated(session.ID, session.UserID))
	}

	return &dto.SendMessageResponse{
		SessionId: session.ID,
		Response:  res.Response,
		Intent:    string(res.Intent),
		Handler:   string(res.Handler),
		Override:  res.Override,
		Degraded:  res.Degraded,
	}, nil
}

func (s *supportService) GetMood(ctx context.Context, userId string) (*dto.MoodSummaryResponse, error) {
	userProfile, err := s.loadProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	entries := profile.Summarize(userProfile.Values)
	res := &dto.MoodSummaryResponse{
		UserId:  userId,
		Entries: make([]*dto.MoodEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, &dto.MoodEntryResponse{
			Category: e.Category,
			Value:    e.Value,
			Set:      e.Set,
		})
	}
	return res, nil
}

func (s *supportService) SuggestExercises(ctx context.Context, userId string) (*dto.ExercisesResponse, error) {
	userProfile, err := s.loadProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	text, degraded := s.orchestrator.SuggestExercises(ctx, userProfile.Values)
	return &dto.ExercisesResponse{Response: text, Degraded: degraded}, nil
}

func (s *supportService) GetResources(ctx context.Context) []*dto.ResourceResponse {
	res := make([]*dto.ResourceResponse, 0, len(constant.CanadianResources))
	for _, r := range constant.CanadianResources {
		res = append(res, &dto.ResourceResponse{
			Name:    r.Name,
			URL:     r.URL,
			Contact: r.Contact,
		})
	}
	return res
}

func (s *supportService) loadProfile(ctx context.Context, userId string) (*store.Profile, error) {
	p, err := s.profileRepo.FindByUserID(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return store.NewProfile(userId), nil
	}
	return p, nil
}

func (s *supportService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SupportService", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
