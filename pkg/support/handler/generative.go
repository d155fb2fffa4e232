package handler

import (
	"context"
	"fmt"
	"strings"

	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/support/memory"
	"maplemed-support-be/pkg/support/profile"
	"maplemed-support-be/pkg/support/prompt"
)

// SymptomChecker gives an empathetic assessment of the described symptoms
type SymptomChecker struct {
	llmProvider llm.LLMProvider
}

func NewSymptomChecker(p llm.LLMProvider) *SymptomChecker {
	return &SymptomChecker{llmProvider: p}
}

func (h *SymptomChecker) Handle(ctx context.Context, in Input) (Output, error) {
	reply, err := h.llmProvider.Generate(ctx, prompt.SymptomCheck(in.Utterance))
	if err != nil {
		return Output{}, fmt.Errorf("symptom check: %w", err)
	}
	return Output{Response: strings.TrimSpace(reply)}, nil
}

func (h *SymptomChecker) Scope() Scope { return ScopeNone }

// ExerciseCoach suggests coping exercises tailored to the profile
type ExerciseCoach struct {
	llmProvider llm.LLMProvider
}

func NewExerciseCoach(p llm.LLMProvider) *ExerciseCoach {
	return &ExerciseCoach{llmProvider: p}
}

func (h *ExerciseCoach) Handle(ctx context.Context, in Input) (Output, error) {
	reply, err := h.llmProvider.Generate(ctx, prompt.Exercises(in.Utterance, in.Profile))
	if err != nil {
		return Output{}, fmt.Errorf("suggest exercises: %w", err)
	}
	return Output{Response: strings.TrimSpace(reply)}, nil
}

func (h *ExerciseCoach) Scope() Scope { return ScopeNone }

// Advisor produces personalized advice and replaces last_advice with it
type Advisor struct {
	llmProvider llm.LLMProvider
}

func NewAdvisor(p llm.LLMProvider) *Advisor {
	return &Advisor{llmProvider: p}
}

func (h *Advisor) Handle(ctx context.Context, in Input) (Output, error) {
	p := prompt.Advice(in.Utterance, in.Profile, in.Persistent.Get(memory.KeyLastAdvice, ""))
	reply, err := h.llmProvider.Generate(ctx, p)
	if err != nil {
		return Output{}, fmt.Errorf("provide advice: %w", err)
	}

	message := strings.TrimSpace(reply)
	return Output{
		Response:        message,
		PersistentDelta: memory.Map{memory.KeyLastAdvice: message},
	}, nil
}

func (h *Advisor) Scope() Scope { return ScopePersistent }

// Collector adapts the profile extractor to the handler contract
type Collector struct {
	extractor *profile.Extractor
}

func NewCollector(e *profile.Extractor) *Collector {
	return &Collector{extractor: e}
}

func (h *Collector) Handle(ctx context.Context, in Input) (Output, error) {
	res, err := h.extractor.Collect(ctx, in.Utterance, in.Profile)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Response:     res.Response,
		ProfileDelta: res.ProfileDelta,
		SessionDelta: res.SessionDelta,
	}, nil
}

func (h *Collector) Scope() Scope { return ScopeProfile | ScopeSession }
