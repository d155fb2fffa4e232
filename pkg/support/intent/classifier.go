package intent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/support/memory"
	"maplemed-support-be/pkg/support/prompt"
)

// Intent is the closed set of labels the classifier can produce
type Intent string

const (
	Profile      Intent = "profile"
	SymptomCheck Intent = "symptom_check"
	Exercise     Intent = "exercise"
	Advice       Intent = "advice"
	Emergency    Intent = "emergency"
	Unknown      Intent = "unknown"
)

// Labels are the tokens searched for in a reply; Unknown is never matched
var Labels = []Intent{Profile, SymptomCheck, Exercise, Advice, Emergency}

var labelPattern = regexp.MustCompile(`(profile|symptom_check|exercise|advice|emergency)`)

// Parse returns the first known label found in reply, or Unknown.
func Parse(reply string) Intent {
	m := labelPattern.FindStringSubmatch(strings.ToLower(reply))
	if m == nil {
		return Unknown
	}
	return Intent(m[1])
}

// Valid reports whether s names one of the closed-set labels, Unknown included
func Valid(s string) bool {
	switch Intent(s) {
	case Profile, SymptomCheck, Exercise, Advice, Emergency, Unknown:
		return true
	}
	return false
}

// Result is the classifier's output for one turn
type Result struct {
	Intent Intent
	// SessionDelta always carries previous_intent
	SessionDelta memory.Map
}

// Classifier maps an utterance to an Intent with one completion call
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, logger logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify reads previous_intent from session and last_advice from
// persistent. On completion failure it returns Unknown together with the
// error; the session delta is populated either way.
func (c *Classifier) Classify(ctx context.Context, utterance string, session, persistent memory.Map) (Result, error) {
	labels := make([]string, len(Labels))
	for i, l := range Labels {
		labels[i] = string(l)
	}

	p := prompt.Classification(
		utterance,
		session.Get(memory.KeyPreviousIntent, ""),
		persistent.Get(memory.KeyLastAdvice, ""),
		labels,
	)

	reply, err := c.llmProvider.Generate(ctx, p, llm.WithTemperature(0.0))
	// the model answered but named no label
	if errors.Is(err, llm.ErrEmptyCompletion) {
		c.logger.Debug("IntentClassifier", "Empty classification reply", nil)
		return newResult(Unknown), nil
	}
	if err != nil {
		c.logger.Warn("IntentClassifier", "Classification failed, failing open to unknown", map[string]interface{}{
			"error": err.Error(),
		})
		return newResult(Unknown), fmt.Errorf("classify intent: %w", err)
	}

	got := Parse(strings.TrimSpace(reply))
	if got == Unknown {
		c.logger.Debug("IntentClassifier", "No intent label in reply", nil)
	}
	return newResult(got), nil
}

func newResult(i Intent) Result {
	return Result{
		Intent:       i,
		SessionDelta: memory.Map{memory.KeyPreviousIntent: string(i)},
	}
}
