// Package profile folds explicit `key: value` signals from a completion
// into the persistent profile, or keeps the completion as a pending
// clarifying question.
package profile

import (
	"context"
	"fmt"
	"strings"

	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/support/memory"
	"maplemed-support-be/pkg/support/prompt"
)

const (
	factSeparator = ": "
	notSet        = "Not set"
)

var categoryMarkers = []string{"mood:", "stress:", "sleep:", "feeling:"}

// Result is the extractor's output. Exactly one of ProfileDelta and
// SessionDelta is non-empty, unless a structured reply had no parsable line.
type Result struct {
	Response     string
	ProfileDelta memory.Map
	SessionDelta memory.Map
}

type Extractor struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewExtractor(llmProvider llm.LLMProvider, logger logger.ILogger) *Extractor {
	return &Extractor{llmProvider: llmProvider, logger: logger}
}

// Collect runs one extraction round for utterance against the current profile.
func (e *Extractor) Collect(ctx context.Context, utterance string, current memory.Map) (Result, error) {
	reply, err := e.llmProvider.Generate(ctx, prompt.ProfileExtraction(utterance, current))
	if err != nil {
		return Result{}, fmt.Errorf("collect profile: %w", err)
	}

	message := strings.TrimSpace(reply)
	res := Parse(message)

	e.logger.Debug("ProfileExtractor", "Extraction parsed", map[string]interface{}{
		"facts":          len(res.ProfileDelta),
		"asked_question": len(res.SessionDelta) > 0,
	})
	return res, nil
}

// Parse applies the two-mode rule to a trimmed reply. If any category
// marker appears anywhere (case-insensitive), every line holding ": " is a
// fact; otherwise the whole reply becomes last_question verbatim.
func Parse(message string) Result {
	res := Result{
		Response:     message,
		ProfileDelta: memory.Map{},
		SessionDelta: memory.Map{},
	}

	if !hasCategoryMarker(message) {
		res.SessionDelta[memory.KeyLastQuestion] = message
		return res
	}

	// "\r\n" is a line break too; the CR never belongs to a value
	for _, line := range strings.Split(message, "\n") {
		key, value, ok := strings.Cut(strings.TrimSuffix(line, "\r"), factSeparator)
		if !ok {
			continue
		}
		res.ProfileDelta[strings.ToLower(key)] = value
	}
	return res
}

func hasCategoryMarker(message string) bool {
	lower := strings.ToLower(message)
	for _, m := range categoryMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Entry is one row of the mood summary
type Entry struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Set      bool   `json:"set"`
}

// Summarize reports the four tracked categories in display order,
// substituting "Not set" for missing ones.
func Summarize(p memory.Map) []Entry {
	out := make([]Entry, 0, len(memory.Categories))
	for _, c := range memory.Categories {
		v, ok := p[c]
		if !ok {
			v = notSet
		}
		out = append(out, Entry{Category: c, Value: v, Set: ok})
	}
	return out
}
