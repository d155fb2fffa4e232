// Package prompt builds every completion prompt used by the support pipeline.
package prompt

import (
	"fmt"
	"strings"

	"maplemed-support-be/pkg/support/memory"
)

const none = "none"

// Classification asks the model for exactly one intent label.
func Classification(utterance, previousIntent, lastAdvice string, labels []string) string {
	var b strings.Builder
	b.WriteString("Classify user's intent into one of: ")
	for i, l := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s'", l)
	}
	b.WriteString(", or 'unknown'.\n")
	fmt.Fprintf(&b, "User input: %s\n", utterance)
	fmt.Fprintf(&b, "Previous intent: %s\n", orNone(previousIntent))
	fmt.Fprintf(&b, "Long-term context: %s\n", orNone(lastAdvice))
	b.WriteString("Intent:")
	return b.String()
}

// ProfileExtraction asks for `key: value` facts or one gentle question.
func ProfileExtraction(utterance string, profile memory.Map) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract mental health profile info (mood, stress, sleep quality, feelings) from the user input: '%s'. ", utterance)
	fmt.Fprintf(&b, "Current profile: %s. ", Render(profile))
	b.WriteString("Report each fact on its own line as 'mood: ...', 'stress: ...', 'sleep: ...' or 'feeling: ...'. ")
	b.WriteString("If info is missing, ask a gentle question to gather it (e.g., 'How have you been sleeping lately?'). ")
	b.WriteString("Respond empathetically and clearly.")
	return b.String()
}

// SymptomCheck asks for an empathetic symptom assessment.
func SymptomCheck(utterance string) string {
	return fmt.Sprintf("The user says: '%s'. "+
		"Provide an empathetic assessment of possible mental health symptoms and recommend helpful next steps or resources. "+
		"Include info about common symptoms related to mood, anxiety, or stress.", utterance)
}

// Exercises asks for a few coping strategies tailored to the profile.
func Exercises(utterance string, profile memory.Map) string {
	var b strings.Builder
	b.WriteString("Suggest 2-3 simple mental health exercises or coping strategies such as breathing exercises, mindfulness, or grounding techniques. ")
	b.WriteString("Tailor suggestions to user's current mood and feelings. ")
	fmt.Fprintf(&b, "User profile: %s. ", Render(profile))
	if utterance != "" {
		fmt.Fprintf(&b, "The user says: '%s'.", utterance)
	}
	return strings.TrimSpace(b.String())
}

// Advice asks for personalized advice given the profile and the last advice.
func Advice(utterance string, profile memory.Map, lastAdvice string) string {
	return fmt.Sprintf("Provide personalized mental health advice based on the input: '%s'. "+
		"User profile: %s. "+
		"Previous advice: %s. "+
		"Use clear, empathetic, supportive language.", utterance, Render(profile), orNone(lastAdvice))
}

// Render formats a map as `{k: v, ...}` with sorted keys, or `none` when empty.
func Render(m memory.Map) string {
	if len(m) == 0 {
		return none
	}
	parts := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		parts = append(parts, k+": "+m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return none
	}
	return s
}
