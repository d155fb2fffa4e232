package prompt

import (
	"testing"

	"maplemed-support-be/pkg/support/memory"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	assert.Equal(t, "none", Render(nil))
	assert.Equal(t, "{mood: low, sleep: poor}", Render(memory.Map{"sleep": "poor", "mood": "low"}))
}

func TestClassificationEmbedsContext(t *testing.T) {
	p := Classification("I can't sleep", "", "try journaling", []string{"profile", "advice"})

	assert.Contains(t, p, "'profile', 'advice', or 'unknown'")
	assert.Contains(t, p, "User input: I can't sleep\n")
	assert.Contains(t, p, "Previous intent: none\n")
	assert.Contains(t, p, "Long-term context: try journaling\n")
}

func TestAdviceDefaultsPreviousAdvice(t *testing.T) {
	p := Advice("help", nil, "")
	assert.Contains(t, p, "Previous advice: none.")
	assert.Contains(t, p, "User profile: none.")
}

func TestExercisesOmitsEmptyUtterance(t *testing.T) {
	p := Exercises("", memory.Map{"mood": "tense"})
	assert.Contains(t, p, "User profile: {mood: tense}.")
	assert.NotContains(t, p, "The user says")
}
