package intent

import (
	"context"
	"errors"
	"testing"

	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/llm/llmtest"
	"maplemed-support-be/pkg/support/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		reply string
		want  Intent
	}{
		{"symptom_check", SymptomCheck},
		{"Intent: ADVICE", Advice},
		{"The user wants an exercise.", Exercise},
		{"profile", Profile},
		{"emergency!", Emergency},
		{"I think advice, or maybe profile", Advice},
		{"Exercises would help", Exercise},
		{"no idea", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.reply))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("unknown"))
	assert.True(t, Valid("symptom_check"))
	assert.False(t, Valid("chat"))
}

func TestClassifyWritesPreviousIntent(t *testing.T) {
	fake := llmtest.New(llmtest.Rule{Contains: "I feel anxious lately", Reply: "Symptom_Check"})
	c := NewClassifier(fake, logger.NewNopLogger())

	res, err := c.Classify(context.Background(), "I feel anxious lately", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, SymptomCheck, res.Intent)
	assert.Equal(t, "symptom_check", res.SessionDelta[memory.KeyPreviousIntent])
}

func TestClassifyEmbedsPriorContext(t *testing.T) {
	fake := llmtest.New()
	fake.Default = "nothing useful"
	c := NewClassifier(fake, logger.NewNopLogger())

	session := memory.Map{memory.KeyPreviousIntent: "advice"}
	persistent := memory.Map{memory.KeyLastAdvice: "take short walks"}

	res, err := c.Classify(context.Background(), "hmm", session, persistent)
	require.NoError(t, err)
	assert.Equal(t, Unknown, res.Intent)
	assert.Equal(t, "unknown", res.SessionDelta[memory.KeyPreviousIntent])

	prompts := fake.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Previous intent: advice")
	assert.Contains(t, prompts[0], "Long-term context: take short walks")
	// inputs are read, never written
	assert.Equal(t, "advice", session[memory.KeyPreviousIntent])
}

func TestClassifyFailureFailsOpen(t *testing.T) {
	fake := llmtest.New().Fail("", llm.ErrUnavailable)
	c := NewClassifier(fake, logger.NewNopLogger())

	res, err := c.Classify(context.Background(), "hello", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
	assert.Equal(t, Unknown, res.Intent)
	assert.Equal(t, "unknown", res.SessionDelta[memory.KeyPreviousIntent])
}

func TestClassifyEmptyReplyIsUnknownNotFailure(t *testing.T) {
	for _, reply := range []string{"", "  \n\t"} {
		fake := llmtest.New(llmtest.Rule{Contains: "", Reply: reply})
		c := NewClassifier(llm.NewGuard(fake, 0), logger.NewNopLogger())

		res, err := c.Classify(context.Background(), "hello", nil, nil)
		require.NoError(t, err, "reply %q", reply)
		assert.Equal(t, Unknown, res.Intent)
		assert.Equal(t, "unknown", res.SessionDelta[memory.KeyPreviousIntent])
	}
}

func TestClassifyEmptyReplyWithoutGuardIsUnknown(t *testing.T) {
	c := NewClassifier(llmtest.New(llmtest.Rule{Contains: "", Reply: ""}), logger.NewNopLogger())

	res, err := c.Classify(context.Background(), "hello", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Unknown, res.Intent)
}
