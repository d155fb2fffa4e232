package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardPassesThroughReply(t *testing.T) {
	fake := llmtest.New(llmtest.Rule{Contains: "hello", Reply: "hi there"})
	g := llm.NewGuard(fake, time.Second)

	out, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestGuardTimeoutIsUnavailable(t *testing.T) {
	g := llm.NewGuard(llmtest.Blocking{}, 20*time.Millisecond)

	_, err := g.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}

func TestGuardWrapsProviderError(t *testing.T) {
	fake := llmtest.New().Fail("x", errors.New("rate limited"))
	g := llm.NewGuard(fake, 0)

	_, err := g.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGuardRejectsEmptyReply(t *testing.T) {
	fake := llmtest.New(llmtest.Rule{Contains: "x", Reply: "   \n"})
	g := llm.NewGuard(fake, 0)

	_, err := g.Generate(context.Background(), "x")
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
	assert.True(t, errors.Is(err, llm.ErrEmptyCompletion))
}

func TestGuardTransportErrorIsNotEmptyCompletion(t *testing.T) {
	g := llm.NewGuard(llmtest.New().Fail("", errors.New("connection refused")), 0)

	_, err := g.Generate(context.Background(), "x")
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
	assert.False(t, errors.Is(err, llm.ErrEmptyCompletion))
}

func TestGuardCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := llm.NewGuard(llmtest.New(llmtest.Rule{Contains: "", Reply: "ok"}), time.Second)
	_, err := g.Chat(ctx, []llm.Message{{Role: "user", Content: "hey"}})
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}

func TestApplyOptions(t *testing.T) {
	opts := llm.ApplyOptions(llm.Options{Temperature: 0.7, Model: "base"},
		llm.WithTemperature(0), llm.WithMaxTokens(64), llm.WithModel("other"))

	assert.Equal(t, 0.0, opts.Temperature)
	assert.Equal(t, 64, opts.MaxTokens)
	assert.Equal(t, "other", opts.Model)
}
