package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Guard wraps a provider with a per-call deadline and normalizes every
// failure to ErrUnavailable so upstream stages never see partial text.
type Guard struct {
	next    LLMProvider
	timeout time.Duration
}

var _ LLMProvider = (*Guard)(nil)

// NewGuard returns next unchanged in behavior except for the deadline and
// error mapping. A zero timeout leaves the caller's context as is.
func NewGuard(next LLMProvider, timeout time.Duration) *Guard {
	return &Guard{next: next, timeout: timeout}
}

func (g *Guard) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return g.call(ctx, func(ctx context.Context) (string, error) {
		return g.next.Chat(ctx, history, options...)
	})
}

func (g *Guard) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return g.call(ctx, func(ctx context.Context) (string, error) {
		return g.next.Generate(ctx, prompt, options...)
	})
}

func (g *Guard) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := fn(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// A reply that arrives after the deadline may be truncated
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, ctxErr)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, ErrEmptyCompletion)
	}
	return out, nil
}
