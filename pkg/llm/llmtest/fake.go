// Package llmtest provides a scripted LLMProvider for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"maplemed-support-be/pkg/llm"
)

// Rule answers any prompt containing Contains. Err, when set, is returned
// instead of Reply.
type Rule struct {
	Contains string
	Reply    string
	Err      error
}

// Provider replies from its rules in order; the first rule whose Contains
// is a substring of the prompt wins. Unmatched prompts get Default.
type Provider struct {
	mu      sync.Mutex
	rules   []Rule
	Default string
	prompts []string
}

var _ llm.LLMProvider = (*Provider)(nil)

func New(rules ...Rule) *Provider {
	return &Provider{rules: rules}
}

// On appends a rule
func (p *Provider) On(contains, reply string) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules = append(p.rules, Rule{Contains: contains, Reply: reply})
	return p
}

// Fail appends a rule that errors
func (p *Provider) Fail(contains string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules = append(p.rules, Rule{Contains: contains, Err: err})
	return p
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var b strings.Builder
	for _, m := range history {
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return p.Generate(ctx, b.String(), options...)
}

func (p *Provider) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	rules := append([]Rule(nil), p.rules...)
	def := p.Default
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range rules {
		if strings.Contains(prompt, r.Contains) {
			if r.Err != nil {
				return "", r.Err
			}
			return r.Reply, nil
		}
	}
	return def, nil
}

// Prompts returns every prompt seen so far
func (p *Provider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

// Calls returns how many completions were requested
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

// Blocking is a provider that waits for the context to end.
type Blocking struct{}

func (Blocking) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (Blocking) Generate(ctx context.Context, _ string, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
