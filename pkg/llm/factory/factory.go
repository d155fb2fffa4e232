package factory

import (
	"fmt"

	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/llm/groq"
	"maplemed-support-be/pkg/llm/ollama"
)

// ProviderConfig selects and parameterizes a completion backend
type ProviderConfig struct {
	Provider      string // "ollama" | "groq"
	Model         string
	OllamaBaseURL string
	GroqBaseURL   string
	GroqAPIKey    string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("groq provider requires GROQ_API_KEY")
		}
		return groq.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
