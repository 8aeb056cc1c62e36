package llm

import (
	"errors"
	"fmt"
	"strings"

	"smartcart/internal/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// ErrNoCredential signals that the selected provider has no credential
// configured. Callers treat it as "suggestions disabled", not as a failure.
var ErrNoCredential = errors.New("no credential configured")

// Factory creates LLM clients with consistent logic
type Factory struct {
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiModel      string
	OpenaiAPIKey     string
	OpenaiBaseURL    string
	OpenaiModel      string
	YandexOAuthToken string
	YandexFolderID   string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		GeminiAPIKey:     cfg.GeminiAPIKey,
		GeminiBaseURL:    cfg.GeminiBaseURL,
		GeminiModel:      cfg.GeminiModel,
		OpenaiAPIKey:     cfg.OpenAIAPIKey,
		OpenaiBaseURL:    cfg.OpenAIBaseURL,
		OpenaiModel:      cfg.OpenAIModel,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
}

func (f *Factory) CreateClient(provider string) (Client, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		if f.GeminiAPIKey == "" {
			return nil, ErrNoCredential
		}
		return NewGemini(f.GeminiAPIKey, f.GeminiBaseURL, f.GeminiModel), nil
	case ProviderOpenAI:
		if f.OpenaiAPIKey == "" {
			return nil, ErrNoCredential
		}
		return NewOpenAI(f.OpenaiAPIKey, f.OpenaiBaseURL, f.OpenaiModel), nil
	case ProviderYandex:
		if f.YandexOAuthToken == "" {
			return nil, ErrNoCredential
		}
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
