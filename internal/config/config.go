package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN"`
	AllowedUsers     []int64 `env:"ALLOWED_USERS" envSeparator:":"`
	AdminUserID      int64   `env:"ADMIN_USER"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey     string      `env:"GEMINI_API_KEY"`
	GeminiBaseURL    string      `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel      string      `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash-latest"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Suggestions
	SuggestTimeout time.Duration `env:"SUGGEST_TIMEOUT" envDefault:"15s"`

	// Storage
	EventLogPath string `env:"EVENT_LOG_PATH" envDefault:"logs/commands.jsonl"`

	// Formatting; empty means plain text, so replies with "<" or "&"
	// in item names are never rejected by Telegram
	MessageParseMode string `env:"MESSAGE_PARSE_MODE"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
