package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"smartcart/internal/analytics"
	"smartcart/internal/assistant"
	"smartcart/internal/auth"
	"smartcart/internal/cart"
	"smartcart/internal/config"
	"smartcart/internal/llm"
	"smartcart/internal/scheduler"
	"smartcart/internal/storage"
	"smartcart/internal/suggest"
	"smartcart/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.TelegramBotToken == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN is required")
	}

	llmClient := newLLMClient(cfg)

	var rec storage.Recorder
	if cfg.EventLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.EventLogPath)
		if err != nil {
			log.Printf("failed to init event recorder: %v", err)
		} else {
			rec = fr
		}
	}

	store := cart.NewStore()
	suggestSvc := suggest.New(llmClient, cfg.SuggestTimeout)
	core := assistant.New(store, suggestSvc, rec)

	bot, err := telegram.New(cfg.TelegramBotToken, auth.New(cfg.AllowedUsers), core, cfg.MessageParseMode)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New()
	if suggestSvc.Enabled() {
		sched.SetRefreshFunction(func(ctx context.Context) {
			core.RefreshSuggestions(ctx)
		})
	}
	if rec != nil {
		sched.SetReportFunction(func(ctx context.Context) error {
			events, err := rec.LoadEvents()
			if err != nil {
				return err
			}
			stats := analytics.AnalyzeDailyLogs(events, time.Now().UTC())
			log.Print(analytics.FormatReport(stats))
			return nil
		})
	}
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Printf("🛒 Shopping assistant started")
	bot.Start(context.Background())
}

func newLLMClient(cfg *config.Config) llm.Client {
	factory := llm.NewFactory(cfg)
	client, err := factory.CreateClient(string(cfg.LLMProvider))
	if err != nil {
		if errors.Is(err, llm.ErrNoCredential) {
			log.Printf("💤 Suggestions disabled: no %s credential configured", cfg.LLMProvider)
			return nil
		}
		log.Fatalf("failed to create llm client: %v", err)
	}
	return client
}
