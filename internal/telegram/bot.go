package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smartcart/internal/assistant"
	"smartcart/internal/auth"
	"smartcart/internal/command"
)

// Bot is the Telegram front-end of the shopping assistant. Plain text
// messages are manual command submissions; slash commands expose the cart
// views and the +/- mutations.
type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	authSvc   *auth.Service
	core      *assistant.Assistant
	parseMode string
}

func New(botToken string, authSvc *auth.Service, core *assistant.Assistant, parseMode string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:       api,
		s:         botAPISender{api: api},
		authSvc:   authSvc,
		core:      core,
		parseMode: parseMode,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		return
	}

	log.Printf("Incoming command from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)
	res := b.core.OnManualSubmit(ctx, msg.From.ID, msg.Text)
	b.sendMessage(msg.Chat.ID, formatResult(res))
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, helpText)
	case "list":
		b.sendMessage(msg.Chat.ID, b.formatCart())
	case "frequent":
		b.sendMessage(msg.Chat.ID, b.formatFrequent())
	case "suggest":
		b.sendMessage(msg.Chat.ID, b.formatSuggestions(ctx))
	case "inc":
		if arg == "" {
			b.sendMessage(msg.Chat.ID, "Usage: /inc <item>")
			return
		}
		b.core.Increment(arg)
		b.sendMessage(msg.Chat.ID, b.formatCart())
	case "dec":
		if arg == "" {
			b.sendMessage(msg.Chat.ID, "Usage: /dec <item>")
			return
		}
		b.core.Decrement(arg)
		b.sendMessage(msg.Chat.ID, b.formatCart())
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command, see /help")
	}
}

const helpText = `Tell me what you need, e.g. "add 2 apples" or "remove milk".

/list — show the cart
/frequent — your most added items
/suggest — smart suggestions for the cart
/inc <item> — one more of an item
/dec <item> — one less of an item`

func formatResult(res assistant.Result) string {
	switch {
	case res.Recognized && res.Action == command.ActionAdd:
		return fmt.Sprintf("✅ Added %d x %s (%s)", res.Quantity, res.Item, res.Category)
	case res.Recognized && res.Action == command.ActionRemove:
		return fmt.Sprintf("❌ Removed %s", res.Item)
	default:
		return "🤷 Sorry, I didn't understand that. Try \"add 2 apples\" or \"remove milk\"."
	}
}

func (b *Bot) formatCart() string {
	items := b.core.Items()
	if len(items) == 0 {
		return "🛒 Your cart is empty."
	}
	var sb strings.Builder
	sb.WriteString("🛒 Your cart:\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "• %s — %d (%s)\n", it.Name, it.Quantity, it.Category)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) formatFrequent() string {
	names := b.core.FrequentItems(5)
	if len(names) == 0 {
		return "No shopping history yet."
	}
	var sb strings.Builder
	sb.WriteString("🔥 Your usual items:\n")
	for _, n := range names {
		fmt.Fprintf(&sb, "• %s\n", n)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) formatSuggestions(ctx context.Context) string {
	if !b.core.SuggestionsEnabled() {
		return "Suggestions are not configured."
	}
	suggestions, seasonal := b.core.Suggestions()
	if len(suggestions) == 0 && len(seasonal) == 0 {
		b.core.RefreshSuggestions(ctx)
		suggestions, seasonal = b.core.Suggestions()
	}
	if len(suggestions) == 0 && len(seasonal) == 0 {
		return "No suggestions yet — add something to the cart first."
	}
	var sb strings.Builder
	if len(suggestions) > 0 {
		sb.WriteString("💡 Suggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&sb, "• %s\n", s)
		}
	}
	if len(seasonal) > 0 {
		sb.WriteString("🍂 Seasonal picks:\n")
		for _, s := range seasonal {
			fmt.Fprintf(&sb, "• %s\n", s)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if b.parseMode != "" {
		msg.ParseMode = b.parseMode
	}
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
