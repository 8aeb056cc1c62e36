package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smartcart/internal/assistant"
	"smartcart/internal/auth"
	"smartcart/internal/cart"
	"smartcart/internal/suggest"
)

type fakeSender struct {
	sent  []string
	modes []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	sw := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, sw.Text)
	f.modes = append(f.modes, sw.ParseMode)
	return tgbotapi.Message{}, nil
}

func newTestBot(allowed []int64) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	core := assistant.New(cart.NewStore(), suggest.New(nil, time.Second), nil)
	b := &Bot{
		s:       fs,
		authSvc: auth.New(allowed),
		core:    core,
	}
	return b, fs
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func commandMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := textMessage(userID, chatID, text)
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	return msg
}

func TestPlainTextAddsToCart(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "add 2 apples"))

	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "Added 2 x apples") {
		t.Fatalf("unexpected reply: %+v", fs.sent)
	}
	items := b.core.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart not updated: %+v", items)
	}
}

func TestPlainTextRemove(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "add milk"))
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "remove milk"))

	if len(fs.sent) != 2 || !strings.Contains(fs.sent[1], "Removed milk") {
		t.Fatalf("unexpected replies: %+v", fs.sent)
	}
}

func TestUnrecognizedReplies(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "banana"))

	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "didn't understand") {
		t.Fatalf("unexpected reply: %+v", fs.sent)
	}
}

func TestUnauthorizedUserIgnored(t *testing.T) {
	b, fs := newTestBot([]int64{42})
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "add milk"))

	if len(fs.sent) != 0 {
		t.Fatalf("unauthorized user should be ignored: %+v", fs.sent)
	}
	if len(b.core.Items()) != 0 {
		t.Fatalf("unauthorized user must not mutate the cart")
	}
}

func TestListCommand(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "add 2 apples"))
	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/list"))

	out := fs.sent[len(fs.sent)-1]
	if !strings.Contains(out, "apples — 2") {
		t.Fatalf("unexpected list: %q", out)
	}
}

func TestListCommandEmptyCart(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/list"))
	if !strings.Contains(fs.sent[0], "empty") {
		t.Fatalf("unexpected reply: %q", fs.sent[0])
	}
}

func TestFrequentCommand(t *testing.T) {
	b, fs := newTestBot(nil)
	for _, txt := range []string{"add milk", "add bread", "add milk"} {
		b.handleIncomingMessage(context.Background(), textMessage(1, 100, txt))
	}
	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/frequent"))

	out := fs.sent[len(fs.sent)-1]
	milkIdx := strings.Index(out, "milk")
	breadIdx := strings.Index(out, "bread")
	if milkIdx < 0 || breadIdx < 0 || milkIdx > breadIdx {
		t.Fatalf("unexpected ranking output: %q", out)
	}
}

func TestIncDecCommands(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "add eggs"))
	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/inc eggs"))

	if items := b.core.Items(); items[0].Quantity != 2 {
		t.Fatalf("inc failed: %+v", items)
	}

	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/dec eggs"))
	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/dec eggs"))

	if items := b.core.Items(); len(items) != 0 {
		t.Fatalf("dec to zero should delete: %+v", items)
	}
	if len(fs.sent) == 0 {
		t.Fatalf("expected replies")
	}
}

func TestSuggestCommandWhenDisabled(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), commandMessage(1, 100, "/suggest"))
	if !strings.Contains(fs.sent[0], "not configured") {
		t.Fatalf("unexpected reply: %q", fs.sent[0])
	}
}

func TestSendMessage_PlainTextByDefault(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, 100, "add milk <1l>"))

	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "milk <1l>") {
		t.Fatalf("unexpected reply: %+v", fs.sent)
	}
	if fs.modes[0] != "" {
		t.Fatalf("default send must not set a parse mode, got %q", fs.modes[0])
	}
}

func TestSendMessage_UsesParseMode(t *testing.T) {
	fs := &fakeSender{}
	b := &Bot{s: fs, parseMode: "Markdown"}
	b.sendMessage(1, "**bold**")
	if len(fs.sent) != 1 || fs.sent[0] != "**bold**" {
		t.Fatalf("unexpected sent: %+v", fs.sent)
	}
}
