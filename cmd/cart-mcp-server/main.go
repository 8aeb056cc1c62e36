package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"smartcart/internal/assistant"
	"smartcart/internal/cart"
	"smartcart/internal/config"
	"smartcart/internal/llm"
	"smartcart/internal/suggest"
)

// AddItemParams параметры инструмента add_item
type AddItemParams struct {
	Name     string `json:"name" mcp:"the item to add to the cart"`
	Quantity int    `json:"quantity,omitempty" mcp:"how many to add (default: 1)"`
}

// RemoveItemParams параметры инструмента remove_item
type RemoveItemParams struct {
	Name string `json:"name" mcp:"the item to remove from the cart"`
}

// CommandParams параметры инструмента apply_command
type CommandParams struct {
	Text string `json:"text" mcp:"a free-form shopping command, e.g. 'add 2 apples'"`
}

// ListParams параметры инструментов без аргументов
type ListParams struct{}

// FrequentParams параметры инструмента frequent_items
type FrequentParams struct {
	Limit int `json:"limit,omitempty" mcp:"maximum number of items to return (default: 5)"`
}

// CartMCPServer exposes the shopping cart as MCP tools over stdio.
type CartMCPServer struct {
	core *assistant.Assistant
}

func NewCartMCPServer(core *assistant.Assistant) *CartMCPServer {
	return &CartMCPServer{core: core}
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (s *CartMCPServer) AddItem(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AddItemParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if strings.TrimSpace(args.Name) == "" {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: "❌ name is required"}},
		}, nil
	}
	qty := args.Quantity
	if qty < 1 {
		qty = 1
	}
	res := s.core.ApplyCommand(ctx, 0, fmt.Sprintf("add %d %s", qty, args.Name))
	if !res.Recognized {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("❌ Could not add %q", args.Name)}},
		}, nil
	}
	return textResult(fmt.Sprintf("✅ Added %d x %s (%s)", res.Quantity, res.Item, res.Category)), nil
}

func (s *CartMCPServer) RemoveItem(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[RemoveItemParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if strings.TrimSpace(args.Name) == "" {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: "❌ name is required"}},
		}, nil
	}
	s.core.ApplyCommand(ctx, 0, "remove "+args.Name)
	return textResult(fmt.Sprintf("✅ Removed %s", args.Name)), nil
}

func (s *CartMCPServer) ApplyCommand(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[CommandParams]) (*mcp.CallToolResultFor[any], error) {
	res := s.core.ApplyCommand(ctx, 0, params.Arguments.Text)
	if !res.Recognized {
		return textResult("🤷 Command not recognized"), nil
	}
	return textResult(fmt.Sprintf("✅ Applied: %s %s", actionName(res), res.Item)), nil
}

func actionName(res assistant.Result) string {
	if res.Quantity > 0 {
		return fmt.Sprintf("add %d", res.Quantity)
	}
	return "remove"
}

func (s *CartMCPServer) ListCart(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListParams]) (*mcp.CallToolResultFor[any], error) {
	items := s.core.Items()
	if len(items) == 0 {
		return textResult("The cart is empty."), nil
	}
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%s — %d (%s)\n", it.Name, it.Quantity, it.Category)
	}
	return textResult(strings.TrimRight(sb.String(), "\n")), nil
}

func (s *CartMCPServer) FrequentItems(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[FrequentParams]) (*mcp.CallToolResultFor[any], error) {
	names := s.core.FrequentItems(params.Arguments.Limit)
	if len(names) == 0 {
		return textResult("No shopping history yet."), nil
	}
	return textResult(strings.Join(names, ", ")), nil
}

func (s *CartMCPServer) Suggestions(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListParams]) (*mcp.CallToolResultFor[any], error) {
	if !s.core.SuggestionsEnabled() {
		return textResult("Suggestions are not configured."), nil
	}
	suggestions, seasonal := s.core.Suggestions()
	if len(suggestions) == 0 && len(seasonal) == 0 {
		s.core.RefreshSuggestions(ctx)
		suggestions, seasonal = s.core.Suggestions()
	}
	return textResult(fmt.Sprintf("Suggestions: %s\nSeasonal: %s",
		strings.Join(suggestions, ", "), strings.Join(seasonal, ", "))), nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	factory := llm.NewFactory(cfg)
	client, err := factory.CreateClient(string(cfg.LLMProvider))
	if err != nil {
		if !errors.Is(err, llm.ErrNoCredential) {
			log.Fatalf("❌ failed to create llm client: %v", err)
		}
		log.Printf("💤 Suggestions disabled: no %s credential configured", cfg.LLMProvider)
		client = nil
	}

	core := assistant.New(cart.NewStore(), suggest.New(client, cfg.SuggestTimeout), nil)

	log.Printf("🚀 Starting Cart MCP Server")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "smartcart-mcp",
		Version: "1.0.0",
	}, nil)

	cartServer := NewCartMCPServer(core)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_item",
		Description: "Adds an item to the shopping cart, merging with an existing entry",
	}, cartServer.AddItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_item",
		Description: "Removes an item from the shopping cart entirely",
	}, cartServer.RemoveItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_command",
		Description: "Applies a free-form shopping command like 'add 2 apples' or 'remove milk'",
	}, cartServer.ApplyCommand)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_cart",
		Description: "Lists the cart contents in insertion order with quantities and categories",
	}, cartServer.ListCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "frequent_items",
		Description: "Returns the most frequently added items",
	}, cartServer.FrequentItems)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggestions",
		Description: "Returns smart and seasonal suggestions for the current cart",
	}, cartServer.Suggestions)

	log.Printf("📋 Registered %d tools: add_item, remove_item, apply_command, list_cart, frequent_items, suggestions", 6)
	log.Printf("🔗 Starting server on stdin/stdout...")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
