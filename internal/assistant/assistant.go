package assistant

import (
	"context"
	"log"
	"time"

	"smartcart/internal/cart"
	"smartcart/internal/catalog"
	"smartcart/internal/command"
	"smartcart/internal/storage"
	"smartcart/internal/suggest"
)

// Result describes what a single command did, for front-ends to render.
type Result struct {
	Recognized bool
	Action     command.Action
	Item       string
	Quantity   int
	Category   string
}

// Assistant is the core pipeline: free text in, cart mutation out, with the
// suggestion service refreshed in the background on every item-set change.
type Assistant struct {
	store    *cart.Store
	suggest  *suggest.Service
	recorder storage.Recorder
}

func New(store *cart.Store, svc *suggest.Service, recorder storage.Recorder) *Assistant {
	a := &Assistant{
		store:    store,
		suggest:  svc,
		recorder: recorder,
	}
	store.SetOnChange(func(snap cart.Snapshot) {
		// The external call is the sole asynchronous boundary; the result
		// is applied (or discarded as stale) inside the service.
		go svc.Refresh(context.Background(), snap)
	})
	return a
}

// ApplyCommand parses the text and applies the resulting mutation. An
// unrecognized command discards the input without touching any state.
func (a *Assistant) ApplyCommand(ctx context.Context, userID int64, text string) Result {
	cmd := command.Parse(text)

	var res Result
	switch cmd.Action {
	case command.ActionAdd:
		category := catalog.Categorize(cmd.Item)
		a.store.AddItem(cmd.Item, cmd.Quantity, category)
		res = Result{Recognized: true, Action: cmd.Action, Item: cmd.Item, Quantity: cmd.Quantity, Category: category}
	case command.ActionRemove:
		a.store.RemoveItem(cmd.Item)
		res = Result{Recognized: true, Action: cmd.Action, Item: cmd.Item}
	default:
		log.Printf("unrecognized command: %q", text)
		res = Result{Action: command.ActionUnknown}
	}

	a.record(userID, text, res)
	return res
}

// OnFinalTranscript feeds the finalized utterance of one recognition session
// into the pipeline. Interim transcripts must not reach this method.
func (a *Assistant) OnFinalTranscript(ctx context.Context, userID int64, text string) Result {
	return a.ApplyCommand(ctx, userID, text)
}

// OnManualSubmit feeds one explicitly submitted typed command into the pipeline.
func (a *Assistant) OnManualSubmit(ctx context.Context, userID int64, text string) Result {
	return a.ApplyCommand(ctx, userID, text)
}

func (a *Assistant) record(userID int64, input string, res Result) {
	if a.recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Input:     input,
		Action:    "unrecognized",
	}
	if res.Recognized {
		ev.Item = res.Item
		ev.Quantity = res.Quantity
		if res.Action == command.ActionAdd {
			ev.Action = "add"
		} else {
			ev.Action = "remove"
		}
	}
	if err := a.recorder.AppendEvent(ev); err != nil {
		log.Printf("failed to record command event: %v", err)
	}
}

// Items returns the cart in insertion order.
func (a *Assistant) Items() []cart.Item {
	return a.store.Items()
}

// FrequentItems returns up to n item names ranked by add frequency.
func (a *Assistant) FrequentItems(n int) []string {
	return a.store.FrequentItems(n)
}

// Increment bumps the quantity of a cart entry.
func (a *Assistant) Increment(name string) {
	a.store.Increment(name)
}

// Decrement lowers the quantity of a cart entry, deleting it at zero.
func (a *Assistant) Decrement(name string) {
	a.store.Decrement(name)
}

// Suggestions returns the current suggestion and seasonal lists.
func (a *Assistant) Suggestions() (suggestions, seasonal []string) {
	return a.suggest.State()
}

// RefreshSuggestions forces a refresh against the current cart contents.
func (a *Assistant) RefreshSuggestions(ctx context.Context) {
	a.suggest.Refresh(ctx, a.store.Snapshot())
}

// SuggestionsEnabled reports whether a suggestion backend is configured.
func (a *Assistant) SuggestionsEnabled() bool {
	return a.suggest.Enabled()
}
