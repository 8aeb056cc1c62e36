package assistant

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"smartcart/internal/cart"
	"smartcart/internal/command"
	"smartcart/internal/llm"
	"smartcart/internal/storage"
	"smartcart/internal/suggest"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []storage.Event
}

func (f *fakeRecorder) AppendEvent(ev storage.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeRecorder) LoadEvents() ([]storage.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.Event(nil), f.events...), nil
}

type fakeLLM struct {
	mu      sync.Mutex
	resp    llm.Response
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.prompts = append(f.prompts, m.Content)
	}
	return f.resp, nil
}

func (f *fakeLLM) promptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newDisabled(rec storage.Recorder) *Assistant {
	return New(cart.NewStore(), suggest.New(nil, time.Second), rec)
}

func TestApplyCommandAdd(t *testing.T) {
	a := newDisabled(nil)
	res := a.ApplyCommand(context.Background(), 1, "add 2 apples")
	if !res.Recognized || res.Action != command.ActionAdd || res.Item != "apples" || res.Quantity != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Category != "Fruits" {
		t.Fatalf("category not resolved: %+v", res)
	}
	items := a.Items()
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Category != "Fruits" {
		t.Fatalf("unexpected cart: %+v", items)
	}
}

func TestApplyCommandRemove(t *testing.T) {
	a := newDisabled(nil)
	a.ApplyCommand(context.Background(), 1, "add milk")
	res := a.ApplyCommand(context.Background(), 1, "remove milk")
	if !res.Recognized || res.Action != command.ActionRemove {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(a.Items()) != 0 {
		t.Fatalf("cart should be empty")
	}
}

func TestApplyCommandUnrecognizedLeavesStateUntouched(t *testing.T) {
	a := newDisabled(nil)
	a.ApplyCommand(context.Background(), 1, "add milk")
	res := a.ApplyCommand(context.Background(), 1, "banana")
	if res.Recognized {
		t.Fatalf("expected unrecognized: %+v", res)
	}
	if len(a.Items()) != 1 || len(a.FrequentItems(5)) != 1 {
		t.Fatalf("unrecognized command must not change state")
	}
}

func TestTranscriptAndManualSubmitShareOnePipeline(t *testing.T) {
	a := newDisabled(nil)
	a.OnFinalTranscript(context.Background(), 1, "add bread")
	a.OnManualSubmit(context.Background(), 1, "add bread")
	items := a.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("both entry points should feed the same cart: %+v", items)
	}
}

func TestApplyCommandRecordsEvents(t *testing.T) {
	rec := &fakeRecorder{}
	a := newDisabled(rec)
	a.ApplyCommand(context.Background(), 7, "add 2 apples")
	a.ApplyCommand(context.Background(), 7, "gibberish")

	events, _ := rec.LoadEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != "add" || events[0].Item != "apples" || events[0].Quantity != 2 || events[0].UserID != 7 {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if events[1].Action != "unrecognized" || events[1].Input != "gibberish" {
		t.Fatalf("unexpected event: %+v", events[1])
	}
}

func TestItemSetChangeTriggersSuggestionRefresh(t *testing.T) {
	f := &fakeLLM{resp: llm.Response{Content: "Suggestions:\n- jam\nSeasonal:\n- plums"}}
	a := New(cart.NewStore(), suggest.New(f, time.Second), nil)

	a.ApplyCommand(context.Background(), 1, "add bread")

	deadline := time.Now().Add(2 * time.Second)
	for f.promptCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("suggestion refresh never triggered")
		}
		time.Sleep(time.Millisecond)
	}

	f.mu.Lock()
	prompt := f.prompts[0]
	f.mu.Unlock()
	if !strings.Contains(prompt, "bread") {
		t.Fatalf("prompt should embed cart names: %q", prompt)
	}

	for {
		sugg, seas := a.Suggestions()
		if reflect.DeepEqual(sugg, []string{"jam"}) && reflect.DeepEqual(seas, []string{"plums"}) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("suggestion state never applied: %v / %v", sugg, seas)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestQuantityOnlyChangeDoesNotRefresh(t *testing.T) {
	f := &fakeLLM{resp: llm.Response{Content: "Suggestions:\n- x"}}
	a := New(cart.NewStore(), suggest.New(f, time.Second), nil)

	a.ApplyCommand(context.Background(), 1, "add bread")
	deadline := time.Now().Add(2 * time.Second)
	for f.promptCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("initial refresh never triggered")
		}
		time.Sleep(time.Millisecond)
	}

	a.ApplyCommand(context.Background(), 1, "add 2 bread")
	a.Increment("bread")
	a.Decrement("bread")
	time.Sleep(50 * time.Millisecond)

	if n := f.promptCount(); n != 1 {
		t.Fatalf("quantity-only changes must not refresh, got %d calls", n)
	}
}
