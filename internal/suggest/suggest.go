package suggest

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"smartcart/internal/cart"
	"smartcart/internal/llm"
)

// maxEntries bounds each published list.
const maxEntries = 3

// Service keeps two bounded suggestion lists consistent with the cart's
// item set. Each refresh is tagged with the generation of the cart snapshot
// that triggered it; results for superseded generations are discarded so an
// older reply can never overwrite a newer one. A nil client disables the
// service silently.
type Service struct {
	client  llm.Client
	timeout time.Duration

	mu          sync.Mutex
	suggestions []string
	seasonal    []string
	latest      uint64 // newest generation seen
	applied     uint64 // generation of the published lists
}

func New(client llm.Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{client: client, timeout: timeout}
}

func (s *Service) Enabled() bool {
	return s.client != nil
}

// Refresh re-queries the suggestion service for the given cart snapshot.
// It is a silent no-op when the service is disabled or the cart is empty,
// and it never returns an error: transport and format failures are logged
// and leave the previous state in place.
func (s *Service) Refresh(ctx context.Context, snap cart.Snapshot) {
	s.mu.Lock()
	if snap.Generation > s.latest {
		s.latest = snap.Generation
	}
	stale := snap.Generation < s.latest
	s.mu.Unlock()

	if stale || s.client == nil || len(snap.Names) == 0 {
		return
	}

	prompt := buildPrompt(snap.Names)
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Generate(cctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		log.Printf("suggestion refresh failed (generation %d): %v", snap.Generation, err)
		return
	}

	suggestions, seasonal := ParseReply(resp.Content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Generation < s.latest || snap.Generation < s.applied {
		log.Printf("discarding stale suggestion reply for generation %d (latest %d)", snap.Generation, s.latest)
		return
	}
	s.applied = snap.Generation
	s.suggestions = suggestions
	s.seasonal = seasonal
}

// State returns copies of the current suggestion and seasonal lists.
func (s *Service) State() (suggestions, seasonal []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestions = append([]string(nil), s.suggestions...)
	seasonal = append([]string(nil), s.seasonal...)
	return suggestions, seasonal
}

func buildPrompt(names []string) string {
	return fmt.Sprintf(`The cart contains: %s.
Suggest 3 useful shopping recommendations and list 3 seasonal fruits/vegetables right now.
Return the response as two lists:
Suggestions: ...
Seasonal: ...`, strings.Join(names, ", "))
}

var (
	suggestionsLabel = regexp.MustCompile(`(?i)suggestions:`)
	seasonalLabel    = regexp.MustCompile(`(?i)seasonal:`)
)

// ParseReply extracts the two labeled lists from a free-text reply.
// The text after "Suggestions:" up to "Seasonal:" (or end of text) feeds the
// first list, the text after "Seasonal:" the second. Fragments are split on
// line breaks and bullet markers, trimmed, and capped at three per list.
// A missing label yields an empty list, never an error.
func ParseReply(text string) (suggestions, seasonal []string) {
	seasonalLoc := seasonalLabel.FindStringIndex(text)

	if loc := suggestionsLabel.FindStringIndex(text); loc != nil {
		section := text[loc[1]:]
		if seasonalLoc != nil && seasonalLoc[0] >= loc[1] {
			section = text[loc[1]:seasonalLoc[0]]
		}
		suggestions = splitEntries(section)
	}

	if seasonalLoc != nil {
		seasonal = splitEntries(text[seasonalLoc[1]:])
	}
	return suggestions, seasonal
}

func splitEntries(section string) []string {
	fragments := strings.FieldsFunc(section, func(r rune) bool {
		return r == '\n' || r == '•' || r == '-'
	})
	var out []string
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, f)
		if len(out) == maxEntries {
			break
		}
	}
	return out
}
