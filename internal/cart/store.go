package cart

import (
	"sort"
	"strings"
	"sync"
)

// Item is a single cart entry. The cart holds at most one entry per
// (case-insensitively) normalized name; Name keeps the casing of the
// first add for display.
type Item struct {
	Name     string
	Quantity int
	Category string
}

// Snapshot captures the cart's item-name set at a given generation.
// Generations advance only when the set of names changes, not on
// quantity-only updates.
type Snapshot struct {
	Generation uint64
	Names      []string
}

// Listener is invoked synchronously after every item-set change with an
// immutable snapshot of the new state.
type Listener func(Snapshot)

// Store owns the cart items and the frequency history. The history counts
// how many times each item was ever added and outlives the item's presence
// in the cart. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	items    []Item
	counts   map[string]int
	order    []string          // history keys in first-add order, for stable ranking ties
	display  map[string]string // normalized key -> display name from first add
	gen      uint64
	onChange Listener
}

func NewStore() *Store {
	return &Store{
		counts:  make(map[string]int),
		display: make(map[string]string),
	}
}

// SetOnChange registers the item-set change listener. Must be called before
// the store starts receiving mutations.
func (s *Store) SetOnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = l
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddItem merges quantity into an existing entry or appends a new one,
// preserving insertion order. The frequency counter for the name advances by
// exactly 1 per call regardless of quantity. The category of an existing
// entry is never overwritten.
func (s *Store) AddItem(name string, quantity int, category string) {
	key := normalize(name)
	if key == "" {
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	if _, ok := s.counts[key]; !ok {
		s.order = append(s.order, key)
		s.display[key] = strings.TrimSpace(name)
	}
	s.counts[key]++

	for i := range s.items {
		if normalize(s.items[i].Name) == key {
			s.items[i].Quantity += quantity
			s.mu.Unlock()
			return
		}
	}
	s.items = append(s.items, Item{Name: strings.TrimSpace(name), Quantity: quantity, Category: category})
	snap := s.snapshotLocked()
	l := s.onChange
	s.mu.Unlock()

	s.notify(l, snap)
}

// RemoveItem deletes the entry entirely. Absent names are a silent no-op and
// the frequency history is left untouched.
func (s *Store) RemoveItem(name string) {
	key := normalize(name)

	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if normalize(s.items[i].Name) == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	snap := s.snapshotLocked()
	l := s.onChange
	s.mu.Unlock()

	s.notify(l, snap)
}

// Increment bumps the quantity of an existing entry by one. No-op when the
// item is not in the cart.
func (s *Store) Increment(name string) {
	key := normalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if normalize(s.items[i].Name) == key {
			s.items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of an existing entry by one. An entry that
// would reach zero is deleted instead of being kept at zero. No-op when the
// item is not in the cart.
func (s *Store) Decrement(name string) {
	key := normalize(name)

	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if normalize(s.items[i].Name) == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	if s.items[idx].Quantity > 1 {
		s.items[idx].Quantity--
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	snap := s.snapshotLocked()
	l := s.onChange
	s.mu.Unlock()

	s.notify(l, snap)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// FrequentItems returns up to limit item names ranked by how often they were
// ever added, most frequent first. Ties keep the order in which the names
// first entered the history, so the ranking is deterministic.
func (s *Store) FrequentItems(limit int) []string {
	if limit <= 0 {
		limit = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return s.counts[keys[i]] > s.counts[keys[j]]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = s.display[k]
	}
	return out
}

// Snapshot returns the current generation and item-name set.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Generation: s.gen, Names: make([]string, len(s.items))}
	for i, it := range s.items {
		snap.Names[i] = it.Name
	}
	return snap
}

// snapshotLocked advances the generation and captures the new name set.
// Callers must hold the write lock.
func (s *Store) snapshotLocked() Snapshot {
	s.gen++
	snap := Snapshot{Generation: s.gen, Names: make([]string, len(s.items))}
	for i, it := range s.items {
		snap.Names[i] = it.Name
	}
	return snap
}

func (s *Store) notify(l Listener, snap Snapshot) {
	if l != nil {
		l(snap)
	}
}
