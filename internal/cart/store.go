package cart

import (
	"sync"

	"jivuma/internal/domain"
	applog "jivuma/internal/log"
)

// SnapshotRepo is the durable slot the cart writes itself to after every
// mutation and reads once at startup.
type SnapshotRepo interface {
	Save(entries []domain.Entry) error
	Load() ([]domain.Entry, error)
}

// State is a point-in-time view of the cart. Entries keep insertion
// order; there is at most one entry per product id.
type State struct {
	Entries []domain.Entry
}

// Listener receives the new state after each successful mutation.
type Listener func(State)

// Store is the single source of truth for cart contents. Construct one
// with NewStore and pass it to consumers; there is no package-level
// instance. Commands serialize through an internal mutex and run to
// completion (including the persistence write) before the next one
// starts, so the store is safe to share across request goroutines.
type Store struct {
	mu        sync.Mutex
	entries   []domain.Entry
	repo      SnapshotRepo
	listeners []Listener
}

func NewStore(repo SnapshotRepo) *Store {
	return &Store{repo: repo}
}

// Subscribe registers a listener for post-mutation notifications and
// returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	i := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners[i] = nil
	}
}

// Snapshot returns a copy of the current state. Mutating the returned
// entries has no effect on the store.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	entries := make([]domain.Entry, len(s.entries))
	copy(entries, s.entries)
	return State{Entries: entries}
}

// Dispatch applies a command through the reducer, persists the result
// (except for Load, the restore path), and notifies listeners. A failed
// persistence write is logged and the in-memory state stays
// authoritative. Listeners run outside the lock, so they may query the
// store again.
func (s *Store) Dispatch(cmd Command) {
	s.mu.Lock()
	s.entries = reduce(s.entries, cmd)

	if _, restoring := cmd.(Load); !restoring {
		if err := s.repo.Save(s.entries); err != nil {
			applog.Error(nil, "cart.persist", err, map[string]any{"entries": len(s.entries)})
		}
	}

	snap := s.snapshotLocked()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		if l != nil {
			l(snap)
		}
	}
}

// Add puts one unit of the product in the cart.
func (s *Store) Add(p domain.Product) { s.Dispatch(Add{Product: p}) }

// Remove drops the line with the given id if present.
func (s *Store) Remove(id int64) { s.Dispatch(Remove{ID: id}) }

// SetQuantity replaces a line's quantity; qty <= 0 removes the line.
func (s *Store) SetQuantity(id int64, qty int) { s.Dispatch(SetQuantity{ID: id, Quantity: qty}) }

// Clear empties the cart and persists the empty snapshot.
func (s *Store) Clear() { s.Dispatch(Clear{}) }

// Hydrate restores the cart from the durable slot. Entries that fail
// validation are dropped; a missing or unreadable snapshot yields an
// empty cart. Never fails startup.
func (s *Store) Hydrate() {
	saved, err := s.repo.Load()
	if err != nil {
		applog.Error(nil, "cart.hydrate", err, nil)
		s.Dispatch(Load{})
		return
	}

	kept := make([]domain.Entry, 0, len(saved))
	seen := make(map[int64]bool, len(saved))
	for _, e := range saved {
		if e.Valid() && !seen[e.ID] {
			kept = append(kept, e)
			seen[e.ID] = true
		}
	}
	if dropped := len(saved) - len(kept); dropped > 0 {
		applog.Warn(nil, "cart.hydrate.dropped", map[string]any{"dropped": dropped})
	}
	s.Dispatch(Load{Entries: kept})
}
