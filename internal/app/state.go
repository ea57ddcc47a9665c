package app

import (
	"slices"
	"sync"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
)

// State is the mutable quote collection and category selection owned by a
// single QuoteService. Readers get copies; writers go through the service so
// every mutation is followed by a persistence write.
type State struct {
	mu       sync.RWMutex
	quotes   []domain.Quote
	selected string
}

// NewState creates a state holding quotes with the "all" category selected.
func NewState(quotes []domain.Quote) *State {
	return &State{
		quotes:   slices.Clone(quotes),
		selected: domain.CategoryAll,
	}
}

// Quotes returns a copy of the collection in insertion order.
func (s *State) Quotes() []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.quotes)
}

// Len returns the number of quotes in the collection.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.quotes)
}

// SelectedCategory returns the effective category filter. A stored selection
// that no longer matches any quote falls back to "all".
func (s *State) SelectedCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.effectiveCategoryLocked()
}

// effectiveCategoryLocked must be called with at least a read lock held.
func (s *State) effectiveCategoryLocked() string {
	if slices.Contains(domain.Categories(s.quotes), s.selected) {
		return s.selected
	}

	return domain.CategoryAll
}
