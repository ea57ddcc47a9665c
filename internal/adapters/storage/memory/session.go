// Package memory provides process-scoped session storage.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
)

const keyLastQuote = "last_quote.v1"

// SessionStore keeps session values for the lifetime of the process.
// Values are held as serialized JSON so readers validate them the same way
// they validate anything read back from durable storage.
type SessionStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{values: make(map[string][]byte)}
}

// LastQuote returns the last displayed quote as a decoded JSON record.
func (s *SessionStore) LastQuote(_ context.Context) (any, error) {
	s.mu.RLock()
	raw, ok := s.values[keyLastQuote]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.NewNotFoundError("session value", keyLastQuote)
	}

	var record any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyLastQuote, err)
	}

	return record, nil
}

// SetLastQuote records the quote most recently displayed.
func (s *SessionStore) SetLastQuote(_ context.Context, quote domain.Quote) error {
	raw, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyLastQuote, err)
	}

	s.mu.Lock()
	s.values[keyLastQuote] = raw
	s.mu.Unlock()

	return nil
}

// Name implements ports.HealthChecker.
func (s *SessionStore) Name() string {
	return "session-store"
}

// Check implements ports.HealthChecker. Memory storage is always available.
func (s *SessionStore) Check(context.Context) error {
	return nil
}
