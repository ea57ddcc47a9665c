// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
)

// QuoteRepository is the durable key-value storage behind the quote collection.
// It holds one entry with the serialized collection and one with the last
// selected category filter.
//
// Callers treat write failures as non-fatal: the in-memory collection stays the
// source of truth for the running process.
type QuoteRepository interface {
	// LoadQuotes returns the persisted collection as decoded JSON records.
	// Records are returned untyped so the caller can run them through the
	// validator. Returns domain.ErrNotFound if nothing was persisted yet.
	LoadQuotes(ctx context.Context) ([]any, error)

	// SaveQuotes replaces the persisted collection.
	SaveQuotes(ctx context.Context, quotes []domain.Quote) error

	// LoadSelectedCategory returns the last selected category filter.
	// Returns domain.ErrNotFound if no selection was stored.
	LoadSelectedCategory(ctx context.Context) (string, error)

	// SaveSelectedCategory stores the selected category filter.
	SaveSelectedCategory(ctx context.Context, category string) error
}

// SessionStore is key-value storage scoped to one session of the service.
// Its contents are lost when the session ends.
type SessionStore interface {
	// LastQuote returns the last displayed quote as a decoded JSON record.
	// Returns domain.ErrNotFound when no quote was displayed in this session.
	LastQuote(ctx context.Context) (any, error)

	// SetLastQuote records the quote most recently displayed.
	SetLastQuote(ctx context.Context, quote domain.Quote) error
}

// RemoteQuoteSource is the remote endpoint the collection is reconciled with.
//
// Key considerations:
//   - Handle timeouts via context deadline
//   - Map any non-success status to a domain error
//   - Transform external DTOs to domain types
type RemoteQuoteSource interface {
	// FetchQuotes retrieves the remote collection, already mapped to quotes.
	// Returns domain.ErrUnavailable if the endpoint is unreachable or answers
	// with a non-success status.
	FetchQuotes(ctx context.Context) ([]domain.Quote, error)

	// PushQuotes sends the full local collection to the endpoint.
	PushQuotes(ctx context.Context, quotes []domain.Quote) error
}

// StatusNotifier receives user-facing sync messages.
// The presentation layer implements this to surface progress and conflicts.
type StatusNotifier interface {
	// Status reports the current sync status line.
	Status(ctx context.Context, message string)

	// ConflictNotice raises a notice that conflicts were resolved remotely.
	ConflictNotice(ctx context.Context, conflicts int)
}
