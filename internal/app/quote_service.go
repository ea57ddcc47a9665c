// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
	"github.com/jsamuelsen/quote-sync-service/internal/ports"
)

var errTrailingData = errors.New("unexpected data after JSON array")

// QuoteService owns the quote collection and the selected category filter.
// Every mutation is written to the repository. Repository failures are logged
// and never surfaced: the in-memory collection stays authoritative.
type QuoteService struct {
	repo    ports.QuoteRepository
	session ports.SessionStore
	logger  *slog.Logger
	intn    func(n int) int
	state   *State
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Session    ports.SessionStore
	Logger     *slog.Logger

	// Intn picks a random index in [0, n). Defaults to math/rand/v2.IntN.
	Intn func(n int) int
}

// ImportResult describes an accepted import.
type ImportResult struct {
	Received int `json:"received"`
	Imported int `json:"imported"`
	Dropped  int `json:"dropped"`
}

// NewQuoteService creates a quote service seeded with the default quotes.
// Call Load to replace the seed with the persisted collection.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	intn := cfg.Intn
	if intn == nil {
		intn = rand.IntN
	}

	return &QuoteService{
		repo:    cfg.Repository,
		session: cfg.Session,
		logger:  logger,
		intn:    intn,
		state:   NewState(domain.SeedQuotes()),
	}
}

// Load restores the collection and category selection from the repository.
// A missing or unreadable collection keeps the seed quotes. A persisted
// collection is filtered through the validator and replaces the seed even
// when nothing in it survives.
func (s *QuoteService) Load(ctx context.Context) {
	quotes := domain.SeedQuotes()

	records, err := s.repo.LoadQuotes(ctx)

	switch {
	case err == nil:
		quotes = domain.FilterValid(records)
		s.logger.InfoContext(ctx, "loaded persisted quotes",
			slog.Int("received", len(records)),
			slog.Int("kept", len(quotes)),
		)
	case errors.Is(err, domain.ErrNotFound):
		s.logger.InfoContext(ctx, "no persisted quotes, using seed collection")
	default:
		s.logger.WarnContext(ctx, "reading persisted quotes failed, using seed collection",
			slog.Any("error", err),
		)
	}

	selected := domain.CategoryAll

	category, err := s.repo.LoadSelectedCategory(ctx)

	switch {
	case err == nil && strings.TrimSpace(category) != "":
		selected = category
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		s.logger.WarnContext(ctx, "reading selected category failed", slog.Any("error", err))
	}

	s.state.mu.Lock()
	s.state.quotes = quotes
	s.state.selected = selected
	s.state.mu.Unlock()
}

// Quotes returns the collection in insertion order.
func (s *QuoteService) Quotes(_ context.Context) []domain.Quote {
	return s.state.Quotes()
}

// FilteredQuotes returns the quotes matching category. An empty category uses
// the current selection.
func (s *QuoteService) FilteredQuotes(_ context.Context, category string) []domain.Quote {
	if strings.TrimSpace(category) == "" {
		category = s.state.SelectedCategory()
	}

	return domain.FilterByCategory(s.state.Quotes(), category)
}

// Categories returns "all" followed by the distinct lower-cased categories.
func (s *QuoteService) Categories(_ context.Context) []string {
	return domain.Categories(s.state.Quotes())
}

// SelectedCategory returns the active category filter.
func (s *QuoteService) SelectedCategory(_ context.Context) string {
	return s.state.SelectedCategory()
}

// SelectCategory sets and persists the category filter. Categories are matched
// case-insensitively; an empty or unknown category selects "all".
// Returns the selection now in effect.
func (s *QuoteService) SelectCategory(ctx context.Context, category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = domain.CategoryAll
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if !slices.Contains(domain.Categories(s.state.quotes), category) {
		s.logger.DebugContext(ctx, "unknown category selected, falling back to all",
			slog.String("category", category),
		)

		category = domain.CategoryAll
	}

	s.state.selected = category
	s.storageFailed(ctx, "save selected category", s.repo.SaveSelectedCategory(ctx, category))

	return category
}

// RandomQuote picks a uniformly random quote from the selected category and
// records it as the session's last displayed quote.
// Returns a NotFoundError when the category has no quotes.
func (s *QuoteService) RandomQuote(ctx context.Context) (domain.Quote, error) {
	s.state.mu.RLock()
	pool := domain.FilterByCategory(s.state.quotes, s.state.effectiveCategoryLocked())
	s.state.mu.RUnlock()

	if len(pool) == 0 {
		return domain.Quote{}, domain.NewNotFoundError("quote", "")
	}

	quote := pool[s.intn(len(pool))]

	if s.session != nil {
		s.storageFailed(ctx, "save last quote", s.session.SetLastQuote(ctx, quote))
	}

	return quote, nil
}

// LastQuote returns the quote last displayed in this session. When none was
// recorded, or the stored value does not validate, a random quote is picked.
func (s *QuoteService) LastQuote(ctx context.Context) (domain.Quote, error) {
	if s.session != nil {
		record, err := s.session.LastQuote(ctx)
		if err == nil {
			if quote, ok := domain.QuoteFromRecord(record); ok {
				return quote, nil
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "reading last quote failed", slog.Any("error", err))
		}
	}

	return s.RandomQuote(ctx)
}

// AddQuote appends a quote after trimming both fields.
// Returns a ValidationError if either field is blank.
func (s *QuoteService) AddQuote(ctx context.Context, text, category string) (domain.Quote, error) {
	quote := domain.Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if quote.Text == "" {
		return domain.Quote{}, domain.NewValidationError("text", "must not be blank")
	}

	if quote.Category == "" {
		return domain.Quote{}, domain.NewValidationError("category", "must not be blank")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.quotes = append(s.state.quotes, quote)
	s.storageFailed(ctx, "save quotes", s.repo.SaveQuotes(ctx, s.state.quotes))

	s.logger.InfoContext(ctx, "quote added", slog.String("category", quote.Category))

	return quote, nil
}

// Import parses r as a JSON array of quote records and appends the valid ones.
// Nothing is appended unless at least one record passes validation.
func (s *QuoteService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	dec := json.NewDecoder(r)

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, domain.NewInvalidImportError(err)
	}

	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}

		return nil, domain.NewInvalidImportError(err)
	}

	records, ok := payload.([]any)
	if !ok {
		return nil, domain.ErrInvalidImport
	}

	valid := domain.FilterValid(records)
	if len(valid) == 0 {
		return nil, domain.ErrNoValidRecords
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.quotes = append(s.state.quotes, valid...)
	s.storageFailed(ctx, "save quotes", s.repo.SaveQuotes(ctx, s.state.quotes))

	result := &ImportResult{
		Received: len(records),
		Imported: len(valid),
		Dropped:  len(records) - len(valid),
	}

	s.logger.InfoContext(ctx, "quotes imported",
		slog.Int("imported", result.Imported),
		slog.Int("dropped", result.Dropped),
	)

	return result, nil
}

// Export writes the collection to w as a JSON array indented by two spaces.
func (s *QuoteService) Export(_ context.Context, w io.Writer) error {
	quotes := s.state.Quotes()
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(quotes); err != nil {
		return fmt.Errorf("encoding quotes: %w", err)
	}

	return nil
}

// Replace swaps the whole collection and persists it.
func (s *QuoteService) Replace(ctx context.Context, quotes []domain.Quote) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.replaceLocked(ctx, quotes)
}

// Reconcile merges remote into the current collection with remote precedence
// and stores the result. The merge and the swap happen under one lock, so
// quotes added while a sync was fetching are merged rather than lost.
func (s *QuoteService) Reconcile(ctx context.Context, remote []domain.Quote) domain.MergeResult {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	result := domain.Merge(remote, s.state.quotes)
	s.replaceLocked(ctx, result.Merged)

	return result
}

func (s *QuoteService) replaceLocked(ctx context.Context, quotes []domain.Quote) {
	s.state.quotes = slices.Clone(quotes)
	s.storageFailed(ctx, "save quotes", s.repo.SaveQuotes(ctx, s.state.quotes))
}

// storageFailed logs a failed storage write. The error is dropped on purpose:
// callers keep serving from memory.
func (s *QuoteService) storageFailed(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}

	s.logger.WarnContext(ctx, "storage write failed",
		slog.String("op", op),
		slog.Any("error", err),
	)
}
