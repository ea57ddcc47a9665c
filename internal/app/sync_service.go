package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jsamuelsen/quote-sync-service/internal/domain"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-sync-service/internal/ports"
)

// DefaultSyncInterval is the period between automatic syncs.
const DefaultSyncInterval = 30 * time.Second

// Status lines reported through the StatusNotifier.
const (
	StatusSyncing = "Syncing with server..."
	StatusSynced  = "Quotes synced with server!"
	StatusFailed  = "Sync failed. Check network and try again."
	StatusSkipped = "Sync already in progress."

	statusConflictsFormat = "Sync complete with %d conflict(s). Server version used."
)

// SyncState is the outcome of the most recent sync attempt.
type SyncState string

const (
	SyncIdle       SyncState = "idle"
	SyncRunning    SyncState = "syncing"
	SyncSucceeded  SyncState = "synced"
	SyncConflicted SyncState = "conflicts"
	SyncFailed     SyncState = "failed"
	SyncSkipped    SyncState = "skipped"
)

// SyncReport describes one sync attempt.
type SyncReport struct {
	State      SyncState `json:"state"`
	Message    string    `json:"message"`
	Conflicts  int       `json:"conflicts"`
	Fetched    int       `json:"fetched"`
	Total      int       `json:"total"`
	Pushed     bool      `json:"pushed"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Collection is the quote store a sync reconciles against.
type Collection interface {
	Quotes(ctx context.Context) []domain.Quote
	Reconcile(ctx context.Context, remote []domain.Quote) domain.MergeResult
}

// SyncService periodically pushes the local collection to the remote source,
// fetches the remote collection and merges it in with remote precedence.
// At most one sync runs at a time; overlapping requests are skipped.
type SyncService struct {
	quotes   Collection
	remote   ports.RemoteQuoteSource
	notifier ports.StatusNotifier
	flags    ports.FeatureFlags
	metrics  *telemetry.SyncMetrics
	executor *Executor
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	inFlight atomic.Bool

	mu   sync.RWMutex
	last SyncReport
}

// SyncServiceConfig contains configuration for the sync service.
type SyncServiceConfig struct {
	Quotes   Collection
	Remote   ports.RemoteQuoteSource
	Notifier ports.StatusNotifier
	Flags    ports.FeatureFlags
	Metrics  *telemetry.SyncMetrics
	Logger   *slog.Logger

	// Interval between automatic syncs. Defaults to DefaultSyncInterval.
	Interval time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewSyncService creates a sync service with the provided dependencies.
func NewSyncService(cfg SyncServiceConfig) *SyncService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}

	return &SyncService{
		quotes:   cfg.Quotes,
		remote:   cfg.Remote,
		notifier: notifier,
		flags:    cfg.Flags,
		metrics:  cfg.Metrics,
		executor: NewExecutor(logger),
		logger:   logger,
		interval: interval,
		now:      now,
		last:     SyncReport{State: SyncIdle},
	}
}

// Run syncs every interval until ctx is cancelled. The first sync happens one
// interval after Run is called.
func (s *SyncService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "sync loop started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "sync loop stopped")
			return nil
		case <-ticker.C:
			s.SyncOnce(ctx)
		}
	}
}

// Status returns the report of the most recent sync attempt.
func (s *SyncService) Status() SyncReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.last
}

// syncOutcome carries the fetched collection through the verify and archive
// stages.
type syncOutcome struct {
	remote []domain.Quote
	merge  domain.MergeResult
}

// SyncOnce performs one push, fetch and merge cycle. Failures never touch
// the local collection and are reported rather than returned. A started sync
// runs to completion: cancellation of ctx is ignored, its values are kept.
func (s *SyncService) SyncOnce(ctx context.Context) SyncReport {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.DebugContext(ctx, "sync already in flight, skipping")
		s.metrics.ObserveSkipped()

		return SyncReport{State: SyncSkipped, Message: StatusSkipped, StartedAt: s.now()}
	}
	defer s.inFlight.Store(false)

	ctx = context.WithoutCancel(ctx)

	ctx, span := telemetry.StartSpan(ctx, "sync.run")
	defer span.End()

	started := s.now()
	s.record(SyncReport{State: SyncRunning, Message: StatusSyncing, StartedAt: started})
	s.notifier.Status(ctx, StatusSyncing)

	local := s.quotes.Quotes(ctx)
	pushed := s.push(ctx, local)

	op := Operation[[]domain.Quote, []domain.Quote, *syncOutcome, SyncReport]{
		Name: "sync_quotes",
		Perform: func(ctx context.Context, _ []domain.Quote) ([]domain.Quote, error) {
			return s.remote.FetchQuotes(ctx)
		},
		Verify: func(_ context.Context, _ []domain.Quote, fetched []domain.Quote) (*syncOutcome, error) {
			return &syncOutcome{remote: domain.ValidQuotes(fetched)}, nil
		},
		Archive: func(ctx context.Context, _ []domain.Quote, outcome *syncOutcome) error {
			outcome.merge = s.quotes.Reconcile(ctx, outcome.remote)
			return nil
		},
		Respond: func(_ context.Context, _ []domain.Quote, outcome *syncOutcome) (SyncReport, error) {
			report := SyncReport{
				State:     SyncSucceeded,
				Message:   StatusSynced,
				Conflicts: outcome.merge.Conflicts,
				Fetched:   len(outcome.remote),
				Total:     len(outcome.merge.Merged),
				Pushed:    pushed,
				StartedAt: started,
			}

			if report.Conflicts > 0 {
				report.State = SyncConflicted
				report.Message = fmt.Sprintf(statusConflictsFormat, report.Conflicts)
			}

			return report, nil
		},
	}

	report, err := Execute(ctx, s.executor, op, local)
	if err != nil {
		report = SyncReport{
			State:     SyncFailed,
			Message:   StatusFailed,
			Pushed:    pushed,
			Error:     err.Error(),
			StartedAt: started,
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "sync failed")
	}

	span.SetAttributes(
		attribute.String("sync.state", string(report.State)),
		attribute.Int("sync.conflicts", report.Conflicts),
		attribute.Int("sync.fetched", report.Fetched),
	)

	report.FinishedAt = s.now()
	s.record(report)
	s.notifier.Status(ctx, report.Message)

	if report.Conflicts > 0 && s.enabled(ctx, ports.FlagSyncConflictNotice) {
		s.notifier.ConflictNotice(ctx, report.Conflicts)
	}

	size := report.Total
	if report.State == SyncFailed {
		size = -1
	}

	s.metrics.ObserveSync(string(report.State), report.Conflicts, size, report.FinishedAt.Sub(started))

	return report
}

// push sends local to the remote source. The outcome of the push does not
// affect the rest of the sync.
func (s *SyncService) push(ctx context.Context, local []domain.Quote) bool {
	if !s.enabled(ctx, ports.FlagSyncPush) {
		return false
	}

	if err := s.remote.PushQuotes(ctx, local); err != nil {
		s.logger.WarnContext(ctx, "pushing quotes failed", slog.Any("error", err))
		return false
	}

	return true
}

func (s *SyncService) enabled(ctx context.Context, flag string) bool {
	if s.flags == nil {
		return true
	}

	return s.flags.IsEnabled(ctx, flag, true)
}

func (s *SyncService) record(report SyncReport) {
	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
}

type discardNotifier struct{}

func (discardNotifier) Status(context.Context, string)      {}
func (discardNotifier) ConflictNotice(context.Context, int) {}
