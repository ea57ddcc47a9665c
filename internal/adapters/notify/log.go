// Package notify delivers user-facing sync messages.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quote-sync-service/internal/platform/logging"
)

const conflictNoticeFormat = "%d conflict(s) resolved in favor of server data."

// Notice is one message raised to the user.
type Notice struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notice kinds.
const (
	KindStatus   = "status"
	KindConflict = "conflict"
)

// LogNotifier implements ports.StatusNotifier by writing each message as a
// structured log line and keeping the most recent notices for the API.
type LogNotifier struct {
	logger *slog.Logger
	limit  int
	now    func() time.Time

	mu      sync.Mutex
	notices []Notice
}

// NewLogNotifier keeps up to limit recent notices. limit <= 0 keeps none.
func NewLogNotifier(logger *slog.Logger, limit int) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogNotifier{
		logger: logger.With(slog.String("component", "notify.LogNotifier")),
		limit:  limit,
		now:    time.Now,
	}
}

// Status logs the sync status line.
func (n *LogNotifier) Status(ctx context.Context, message string) {
	logging.FromContextOr(ctx, n.logger).InfoContext(ctx, message, slog.String("notice", KindStatus))
	n.keep(KindStatus, message)
}

// ConflictNotice logs a warning naming the number of overwritten quotes.
func (n *LogNotifier) ConflictNotice(ctx context.Context, conflicts int) {
	message := fmt.Sprintf(conflictNoticeFormat, conflicts)

	logging.FromContextOr(ctx, n.logger).WarnContext(ctx, message,
		slog.String("notice", KindConflict),
		slog.Int("conflicts", conflicts),
	)
	n.keep(KindConflict, message)
}

// Recent returns the retained notices, oldest first.
func (n *LogNotifier) Recent() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notice, len(n.notices))
	copy(out, n.notices)

	return out
}

func (n *LogNotifier) keep(kind, message string) {
	if n.limit <= 0 {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.notices = append(n.notices, Notice{Kind: kind, Message: message, At: n.now()})
	if over := len(n.notices) - n.limit; over > 0 {
		n.notices = append(n.notices[:0:0], n.notices[over:]...)
	}
}
