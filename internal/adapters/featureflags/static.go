// Package featureflags implements ports.FeatureFlags on top of the static
// "features" section of the service configuration.
package featureflags

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// keyDelim keeps dotted flag names flat.
const keyDelim = "\x00"

// Static serves flags from an in-memory set. Values are coerced the way the
// config layer coerces them, so "true", 1 and true are all enabled.
type Static struct {
	mu     sync.RWMutex
	k      *koanf.Koanf
	logger *slog.Logger
}

// NewStatic loads flags. A nil logger falls back to slog.Default().
func NewStatic(flags map[string]any, logger *slog.Logger) (*Static, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Static{logger: logger.With(slog.String("component", "featureflags.Static"))}
	if err := s.Replace(flags); err != nil {
		return nil, err
	}

	return s, nil
}

// Replace swaps the whole flag set.
func (s *Static) Replace(flags map[string]any) error {
	k := koanf.New(keyDelim)
	if err := k.Load(confmap.Provider(maps.Clone(flags), keyDelim), nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.k = k
	s.mu.Unlock()

	s.logger.Debug("feature flags loaded", slog.Int("count", len(k.Keys())))

	return nil
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(ctx context.Context, flag string, defaultValue bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(flag) {
		return defaultValue
	}

	v := s.k.Bool(flag)
	s.logger.DebugContext(ctx, "feature flag evaluated", slog.String("flag", flag), slog.Bool("enabled", v))

	return v
}

// GetString implements ports.FeatureFlags.
func (s *Static) GetString(_ context.Context, flag string, defaultValue string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(flag) {
		return defaultValue
	}

	return s.k.String(flag)
}

// GetInt implements ports.FeatureFlags.
func (s *Static) GetInt(_ context.Context, flag string, defaultValue int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(flag) {
		return defaultValue
	}

	return s.k.Int(flag)
}

// All returns a copy of the current flag set.
func (s *Static) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.k.All()
}
