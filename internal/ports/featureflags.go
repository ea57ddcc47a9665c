package ports

import (
	"context"
)

// Feature flag names evaluated by the service.
const (
	// FlagSyncPush controls whether a sync pushes the local collection before
	// fetching the remote one.
	FlagSyncPush = "sync-push"

	// FlagSyncConflictNotice controls whether conflicts raise a notice in
	// addition to the status line.
	FlagSyncConflictNotice = "sync-conflict-notice"
)

// FeatureFlags defines the contract for feature flag evaluation.
// This port allows the application to check feature enablement without
// knowing the underlying provider (static config, LaunchDarkly, Unleash, etc.).
//
// Always provide default values for graceful degradation:
//
//	if flags.IsEnabled(ctx, ports.FlagSyncPush, true) {
//	    s.push(ctx, local)
//	}
type FeatureFlags interface {
	// IsEnabled checks if a boolean feature flag is enabled.
	// Returns defaultValue if the flag doesn't exist or evaluation fails.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool

	// GetString retrieves a string feature flag value.
	// Returns defaultValue if the flag doesn't exist or evaluation fails.
	GetString(ctx context.Context, flag string, defaultValue string) string

	// GetInt retrieves an integer feature flag value.
	// Returns defaultValue if the flag doesn't exist or evaluation fails.
	GetInt(ctx context.Context, flag string, defaultValue int) int
}
