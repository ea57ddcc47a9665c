package featureflags

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync-service/internal/ports"
)

var _ ports.FeatureFlags = (*Static)(nil)

func newTestFlags(t *testing.T, flags map[string]any) *Static {
	t.Helper()

	s, err := NewStatic(flags, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return s
}

func TestStatic_IsEnabled(t *testing.T) {
	flags := newTestFlags(t, map[string]any{
		ports.FlagSyncPush:           false,
		ports.FlagSyncConflictNotice: "true",
		"numeric":                    1,
		"dotted.name":                true,
	})
	ctx := context.Background()

	assert.False(t, flags.IsEnabled(ctx, ports.FlagSyncPush, true))
	assert.True(t, flags.IsEnabled(ctx, ports.FlagSyncConflictNotice, false))
	assert.True(t, flags.IsEnabled(ctx, "numeric", false))
	assert.True(t, flags.IsEnabled(ctx, "dotted.name", false))
	assert.True(t, flags.IsEnabled(ctx, "missing", true))
	assert.False(t, flags.IsEnabled(ctx, "missing", false))
}

func TestStatic_GetStringAndInt(t *testing.T) {
	flags := newTestFlags(t, map[string]any{
		"banner":     "hello",
		"batch-size": "25",
		"retries":    3,
	})
	ctx := context.Background()

	assert.Equal(t, "hello", flags.GetString(ctx, "banner", "default"))
	assert.Equal(t, "default", flags.GetString(ctx, "missing", "default"))
	assert.Equal(t, 25, flags.GetInt(ctx, "batch-size", 0))
	assert.Equal(t, 3, flags.GetInt(ctx, "retries", 0))
	assert.Equal(t, 7, flags.GetInt(ctx, "missing", 7))
}

func TestStatic_Replace(t *testing.T) {
	flags := newTestFlags(t, map[string]any{ports.FlagSyncPush: true})
	ctx := context.Background()

	require.NoError(t, flags.Replace(map[string]any{ports.FlagSyncPush: false}))

	assert.False(t, flags.IsEnabled(ctx, ports.FlagSyncPush, true))
	assert.Equal(t, map[string]any{ports.FlagSyncPush: false}, flags.All())
}

func TestStatic_NilFlags(t *testing.T) {
	flags, err := NewStatic(nil, nil)
	require.NoError(t, err)

	assert.True(t, flags.IsEnabled(context.Background(), ports.FlagSyncPush, true))
	assert.Empty(t, flags.All())
}
