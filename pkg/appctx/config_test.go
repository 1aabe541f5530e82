package appctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alicepisa/mobileserver/pkg/config"
)

func TestConfigRoundTrip(t *testing.T) {
	manager := config.NewManager()

	got, ok := Config(WithConfig(context.Background(), manager))
	require.True(t, ok)
	require.Same(t, manager, got)

	//nolint:staticcheck
	got, ok = Config(WithConfig(nil, manager))
	require.True(t, ok, "nil parent context falls back to Background")
	require.Same(t, manager, got)
}

func TestConfigMissing(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"nil context", nil},
		{"not stored", context.Background()},
		{"nil manager", context.WithValue(context.Background(), configKey, (*config.Manager)(nil))},
		{"wrong type", context.WithValue(context.Background(), configKey, "not a manager")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Config(tt.ctx)
			require.False(t, ok)
		})
	}
}
