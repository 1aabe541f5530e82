package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	BindServerFlags(flags)
	return flags
}

func TestDefaultConfig_ReturnsExpectedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, DefaultServerConfig(), cfg.Server)
}

func TestNewManager_StartsWithDefaults(t *testing.T) {
	manager := NewManager()
	require.NotNil(t, manager.koanfInstance)
	assert.Equal(t, DefaultConfig(), manager.Get())
}

func TestManager_Load_LoadsDefaultsWhenNoFlags(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load(nil, ""))

	cfg := manager.Get()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.Addr)
	assert.True(t, cfg.Server.OpenBrowser)
}

func TestManager_Load_OverridesWithFlags(t *testing.T) {
	flags := newTestFlagSet()
	require.NoError(t, flags.Parse([]string{"--server.port=9000", "--server.open_browser=false"}))

	manager := NewManager()
	require.NoError(t, manager.Load(flags, ""))

	cfg := manager.Get()
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Server.OpenBrowser)
}

func TestManager_Load_DebugFlag(t *testing.T) {
	flags := newTestFlagSet()
	require.NoError(t, flags.Parse([]string{"--debug"}))

	manager := NewManager()
	require.NoError(t, manager.Load(flags, ""))
	assert.Equal(t, "debug", manager.Get().Log.Level)
}

func TestManager_Load_FileThenEnvThenFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mobileserver.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 8100\n  addr: 127.0.0.1\n"), 0o644))
	t.Setenv("MOBILESERVER_SERVER_PORT", "8200")

	manager := NewManager()
	require.NoError(t, manager.Load(nil, configPath))
	cfg := manager.Get()
	assert.Equal(t, 8200, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "127.0.0.1", cfg.Server.Addr)

	flags := newTestFlagSet()
	require.NoError(t, flags.Parse([]string{"--server.port=8300"}))
	manager = NewManager()
	require.NoError(t, manager.Load(flags, configPath))
	assert.Equal(t, 8300, manager.Get().Server.Port, "flags override env")
}

func TestManager_Validate(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load(nil, ""))
	require.NoError(t, manager.Validate())

	t.Setenv("MOBILESERVER_LOG_LEVEL", "loud")
	manager = NewManager()
	require.NoError(t, manager.Load(nil, ""))
	require.Error(t, manager.Validate())
}

func TestDefaultConfigAsMap_CoversServerKeys(t *testing.T) {
	m := DefaultConfigAsMap()
	for _, key := range []string{
		"server.addr",
		"server.port",
		"server.root_dir",
		"server.open_browser",
		"server.watch",
		"server.probe_addr",
		"server.shutdown_timeout",
	} {
		assert.Contains(t, m, key)
	}
}
