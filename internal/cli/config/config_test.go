package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid defaults",
			cfg:  Config{Theme: DefaultTheme, Serve: ServeConfig{Addr: DefaultAddr}},
		},
		{
			name: "valid dark theme",
			cfg:  Config{Theme: "dark", Serve: ServeConfig{Addr: ":8080"}},
		},
		{
			name:      "unknown theme",
			cfg:       Config{Theme: "solarized", Serve: ServeConfig{Addr: DefaultAddr}},
			wantErr:   true,
			errSubstr: `unknown theme "solarized"`,
		},
		{
			name:      "empty theme",
			cfg:       Config{Theme: "", Serve: ServeConfig{Addr: DefaultAddr}},
			wantErr:   true,
			errSubstr: "unknown theme",
		},
		{
			name:      "addr without port",
			cfg:       Config{Theme: DefaultTheme, Serve: ServeConfig{Addr: "localhost"}},
			wantErr:   true,
			errSubstr: "must be host:port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfig_Validate_ErrorListsThemes verifies that theme validation errors
// include the list of known themes.
func TestConfig_Validate_ErrorListsThemes(t *testing.T) {
	cfg := Config{Theme: "sepia", Serve: ServeConfig{Addr: DefaultAddr}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark, default, forest, neutral")
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"dark", "default", "forest", "neutral"}, ThemeNames())
}

// TestConfig_SiteConfig tests how the selected theme folds into the site map.
func TestConfig_SiteConfig(t *testing.T) {
	t.Run("default theme fills empty site", func(t *testing.T) {
		cfg := Config{Theme: DefaultTheme}
		site := cfg.SiteConfig()
		assert.Equal(t, DefaultTheme, site["theme"])
	})

	t.Run("site theme survives default selection", func(t *testing.T) {
		cfg := Config{Theme: DefaultTheme, Site: map[string]any{"theme": "forest"}}
		site := cfg.SiteConfig()
		assert.Equal(t, "forest", site["theme"], "an unselected default should not clobber the site theme")
	})

	t.Run("explicit theme overrides site theme", func(t *testing.T) {
		cfg := Config{Theme: "dark", Site: map[string]any{"theme": "forest"}}
		site := cfg.SiteConfig()
		assert.Equal(t, "dark", site["theme"])
	})

	t.Run("other site keys pass through", func(t *testing.T) {
		cfg := Config{Theme: DefaultTheme, Site: map[string]any{"pie": map[string]any{"textPosition": 0.6}}}
		site := cfg.SiteConfig()
		pie, ok := site["pie"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 0.6, pie["textPosition"])
	})

	t.Run("does not mutate the config", func(t *testing.T) {
		cfg := Config{Theme: "dark", Site: map[string]any{}}
		_ = cfg.SiteConfig()
		_, found := cfg.Site["theme"]
		assert.False(t, found)
	})
}

// TestLoadConfig_Defaults tests loading with no file, env vars, or flags.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultAddr, cfg.Serve.Addr)
	assert.Empty(t, cfg.Serve.Store)
	assert.Empty(t, cfg.Serve.Watch)
	assert.Empty(t, GetConfigFileUsed())
}

// TestLoadConfig_File tests loading from an explicit config file.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "scrawl.yaml")
	cfgContent := `theme: forest
serve:
  addr: 0.0.0.0:9999
site:
  pie:
    textPosition: 0.5
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "forest", cfg.Theme)
	assert.Equal(t, "0.0.0.0:9999", cfg.Serve.Addr)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Equal(t, cfg, GetCurrentConfig())

	pie, ok := cfg.Site["pie"].(map[string]any)
	require.True(t, ok, "site map should keep nested diagram config")
	assert.Equal(t, 0.5, pie["textPosition"])
}

// TestLoadConfig_InvalidTheme tests that validation runs on load.
func TestLoadConfig_InvalidTheme(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "scrawl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: sepia\n"), 0600))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "scrawl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: forest\n"), 0600))

	require.NoError(t, os.Setenv("SCRAWL_THEME", "dark"))
	defer func() { _ = os.Unsetenv("SCRAWL_THEME") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme, "env var should override config file")
}

// TestLoadConfig_EnvNestedKeys tests the SCRAWL_SERVE_ADDR -> serve.addr transform.
func TestLoadConfig_EnvNestedKeys(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("SCRAWL_SERVE_ADDR", "127.0.0.1:4000"))
	defer func() { _ = os.Unsetenv("SCRAWL_SERVE_ADDR") }()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4000", cfg.Serve.Addr)
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "scrawl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: forest\n"), 0600))

	require.NoError(t, os.Setenv("SCRAWL_THEME", "dark"))
	defer func() { _ = os.Unsetenv("SCRAWL_THEME") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("theme", DefaultTheme, "color theme")
	require.NoError(t, flags.Set("theme", "neutral"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "neutral", cfg.Theme, "flag value should override config file and env var")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("SCRAWL_THEME", "dark"))
	defer func() { _ = os.Unsetenv("SCRAWL_THEME") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("theme", DefaultTheme, "color theme")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme, "env var should be used when flag is not set")
}

// TestLoadConfig_ServeFlagMapping tests the addr/store/watch -> serve.* mapping.
func TestLoadConfig_ServeFlagMapping(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", DefaultAddr, "listen address")
	flags.String("store", "", "snippet database path")
	flags.String("watch", "", "directory to watch")
	require.NoError(t, flags.Set("addr", "localhost:9000"))
	require.NoError(t, flags.Set("store", "snips.db"))
	require.NoError(t, flags.Set("watch", "diagrams"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Serve.Addr)
	assert.Equal(t, "snips.db", cfg.Serve.Store)
	assert.Equal(t, "diagrams", cfg.Serve.Watch)
}

// TestLoadConfig_ConfigFlagIgnored tests that --config never becomes a config key.
func TestLoadConfig_ConfigFlagIgnored(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "scrawl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme: dark\n"), 0600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	require.NoError(t, flags.Set("config", cfgPath))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestResetConfig(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotNil(t, GetCurrentConfig())

	ResetConfig()
	assert.Nil(t, GetCurrentConfig())
	assert.Empty(t, GetConfigFileUsed())
}

func TestGetLogger(t *testing.T) {
	t.Run("missing logger falls back to discard", func(t *testing.T) {
		logger := GetLogger(context.Background())
		require.NotNil(t, logger)
		// Must not panic when used.
		logger.Debug("ignored")
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		want := slog.New(slog.NewTextHandler(os.Stderr, nil))
		ctx := context.WithValue(context.Background(), LoggerKey(), want)
		assert.Same(t, want, GetLogger(ctx))
	})
}
