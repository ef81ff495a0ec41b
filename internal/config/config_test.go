package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TICKERDECK_CONFIG", "")
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "yahoo", cfg.Market.Provider)
	require.Equal(t, 4, cfg.Market.Concurrency)
	require.Equal(t, 15*time.Second, cfg.Market.Timeout)
	require.Equal(t, "dark", cfg.UI.Theme)
	require.Equal(t, 5, cfg.UI.PreviewRows)
	require.Equal(t, filepath.Join(dir, ".local", "share", "tickerdeck", "tickerdeck.db"), cfg.Database.Path)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	data := `
[market]
provider = "Sheet"
sheet_url = "https://script.example/exec"
concurrency = 0
timeout = "3s"

[ui]
theme = "LIGHT"
preview_rows = 8
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("TICKERDECK_CONFIG", path)
	t.Setenv("TICKERDECK_SERVER_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sheet", cfg.Market.Provider)
	require.Equal(t, "https://script.example/exec", cfg.Market.SheetURL)
	require.Equal(t, 1, cfg.Market.Concurrency, "concurrency clamps to 1")
	require.Equal(t, 3*time.Second, cfg.Market.Timeout)
	require.Equal(t, "light", cfg.UI.Theme)
	require.Equal(t, 8, cfg.UI.PreviewRows)
	require.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TICKERDECK_MARKET_ALPACA_KEY=from-dotenv\n"), 0o600))
	t.Setenv("TICKERDECK_MARKET_ALPACA_KEY", "")
	require.NoError(t, os.Unsetenv("TICKERDECK_MARKET_ALPACA_KEY"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Market.AlpacaKey)
	require.NoError(t, os.Unsetenv("TICKERDECK_MARKET_ALPACA_KEY"))
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[market\nprovider ="), 0o600))
	t.Setenv("TICKERDECK_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
