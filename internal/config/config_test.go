package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.File)
	assert.True(t, cfg.ConfirmExit)
	assert.Equal(t, YearRange{First: 2017, Last: 2020}, cfg.Years)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2017, cfg.Years.First)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "file: /data/home.rem\nconfirm_exit: false\nyears:\n  first: 2019\n  last: 2030\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("REM_YEARS_LAST", "2040")
	t.Setenv("REM_LOG_FILE", "/tmp/rem.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/home.rem", cfg.File)
	assert.False(t, cfg.ConfirmExit)
	assert.Equal(t, 2019, cfg.Years.First)
	assert.Equal(t, 2040, cfg.Years.Last)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/rem.log", cfg.Log.File)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestValidate(t *testing.T) {
	cfg := Config{Years: YearRange{First: 2021, Last: 2020}, Log: LogConfig{Level: "info"}}
	assert.ErrorContains(t, cfg.Validate(), "years.first")

	cfg = Config{Years: YearRange{First: 2017, Last: 2020}, Log: LogConfig{Level: "loud"}}
	assert.ErrorContains(t, cfg.Validate(), "log.level")

	cfg = Config{Years: YearRange{First: 2017, Last: 2017}, Log: LogConfig{Level: "WARN"}}
	assert.NoError(t, cfg.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "years.first", envKey("REM_YEARS_FIRST"))
	assert.Equal(t, "log.level", envKey("REM_LOG_LEVEL"))
	assert.Equal(t, "confirm_exit", envKey("REM_CONFIRM_EXIT"))
	assert.Equal(t, "file", envKey("REM_FILE"))
}
