package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsBaselineProfile(t *testing.T) {
	os.Unsetenv("TEXC_PROFILE")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "baseline", cfg.DefaultProfile)
	assert.Equal(t, "info", cfg.Logging.Level)

	baseline, ok := cfg.Profiles["baseline"]
	require.True(t, ok)
	assert.Equal(t, uint32(0), baseline.FootprintID)

	w, h := baseline.Footprint(4096, 4096)
	assert.Equal(t, uint16(1024), w)
	assert.Equal(t, uint16(1024), h)
}

func TestLoadWithOverridesAppliesProfileAndLogLevel(t *testing.T) {
	cfg, err := LoadWithOverrides(LoadOptions{Profile: "tiered", LogLevel: "debug"})
	require.NoError(t, err)

	assert.Equal(t, "tiered", cfg.DefaultProfile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadWithOverridesReadsEnvWhenOptionsEmpty(t *testing.T) {
	os.Setenv("TEXC_PROFILE", "tiered")
	os.Setenv("LOG_LEVEL", "warn")
	defer os.Unsetenv("TEXC_PROFILE")
	defer os.Unsetenv("LOG_LEVEL")

	cfg, err := LoadWithOverrides(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "tiered", cfg.DefaultProfile)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaultProfile: custom
profiles:
  custom:
    footprintID: 3
    width: 256
    height: 512
logging:
  level: error
`), 0o644))

	cfg, err := LoadWithOverrides(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.DefaultProfile)
	custom := cfg.Profiles["custom"]
	w, h := custom.Footprint(9999, 9999)
	assert.Equal(t, uint16(256), w)
	assert.Equal(t, uint16(512), h)
}

func TestTieredProfileSelectsFootprintByLargerDimension(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	tiered := cfg.Profiles["tiered"]

	cases := []struct {
		w, h uint32
		want uint16
	}{
		{32, 32, 16},
		{100, 50, 64},
		{200, 900, 512},
		{2048, 2048, 512},
	}
	for _, c := range cases {
		w, h := tiered.Footprint(c.w, c.h)
		assert.Equal(t, c.want, w)
		assert.Equal(t, c.want, h)
	}
}

func TestValidateRejectsUnknownDefaultProfile(t *testing.T) {
	cfg := &Config{
		DefaultProfile: "missing",
		Profiles:       map[string]Profile{"baseline": {Width: 1024, Height: 1024}},
		Logging:        LoggingConfig{Level: "info"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not defined")
}

func TestValidateRejectsFootprintIDOutOfRange(t *testing.T) {
	cfg := &Config{
		DefaultProfile: "baseline",
		Profiles:       map[string]Profile{"baseline": {FootprintID: 25, Width: 1024, Height: 1024}},
		Logging:        LoggingConfig{Level: "info"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radix-25")
}

func TestValidateRejectsZeroDimensionProfile(t *testing.T) {
	cfg := &Config{
		DefaultProfile: "baseline",
		Profiles:       map[string]Profile{"baseline": {}},
		Logging:        LoggingConfig{Level: "info"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width/height must be positive")
}

func TestValidateRejectsInvalidLogLevel(t *testing.T) {
	cfg := &Config{
		DefaultProfile: "baseline",
		Profiles:       map[string]Profile{"baseline": {Width: 1024, Height: 1024}},
		Logging:        LoggingConfig{Level: "verbose"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestGetGlobalConfigReflectsLastLoad(t *testing.T) {
	_, err := LoadWithOverrides(LoadOptions{Profile: "tiered"})
	require.NoError(t, err)

	got := GetGlobalConfig()
	require.NotNil(t, got)
	assert.Equal(t, "tiered", got.DefaultProfile)
}

func TestParseLevel(t *testing.T) {
	n, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = parseLevel("bogus")
	assert.Error(t, err)
}
