package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.Debounce.Std())
	assert.Equal(t, "Search for country", cfg.UI.Placeholder)
}

func TestLoadOverrides(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "environment variables",
			setup: func(t *testing.T) {
				t.Setenv("TYPEAHEAD_UI_DEBOUNCE", "300ms")
				t.Setenv("TYPEAHEAD_SIMULATION_ERROR_RATE", "0.5")
				t.Setenv("TYPEAHEAD_SIMULATION_ENABLED", "true")
				t.Setenv("TYPEAHEAD_SIMULATION_SEED", "42")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 300*time.Millisecond, cfg.UI.Debounce.Std())
				assert.Equal(t, 0.5, cfg.Simulation.ErrorRate)
				assert.True(t, cfg.Simulation.Enabled)
				assert.Equal(t, uint64(42), cfg.Simulation.Seed)
			},
		},
		{
			name: "source settings",
			setup: func(t *testing.T) {
				t.Setenv("TYPEAHEAD_SOURCE_URL", "http://localhost:8080/options.json")
				t.Setenv("TYPEAHEAD_SOURCE_FIELD", "name")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:8080/options.json", cfg.Source.URL)
				assert.Equal(t, "name", cfg.Source.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			cfg, err := Load(NewViper())
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"error rate above one", "simulation.error_rate", 1.5},
		{"negative error rate", "simulation.error_rate", -0.1},
		{"bad duration", "ui.debounce", "soon"},
		{"negative debounce", "ui.debounce", "-1s"},
		{"empty url", "source.url", ""},
		{"unknown log level", "log.level", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViper()
			v.Set(tt.key, tt.val)

			cfg, err := Load(v)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestEmptyURLAllowedOffline(t *testing.T) {
	v := NewViper()
	v.Set("source.url", "")
	v.Set("source.offline", true)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.True(t, cfg.Source.Offline)
}

func TestSaveAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.UI.Debounce = Duration(250 * time.Millisecond)
	cfg.Simulation.Enabled = true
	cfg.Simulation.Seed = 7
	cfg.Log.File = "/tmp/typeahead.log"
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "250ms")
	assert.Contains(t, string(data), "[simulation]")

	v := NewViper()
	require.NoError(t, ReadFile(v, path, true))
	loaded, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestFlagsBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nplaceholder = 'from file'\n"), 0o644))

	v := NewViper()
	require.NoError(t, ReadFile(v, path, true))
	v.Set("ui.placeholder", "from flag")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from flag", cfg.UI.Placeholder)
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	assert.NoError(t, ReadFile(NewViper(), path, false))
	assert.Error(t, ReadFile(NewViper(), path, true))
	assert.NoError(t, ReadFile(NewViper(), "", true))
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte(" 1m30s ")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("fast")))
}
