package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.True(t, cfg.Watch)
	require.Equal(t, 200*time.Millisecond, cfg.WatchDebounce)
	require.Equal(t, "monday", cfg.Calendar.FirstDayOfWeek)
	require.True(t, cfg.Calendar.ShowWeekNumbers)
	require.True(t, cfg.Calendar.ShowOutsideDays)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.NoError(t, cfg.Validate())
}

func TestCalendarConfig_Weekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"", time.Monday, false},
		{"monday", time.Monday, false},
		{"Sunday", time.Sunday, false},
		{" saturday ", time.Saturday, false},
		{"funday", time.Monday, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CalendarConfig{FirstDayOfWeek: tt.in}.Weekday()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		msg    string
	}{
		{"weekday", func(c *Config) { c.Calendar.FirstDayOfWeek = "someday" }, "first_day_of_week"},
		{"debounce", func(c *Config) { c.WatchDebounce = -time.Second }, "watch_debounce"},
		{"markdown", func(c *Config) { c.UI.MarkdownStyle = "neon" }, "markdown_style"},
		{"cache ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
		{"cache cleanup", func(c *Config) { c.Cache.CleanupInterval = -time.Second }, "cache.cleanup_interval"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "exporter"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidateTracing_DisabledOTLPWithoutEndpoint(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{Exporter: "otlp"}))
}

func TestTracingConfig_TracerConfig(t *testing.T) {
	tc := TracingConfig{Enabled: true, Exporter: "stdout", SampleRate: 0.5}.TracerConfig()
	require.True(t, tc.Enabled)
	require.Equal(t, "stdout", tc.Exporter)
	require.InDelta(t, 0.5, tc.SampleRate, 1e-9)
	require.Equal(t, "localhost:4317", tc.OTLPEndpoint)
	require.Equal(t, "datecalc", tc.ServiceName)

	empty := TracingConfig{}.TracerConfig()
	require.Equal(t, "file", empty.Exporter)
	require.Equal(t, DefaultTracesFilePath(), empty.FilePath)
	require.InDelta(t, 1.0, empty.SampleRate, 1e-9)
}

func TestResolvedDBPath(t *testing.T) {
	require.Equal(t, "/tmp/x.db", Config{DBPath: "/tmp/x.db"}.ResolvedDBPath())
	require.Equal(t, DefaultDBPath(), Config{}.ResolvedDBPath())
	require.Equal(t, "history.db", filepath.Base(DefaultDBPath()))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaultConfigTemplate_LoadsAsDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
db_path: /data/history.db
watch: false
watch_debounce: 1s
calendar:
  first_day_of_week: sunday
  show_week_numbers: false
cache:
  ttl: 30s
`)
	require.Equal(t, "/data/history.db", cfg.DBPath)
	require.False(t, cfg.Watch)
	require.Equal(t, time.Second, cfg.WatchDebounce)
	require.Equal(t, "sunday", cfg.Calendar.FirstDayOfWeek)
	require.False(t, cfg.Calendar.ShowWeekNumbers)
	require.True(t, cfg.Calendar.ShowOutsideDays)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL)
	require.Equal(t, 10*time.Minute, cfg.Cache.CleanupInterval)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calendar:\n  first_day_of_week: someday\n"), 0o644))

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	_, err := Load(v)
	require.ErrorContains(t, err, "invalid config")
}

func TestKey(t *testing.T) {
	require.Equal(t, "calendar::first_day_of_week", Key("calendar", "first_day_of_week"))
	require.Equal(t, "watch", Key("watch"))
}
