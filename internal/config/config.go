// Package config provides configuration types and defaults for datecalc.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/tracing"
)

// Config holds all configuration options for datecalc.
type Config struct {
	// DBPath is the history database file. Empty means DefaultDBPath().
	DBPath string `mapstructure:"db_path"`

	// Watch follows history changes made by other processes.
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`

	Calendar CalendarConfig `mapstructure:"calendar"`
	UI       UIConfig       `mapstructure:"ui"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// CalendarConfig controls the month grids.
type CalendarConfig struct {
	FirstDayOfWeek  string `mapstructure:"first_day_of_week"` // "monday" (default) through "sunday"
	ShowWeekNumbers bool   `mapstructure:"show_week_numbers"`
	ShowOutsideDays bool   `mapstructure:"show_outside_days"`
}

// Weekday parses FirstDayOfWeek. Empty means Monday.
func (c CalendarConfig) Weekday() (time.Weekday, error) {
	if c.FirstDayOfWeek == "" {
		return time.Monday, nil
	}
	name := strings.ToLower(strings.TrimSpace(c.FirstDayOfWeek))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("calendar.first_day_of_week: unknown weekday %q", c.FirstDayOfWeek)
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "dracula", "nord",
	// "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens, either nested
	//   colors:
	//     calendar:
	//       today: "#FF0000"
	// or as quoted dot notation ("calendar.today": "#FF0000").
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors with dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// yaml can hand back map[any]any for nested mappings
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/datecalc/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// TracerConfig converts to the tracing package's config, filling the file
// path default.
func (t TracingConfig) TracerConfig() tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = t.Enabled
	if t.Exporter != "" {
		tc.Exporter = t.Exporter
	}
	tc.FilePath = t.FilePath
	if tc.FilePath == "" {
		tc.FilePath = DefaultTracesFilePath()
	}
	if t.OTLPEndpoint != "" {
		tc.OTLPEndpoint = t.OTLPEndpoint
	}
	if t.SampleRate > 0 {
		tc.SampleRate = t.SampleRate
	}
	return tc
}

// CacheConfig controls the summary cache.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Dir returns ~/.config/datecalc, or "" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "datecalc")
}

// DefaultDBPath returns ~/.config/datecalc/history.db.
func DefaultDBPath() string {
	dir := Dir()
	if dir == "" {
		return "history.db"
	}
	return filepath.Join(dir, "history.db")
}

// DefaultTracesFilePath returns ~/.config/datecalc/traces/traces.jsonl or
// empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ResolvedDBPath returns DBPath, falling back to DefaultDBPath.
func (c Config) ResolvedDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if _, err := c.Calendar.Weekday(); err != nil {
		return err
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %v", c.WatchDebounce)
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateCache rejects negative durations. Zero values use defaults.
func ValidateCache(cache CacheConfig) error {
	if cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cache.TTL)
	}
	if cache.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %v", cache.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" && !tracing.ValidExporter(t.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	// Path requirements only matter when tracing is on.
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Watch:         true,
		WatchDebounce: 200 * time.Millisecond,
		Calendar: CalendarConfig{
			FirstDayOfWeek:  "monday",
			ShowWeekNumbers: true,
			ShowOutsideDays: true,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Cache: CacheConfig{
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# datecalc configuration

# History database (default: ~/.config/datecalc/history.db)
# db_path: /path/to/history.db

# Follow locations opened from other terminals ("datecalc open ...")
watch: true
watch_debounce: 200ms

calendar:
  first_day_of_week: monday   # monday .. sunday
  show_week_numbers: true     # ISO week numbers
  show_outside_days: true     # days of the previous/next month

ui:
  markdown_style: dark        # help rendering: "dark" or "light"

# Theme
# theme:
#   preset: catppuccin-mocha  # default, catppuccin-mocha, dracula, nord, high-contrast
#   mode: dark                # force "dark" or "light"
#   colors:
#     calendar.today: "#FECA57"
#     calendar.selected: "#3498DB"

# Summary cache
cache:
  ttl: 5m
  cleanup_interval: 10m

# Tracing of sync passes and history writes
# tracing:
#   enabled: true
#   exporter: file            # none, file, stdout, otlp
#   file_path: ~/.config/datecalc/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "creating config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "writing config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
