package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// KeyDelimiter separates nested viper keys. Dots are left alone so that
// dotted color tokens such as "calendar.today" survive as map keys.
const KeyDelimiter = "::"

// Key joins nested config keys with KeyDelimiter.
func Key(parts ...string) string {
	return strings.Join(parts, KeyDelimiter)
}

// NewViper returns a viper instance using KeyDelimiter with defaults set.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	SetDefaults(v)
	return v
}

// SetDefaults registers Defaults() with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(Key("watch"), d.Watch)
	v.SetDefault(Key("watch_debounce"), d.WatchDebounce)
	v.SetDefault(Key("calendar", "first_day_of_week"), d.Calendar.FirstDayOfWeek)
	v.SetDefault(Key("calendar", "show_week_numbers"), d.Calendar.ShowWeekNumbers)
	v.SetDefault(Key("calendar", "show_outside_days"), d.Calendar.ShowOutsideDays)
	v.SetDefault(Key("ui", "markdown_style"), d.UI.MarkdownStyle)
	v.SetDefault(Key("tracing", "enabled"), d.Tracing.Enabled)
	v.SetDefault(Key("tracing", "exporter"), d.Tracing.Exporter)
	v.SetDefault(Key("tracing", "otlp_endpoint"), d.Tracing.OTLPEndpoint)
	v.SetDefault(Key("tracing", "sample_rate"), d.Tracing.SampleRate)
	v.SetDefault(Key("cache", "ttl"), d.Cache.TTL)
	v.SetDefault(Key("cache", "cleanup_interval"), d.Cache.CleanupInterval)
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
