package raid

import "time"

// Config holds reconciliation settings.
type Config struct {
	// CreateEvents enables scheduled events for future raids.
	CreateEvents bool `mapstructure:"create_events" default:"true"`
	// EventLeewaySeconds is how far in the future a raid must start to get an event.
	EventLeewaySeconds int64 `mapstructure:"event_leeway_seconds" default:"300"`
	// DefaultDurationSeconds is used when a raid has no usable end time.
	DefaultDurationSeconds int64 `mapstructure:"default_duration_seconds" default:"10800"`
	// EventLocation is shown on scheduled events.
	EventLocation string `mapstructure:"event_location" default:"In-game (WoW)"`
	// ChannelFallback receives raids whose difficulty has no dedicated channel.
	ChannelFallback string `mapstructure:"channel_fallback" default:""`
	// ChannelNormal receives NORMAL raids.
	ChannelNormal string `mapstructure:"channel_normal" default:""`
	// ChannelHeroic receives HEROIC raids.
	ChannelHeroic string `mapstructure:"channel_heroic" default:""`
	// ChannelMythic receives MYTHIC raids.
	ChannelMythic string `mapstructure:"channel_mythic" default:""`
	// RefreshDebounceMs is the signup refresh coalescing window.
	RefreshDebounceMs int `mapstructure:"refresh_debounce_ms" default:"1200"`
	// DestinationCacheSeconds caches opened channels; 0 disables caching.
	DestinationCacheSeconds int `mapstructure:"destination_cache_seconds" default:"60"`
}

// Leeway returns EventLeewaySeconds as a duration.
func (c Config) Leeway() time.Duration {
	return time.Duration(c.EventLeewaySeconds) * time.Second
}

// RefreshDelay returns the debounce window, defaulting to 1.2s.
func (c Config) RefreshDelay() time.Duration {
	if c.RefreshDebounceMs <= 0 {
		return 1200 * time.Millisecond
	}
	return time.Duration(c.RefreshDebounceMs) * time.Millisecond
}

// DestinationTTL returns how long opened channels are cached.
func (c Config) DestinationTTL() time.Duration {
	return time.Duration(c.DestinationCacheSeconds) * time.Second
}
