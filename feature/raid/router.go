package raid

import "strings"

// Router maps a difficulty to the channel its announcement goes to.
type Router struct {
	fallback string
	channels map[string]string
}

// NewRouter builds a router from the configured channels.
func NewRouter(cfg Config) *Router {
	channels := make(map[string]string, 3)
	for tier, ch := range map[Tier]string{
		TierNormal: cfg.ChannelNormal,
		TierHeroic: cfg.ChannelHeroic,
		TierMythic: cfg.ChannelMythic,
	} {
		if ch = strings.TrimSpace(ch); ch != "" {
			channels[string(tier)] = ch
		}
	}
	return &Router{fallback: strings.TrimSpace(cfg.ChannelFallback), channels: channels}
}

// Route returns the channel for difficulty, or the fallback channel.
func (r *Router) Route(difficulty string) (string, bool) {
	if ch, ok := r.channels[strings.ToUpper(strings.TrimSpace(difficulty))]; ok {
		return ch, true
	}
	return r.fallback, r.fallback != ""
}
