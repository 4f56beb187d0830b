package discord

import "raidtrack/feature/raid"

// Config holds the Discord connection settings.
type Config struct {
	// Token is the bot token.
	Token string `mapstructure:"token" default:""`
	// GuildID is the default scope for exports that do not name a guild.
	GuildID string `mapstructure:"guild_id" default:""`
	// EmojiMap lists custom class/spec emoji as "name:id" pairs.
	EmojiMap string `mapstructure:"emoji_map" default:""`
	// AllowExternalEmoji enables the custom emoji in EmojiMap.
	AllowExternalEmoji bool `mapstructure:"allow_external_emoji" default:"false"`
	// MemberLookups bounds concurrent member requests.
	MemberLookups int `mapstructure:"member_lookups" default:"4"`
}

// Icons builds the player icon resolver from the emoji settings.
func (c Config) Icons() raid.Icons {
	return raid.Icons{Custom: raid.ParseEmojiMap(c.EmojiMap), AllowCustom: c.AllowExternalEmoji}
}
