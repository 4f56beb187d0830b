package config

import (
	"errors"
	"reflect"
	"strings"

	"raidtrack/core/database"
	"raidtrack/core/logger"
	"raidtrack/core/server"
	"raidtrack/core/storage"
	"raidtrack/feature/discord"
	"raidtrack/feature/ingest"
	"raidtrack/feature/raid"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Discord holds the bot credentials and emoji settings.
	Discord discord.Config `mapstructure:"discord"`
	// Ingest holds the export file and poller settings.
	Ingest ingest.Config `mapstructure:"ingest"`
	// Raid holds channel routing and reconciliation settings.
	Raid raid.Config `mapstructure:"raid"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists, next to the working directory or under path
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Register every key with its `default` tag so AutomaticEnv can see it
	bindValues(v, Config{}, "")

	// 3. Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports settings the bot cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord.token (DISCORD_TOKEN) is required"))
	}
	if c.Ingest.File == "" {
		errs = append(errs, errors.New("ingest.file (INGEST_FILE) is required"))
	}
	if c.Raid.ChannelFallback == "" && c.Raid.ChannelNormal == "" &&
		c.Raid.ChannelHeroic == "" && c.Raid.ChannelMythic == "" {
		errs = append(errs, errors.New("at least one raid channel (RAID_CHANNEL_FALLBACK, ...) is required"))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip fields viper does not know about
		if tag == "" {
			continue
		}

		// Build the dotted key (discord.token, raid.channel_heroic)
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Nested sections recurse with their own prefix
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
