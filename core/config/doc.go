// Package config provides configuration management for raidtrack.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags
// of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and shutdown budget
//   - Log: logging level and format
//   - Database: sqlite or MySQL connection
//   - Storage: MinIO credentials and the snapshot bucket
//   - Discord: bot token, default guild and emoji map
//   - Ingest: export file location, keys and poll interval
//   - Raid: channel routing and scheduled event settings
//
// Environment variables use SECTION_KEY names, e.g. RAID_CHANNEL_HEROIC.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
