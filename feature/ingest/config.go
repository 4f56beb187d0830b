package ingest

import "time"

// Config holds the ingestion settings.
type Config struct {
	// File is the saved variables file to watch.
	File string `mapstructure:"file" default:"/data/RaidTrack.lua"`
	// ExportKey is the variable holding the JSON export.
	ExportKey string `mapstructure:"export_key" default:"RaidTrackExport"`
	// InstancesKey is the table holding raid records in Lua mode.
	InstancesKey string `mapstructure:"instances_key" default:"raidInstances"`
	// PresetsKey is the table holding raid presets in Lua mode.
	PresetsKey string `mapstructure:"presets_key" default:"raidPresets"`
	// PollSeconds is the polling interval; values below 5 are raised to 5.
	PollSeconds int `mapstructure:"poll_seconds" default:"60"`
	// Watch enables file system notifications on top of polling.
	Watch bool `mapstructure:"watch" default:"true"`
	// Archive stores every changed export in object storage.
	Archive bool `mapstructure:"archive" default:"false"`
	// ArchiveKeep is the number of archived exports kept.
	ArchiveKeep int `mapstructure:"archive_keep" default:"50"`
}

const minPollInterval = 5 * time.Second

// PollInterval returns the polling interval.
func (c Config) PollInterval() time.Duration {
	d := time.Duration(c.PollSeconds) * time.Second
	if d < minPollInterval {
		return minPollInterval
	}
	return d
}
