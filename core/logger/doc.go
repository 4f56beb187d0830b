// Package logger builds the zap loggers used across the service.
//
// Level debug selects zap's development preset (ISO8601 timestamps, caller
// info); every other level uses the production preset. Format console
// switches to colored, human readable output.
//
// Request handlers tag their logger with WithRayID so every line of one
// HTTP request can be correlated. Ingestion and reconciliation tag theirs
// with WithRaid.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	logger.WithRaid(log, guildID, raidID).Info("announcement edited")
package logger
