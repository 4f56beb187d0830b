// Package database opens the relational store behind raid records, signups
// and player profiles, and inspects its live schema.
//
// Connect supports two drivers. sqlite (the default) keeps everything in one
// local file and is limited to a single open connection. mysql is used for
// shared deployments and gets a pooled connection with DSN level timeouts.
//
// GetTableColumns reads the live column list of a table; the integrity
// feature compares it against the GORM models.
//
//	db, err := database.Connect(cfg.Database)
//	columns, err := database.GetTableColumns(db, "raids")
package database
