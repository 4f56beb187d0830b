package checks

import (
	"time"

	"raidtrack/feature/ingest"
)

// PollerReport summarizes the export poller.
type PollerReport struct {
	Status     string     `json:"status"` // "ok", "stale", "error", "pending"
	File       string     `json:"file"`
	LastCheck  *time.Time `json:"lastCheck,omitempty"`
	LastChange *time.Time `json:"lastChange,omitempty"`
	LastError  string     `json:"lastError,omitempty"`
}

// CheckPoller grades a poller status. A poller that has not checked the
// file for three intervals is stale.
func CheckPoller(status ingest.Status, now time.Time) PollerReport {
	report := PollerReport{
		Status:     "ok",
		File:       status.File,
		LastCheck:  status.LastCheck,
		LastChange: status.LastChange,
		LastError:  status.LastError,
	}

	interval := time.Duration(status.IntervalSeconds) * time.Second
	switch {
	case status.LastError != "":
		report.Status = "error"
	case status.LastCheck == nil:
		report.Status = "pending"
	case interval > 0 && now.Sub(*status.LastCheck) > 3*interval:
		report.Status = "stale"
	}
	return report
}
