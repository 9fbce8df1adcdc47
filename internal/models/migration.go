package models

import "time"

type MigrationRecord struct {
	Version   string    `json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}

// MigrationScript is the parsed content of one version file.
type MigrationScript struct {
	Version string
	Up      string
	Down    string
}

type MigrationStatus struct {
	Version   string     `json:"version"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}
