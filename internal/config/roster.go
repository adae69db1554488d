package config

import (
	"strings"
	"time"
)

// RosterConfig selects where the player pool is loaded from.
type RosterConfig struct {
	// Source is one of SourceFixture, SourceCSV or SourceSQLite.
	Source string
	// Path is the CSV file or SQLite database; ignored for the fixture.
	Path         string
	LoadAttempts int
	Backoff      time.Duration
}

func loadRoster() RosterConfig {
	return RosterConfig{
		Source:       strings.ToLower(envOrDefault(envRosterSource, defaultRosterSource)),
		Path:         envOrDefault(envRosterPath, ""),
		LoadAttempts: intEnvOrDefault(envRosterAttempts, defaultRosterAttempts),
		Backoff:      durationEnvOrDefault(envRosterBackoff, defaultRosterBackoff),
	}
}
