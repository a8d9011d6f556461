package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// MaxTeamSize bounds both registered teams and ad-hoc match rosters.
	MaxTeamSize = 6

	DefaultLeaderboardLimit = 10
	DefaultHistoryLimit     = 20
	DefaultMatchListLimit   = 20
)

const (
	// RecordRetryAttempts bounds how many times a match recording is
	// retried after a serialization conflict before the error surfaces.
	RecordRetryAttempts = 5
	RecordRetryBackoff  = 25 * time.Millisecond
)
