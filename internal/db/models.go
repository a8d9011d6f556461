package db

import (
	"time"
)

type Player struct {
	DiscordID   string
	Name        string
	MmrRegular  int64
	MmrGeneral  int64
	GamesPlayed int64
	MaxMmr      int64
	Wins        int64
	Losses      int64
}

type Team struct {
	ID        int64
	Name      string
	MemberIds string
	SeedMmr   int64
}

type Match struct {
	ID        int64
	TeamA     string
	TeamB     string
	Winner    string
	MmrDelta  int64
	CreatedAt time.Time
}

type RatingEvent struct {
	ID           string
	MatchID      int64
	DiscordID    string
	RatingBefore int64
	RatingAfter  int64
	Won          bool
	CreatedAt    time.Time
}
