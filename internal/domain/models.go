package domain

import (
	"time"
)

// Winner identifies which side of a match won.
type Winner string

const (
	WinnerA Winner = "A"
	WinnerB Winner = "B"
)

func (w Winner) Valid() bool {
	return w == WinnerA || w == WinnerB
}

// Track selects one of the two independent rating dimensions. Only the
// general track is mutated by match recording; the regular track is a
// seed value changed through administrative sets only.
type Track string

const (
	TrackRegular Track = "regular"
	TrackGeneral Track = "general"
)

func (t Track) Valid() bool {
	return t == TrackRegular || t == TrackGeneral
}

type Player struct {
	DiscordID   string
	Name        string
	MMRRegular  int
	MMRGeneral  int
	GamesPlayed int
	MaxMMR      int
	Wins        int
	Losses      int
}

type Team struct {
	ID        int64
	Name      string
	MemberIDs []string
	SeedMMR   int
}

type Match struct {
	ID        int64
	TeamA     []string
	TeamB     []string
	Winner    Winner
	MMRDelta  int
	CreatedAt time.Time
}

// RatingEvent is one player's rating movement caused by one match,
// appended in the same transaction as the match row.
type RatingEvent struct {
	ID           string // nanoid
	MatchID      int64
	DiscordID    string
	RatingBefore int
	RatingAfter  int
	Won          bool
	CreatedAt    time.Time
}
