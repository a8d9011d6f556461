package rating

// Member is the rating-relevant view of one roster member.
type Member struct {
	Rating      int
	GamesPlayed int
}

// Result carries the outcome of applying a policy to one match. Ratings are
// in input order, already floored at zero. Delta is the winning-side
// magnitude recorded on the match row.
type Result struct {
	WinnerRatings []int
	LoserRatings  []int
	Delta         int
}

// Policy computes new general-track ratings for both sides of a match.
// Exactly one policy is active per deployment; the others stay available as
// alternatives.
type Policy interface {
	Name() string
	Apply(winners, losers []Member) Result
}

// Flat is the active default: every winner gains FlatDelta, every loser
// loses FlatDelta, floored at zero. The team-level delta is applied
// identically to each member, not divided across them.
type Flat struct{}

func (Flat) Name() string { return "flat" }

func (Flat) Apply(winners, losers []Member) Result {
	res := Result{
		WinnerRatings: make([]int, len(winners)),
		LoserRatings:  make([]int, len(losers)),
		Delta:         FlatDelta,
	}
	for i, m := range winners {
		res.WinnerRatings[i] = Floor(m.Rating + FlatDelta)
	}
	for i, m := range losers {
		res.LoserRatings[i] = Floor(m.Rating - FlatDelta)
	}
	return res
}

// Elo rates each side as the mean of its members, applies one team-level
// Elo update with a dynamic K derived from the average games played across
// all participants, and splits each side's aggregate delta across its
// members with DistributeDelta.
type Elo struct{}

func (Elo) Name() string { return "elo" }

func (Elo) Apply(winners, losers []Member) Result {
	winRatings := memberRatings(winners)
	loseRatings := memberRatings(losers)

	teamW := TeamRating(winRatings)
	teamL := TeamRating(loseRatings)

	games := 0
	for _, m := range winners {
		games += m.GamesPlayed
	}
	for _, m := range losers {
		games += m.GamesPlayed
	}
	total := len(winners) + len(losers)
	avgGames := 0
	if total > 0 {
		avgGames = games / total
	}
	k := DynamicK(avgGames)

	newW, newL := UpdateElo(teamW, teamL, 1, k)
	deltaW := newW - teamW
	deltaL := newL - teamL

	res := Result{
		WinnerRatings: DistributeDelta(winRatings, deltaW*len(winners)),
		LoserRatings:  DistributeDelta(loseRatings, deltaL*len(losers)),
		Delta:         deltaW,
	}
	for i := range res.WinnerRatings {
		res.WinnerRatings[i] = Floor(res.WinnerRatings[i])
	}
	for i := range res.LoserRatings {
		res.LoserRatings[i] = Floor(res.LoserRatings[i])
	}
	return res
}

func memberRatings(members []Member) []int {
	out := make([]int, len(members))
	for i, m := range members {
		out[i] = m.Rating
	}
	return out
}

// ForName returns the policy registered under name, defaulting to Flat for
// anything unrecognized.
func ForName(name string) Policy {
	switch name {
	case "elo":
		return Elo{}
	default:
		return Flat{}
	}
}
