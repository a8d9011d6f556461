// Package rating holds the pure rating math. Nothing in here touches
// storage or shared state.
package rating

import (
	"math"
	"sort"
)

// DefaultMMR is the rating assigned to a player on first reference.
const DefaultMMR = 1200

// FlatDelta is the per-member delta of the flat policy: winners gain it,
// losers lose it.
const FlatDelta = 25

// TeamRating aggregates member ratings into one team rating using the
// arithmetic mean, rounded half away from zero. Returns DefaultMMR for an
// empty roster.
func TeamRating(memberRatings []int) int {
	if len(memberRatings) == 0 {
		return DefaultMMR
	}
	sum := 0
	for _, r := range memberRatings {
		sum += r
	}
	return int(math.Round(float64(sum) / float64(len(memberRatings))))
}

// ExpectedScore is the logistic Elo expectation of side A against side B.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// UpdateElo applies one symmetric zero-sum Elo update. scoreA is the actual
// score of side A (0, 0.5 or 1). Both sides are rounded half away from zero
// independently after the update.
func UpdateElo(ratingA, ratingB int, scoreA, k float64) (int, int) {
	ea := ExpectedScore(float64(ratingA), float64(ratingB))
	newA := float64(ratingA) + k*(scoreA-ea)
	newB := float64(ratingB) + k*((1-scoreA)-(1-ea))
	return int(math.Round(newA)), int(math.Round(newB))
}

// DynamicK returns the K-factor for a player with the given number of games
// played. Newer players move faster.
func DynamicK(gamesPlayed int) float64 {
	if gamesPlayed < 10 {
		return 40.0
	}
	if gamesPlayed < 30 {
		return 30.0
	}
	return 24.0
}

// DistributeDelta splits an integer team-level delta across members: each
// member gets floor(teamDelta/n), and the remainder is handed out one unit
// at a time to the highest-rated members first. Members with equal ratings
// keep their original order. The result is the new rating per member, in
// input order.
func DistributeDelta(memberRatings []int, teamDelta int) []int {
	n := len(memberRatings)
	if n == 0 {
		return []int{}
	}
	base := int(math.Floor(float64(teamDelta) / float64(n)))
	remainder := teamDelta - base*n

	indexed := make([]int, n)
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return memberRatings[indexed[a]] > memberRatings[indexed[b]]
	})

	deltas := make([]int, n)
	for i := range deltas {
		deltas[i] = base
	}
	for i := 0; i < remainder; i++ {
		deltas[indexed[i]]++
	}

	out := make([]int, n)
	for i := range out {
		out[i] = memberRatings[i] + deltas[i]
	}
	return out
}

// Floor clamps a rating at zero; ratings never go negative.
func Floor(r int) int {
	if r < 0 {
		return 0
	}
	return r
}
