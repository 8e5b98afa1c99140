package rating

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// unrankedRank is assumed for players missing from the rank table. It is
// worse than every row of the bonus table.
const unrankedRank = 201

// Placing is one team's finishing place. Tied teams share a place.
type Placing struct {
	Place int
	Team  Team
}

// Tournament is an immutable, validated set of placings with its date and tier.
type Tournament struct {
	results []Placing // sorted by place ascending
	at      time.Time
	tier    Tier
}

// NewTournament sorts results by place and validates them: places must follow
// standard competition ranking (1,2,2,4 is valid, 1,2,2,3 is not) and no
// player may appear more than once.
func NewTournament(results []Placing, at time.Time, tier Tier) (*Tournament, error) {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b Placing) int { return a.Place - b.Place })

	seen := make(map[PlayerID]struct{}, len(sorted)*2)
	group, next := 0, 1
	for _, r := range sorted {
		for _, p := range r.Team.Players() {
			if _, dup := seen[p]; dup {
				return nil, &RepeatedPlayerError{Player: p}
			}
			seen[p] = struct{}{}
		}
		switch {
		case group > 0 && r.Place == group:
			next++
		case r.Place == next:
			group = r.Place
			next = r.Place + 1
		default:
			return nil, &InconsistentRanksError{Place: r.Place}
		}
	}
	return newTournament(sorted, at, tier), nil
}

// NewTournamentUnchecked builds a tournament from results that are already
// sorted by place and known to be valid.
func NewTournamentUnchecked(results []Placing, at time.Time, tier Tier) *Tournament {
	return newTournament(slices.Clone(results), at, tier)
}

func newTournament(results []Placing, at time.Time, tier Tier) *Tournament {
	return &Tournament{results: results, at: at.UTC(), tier: tier}
}

// Results returns a copy of the placings, best place first.
func (t *Tournament) Results() []Placing { return slices.Clone(t.results) }

// Time returns when the tournament was held, in UTC.
func (t *Tournament) Time() time.Time { return t.at }

// Tier returns the tournament tier.
func (t *Tournament) Tier() Tier { return t.tier }

// Year returns the calendar year the tournament was held in, used for age decay.
func (t *Tournament) Year() int { return t.at.Year() }

// Players returns every player in the tournament in placing order.
func (t *Tournament) Players() []PlayerID {
	out := make([]PlayerID, 0, len(t.results)*2)
	for _, r := range t.results {
		p := r.Team.Players()
		out = append(out, p[0], p[1])
	}
	return out
}

// Points computes each player's contribution from this tournament.
//
// Placings are scored from worst to best. A team scores the decayed point
// base for its place plus every strength-of-field bonus earned by teams that
// finished strictly below it; the score is split evenly between teammates.
// ranks is the snapshot from before this tournament's date.
func (t *Tournament) Points(currentSeason int, ranks Ranks, cfg Config) map[PlayerID]float64 {
	out := make(map[PlayerID]float64, len(t.results)*2)
	if len(t.results) == 0 {
		return out
	}

	age := float64(currentSeason - t.Year())
	ageFactor := math.Pow(cfg.AgeDecay, age)
	base := cfg.PointBase[t.tier]

	var bonus, bonusUpdate float64
	prevPlace := t.results[len(t.results)-1].Place + 1
	for i := len(t.results) - 1; i >= 0; i-- {
		r := t.results[i]
		// A new place closes the tie group below it.
		if r.Place != prevPlace {
			bonus += bonusUpdate
			bonusUpdate = 0
			prevPlace = r.Place
		}

		raw := base / math.Pow(cfg.FinishDecay, float64(r.Place)) / ageFactor
		share := (raw + bonus) / 2
		if math.IsNaN(share) || math.IsInf(share, 0) {
			panic(fmt.Sprintf("rating: non-finite points %v at place %d (base=%v finish_decay=%v age_decay=%v)",
				share, r.Place, base, cfg.FinishDecay, cfg.AgeDecay))
		}
		for _, p := range r.Team.Players() {
			out[p] = share
			rank, ok := ranks[p]
			if !ok {
				rank = unrankedRank
			}
			bonusUpdate += bonusPoints(rank)
		}
	}
	return out
}

var bonusTable = []struct {
	maxRank int
	points  float64
}{
	{5, 10.0},
	{10, 7.5},
	{20, 5.0},
	{50, 2.5},
	{100, 1.0},
	{200, 0.5},
}

// bonusPoints is the credit for finishing above a player of the given rank.
func bonusPoints(rank int) float64 {
	for _, b := range bonusTable {
		if rank <= b.maxRank {
			return b.points
		}
	}
	return 0
}
