package rating

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Ranks maps a player to their rank; 1 is best.
type Ranks map[PlayerID]int

// Standing is one row of a finished ranking.
type Standing struct {
	Rank    int
	Player  PlayerID
	Rating  float64
	Results int // retained contributions
}

// Result is the outcome of a ranking run.
type Result struct {
	Ranks   Ranks
	Records map[PlayerID]*PlayerRecord
}

// Standings returns every ranked player ordered by rank, then player id.
func (r *Result) Standings() []Standing {
	out := make([]Standing, 0, len(r.Ranks))
	for pid, rank := range r.Ranks {
		rec := r.Records[pid]
		out = append(out, Standing{Rank: rank, Player: pid, Rating: rec.Rating, Results: rec.Len()})
	}
	slices.SortFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})
	return out
}

// Standing returns the standing of a single player.
func (r *Result) Standing(pid PlayerID) (Standing, bool) {
	rank, ok := r.Ranks[pid]
	if !ok {
		return Standing{}, false
	}
	rec := r.Records[pid]
	return Standing{Rank: rank, Player: pid, Rating: rec.Rating, Results: rec.Len()}, true
}

// RanksFromRecords ranks players by rating, highest first, using standard
// competition ranking: equal ratings share a rank and the next distinct
// rating skips ahead by the size of the tie.
func RanksFromRecords(records map[PlayerID]*PlayerRecord) Ranks {
	sorted := make([]*PlayerRecord, 0, len(records))
	for _, rec := range records {
		sorted = append(sorted, rec)
	}
	slices.SortFunc(sorted, func(a, b *PlayerRecord) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	ranks := make(Ranks, len(sorted))
	rank := 0
	for i, rec := range sorted {
		if i == 0 || rec.Rating != sorted[i-1].Rating {
			rank = i + 1
		}
		ranks[rec.ID] = rank
	}
	return ranks
}

// SortTournaments sorts tournaments chronologically, keeping the relative
// order of tournaments held at the same instant.
func SortTournaments(ts []*Tournament) {
	slices.SortStableFunc(ts, func(a, b *Tournament) int { return a.at.Compare(b.at) })
}

// RankPlayers scores tournaments in chronological order and returns the final
// ranks and player records.
//
// Every tournament is scored against the rank snapshot taken when the previous
// date closed, so tournaments held at the same instant all see the same
// snapshot regardless of their order in the slice. Tournaments must be sorted
// by time; otherwise an *OrderingError is returned and no result is produced.
func RankPlayers(tournaments []*Tournament, currentSeason int, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ranks := Ranks{}
	records := make(map[PlayerID]*PlayerRecord)
	var prev time.Time
	started := false

	for i, t := range tournaments {
		if started {
			switch t.at.Compare(prev) {
			case -1:
				return nil, &OrderingError{Index: i, Prev: prev, Got: t.at}
			case 1:
				// Close the previous date before scoring a later one.
				ranks = RanksFromRecords(records)
			}
		}

		for pid, pts := range t.Points(currentSeason, ranks, cfg) {
			rec, ok := records[pid]
			if !ok {
				rec = NewPlayerRecord(pid, cfg.RecordLength)
				records[pid] = rec
			}
			rec.AddResult(pts)
		}
		prev = t.at
		started = true
	}
	if started {
		ranks = RanksFromRecords(records)
	}
	return &Result{Ranks: ranks, Records: records}, nil
}
