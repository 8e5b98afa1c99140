// Package rating implements the team tournament rating engine: per-tournament
// point computation, bounded best-N player records, and rank derivation.
package rating

// PlayerID identifies a player across tournaments.
type PlayerID uint64

// Team is an unordered pair of distinct players, stored in canonical order.
// Team values are comparable and can be used as map keys.
type Team struct {
	early, late PlayerID
}

// NewTeam builds a team from two distinct players in either order.
func NewTeam(p1, p2 PlayerID) (Team, error) {
	switch {
	case p1 < p2:
		return Team{early: p1, late: p2}, nil
	case p1 > p2:
		return Team{early: p2, late: p1}, nil
	default:
		return Team{}, &RepeatedPlayerError{Player: p1}
	}
}

// Players returns both players, lower id first.
func (t Team) Players() [2]PlayerID {
	return [2]PlayerID{t.early, t.late}
}
