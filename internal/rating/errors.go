package rating

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRepeatedPlayer matches any *RepeatedPlayerError.
	ErrRepeatedPlayer = errors.New("repeated player")
	// ErrInconsistentRanks matches any *InconsistentRanksError.
	ErrInconsistentRanks = errors.New("inconsistent ranks")
	// ErrNotChronological matches any *OrderingError.
	ErrNotChronological = errors.New("tournaments not in chronological order")
)

// RepeatedPlayerError reports a player who appears twice in one team or one tournament.
type RepeatedPlayerError struct {
	Player PlayerID
}

func (e *RepeatedPlayerError) Error() string {
	return fmt.Sprintf("repeated player: %d", e.Player)
}

func (e *RepeatedPlayerError) Is(target error) bool { return target == ErrRepeatedPlayer }

// InconsistentRanksError reports the first place value that breaks
// standard competition ranking.
type InconsistentRanksError struct {
	Place int
}

func (e *InconsistentRanksError) Error() string {
	return fmt.Sprintf("inconsistent ranks at place %d", e.Place)
}

func (e *InconsistentRanksError) Is(target error) bool { return target == ErrInconsistentRanks }

// OrderingError is returned by RankPlayers when a tournament is dated before
// the one preceding it.
type OrderingError struct {
	Index int
	Prev  time.Time
	Got   time.Time
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("tournament %d at %s precedes previous tournament at %s",
		e.Index, e.Got.Format(time.RFC3339), e.Prev.Format(time.RFC3339))
}

func (e *OrderingError) Is(target error) bool { return target == ErrNotChronological }
