package rating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = time.Date(2023, 5, 6, 0, 0, 0, 0, time.UTC)

func team(t *testing.T, p1, p2 PlayerID) Team {
	t.Helper()
	tm, err := NewTeam(p1, p2)
	require.NoError(t, err)
	return tm
}

// placings builds consecutive-id teams for the given places: place[i] gets
// players 2i+1 and 2i+2.
func placings(t *testing.T, places ...int) []Placing {
	t.Helper()
	out := make([]Placing, len(places))
	for i, p := range places {
		out[i] = Placing{Place: p, Team: team(t, PlayerID(2*i+1), PlayerID(2*i+2))}
	}
	return out
}

func TestNewTeam(t *testing.T) {
	a, err := NewTeam(9, 3)
	require.NoError(t, err)
	b, err := NewTeam(3, 9)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, [2]PlayerID{3, 9}, a.Players())

	_, err = NewTeam(5, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepeatedPlayer))
	var rp *RepeatedPlayerError
	require.True(t, errors.As(err, &rp))
	assert.Equal(t, PlayerID(5), rp.Player)
}

func TestNewTournamentPlaces(t *testing.T) {
	tests := []struct {
		name    string
		places  []int
		wantErr bool
		badAt   int
	}{
		{"strictly increasing", []int{1, 2, 3}, false, 0},
		{"two-way tie", []int{1, 2, 2, 4}, false, 0},
		{"three-way tie", []int{1, 1, 1, 4}, false, 0},
		{"unsorted input", []int{4, 2, 1, 2}, false, 0},
		{"empty", nil, false, 0},
		{"tie not skipped", []int{1, 2, 2, 3}, true, 3},
		{"does not start at one", []int{2, 3}, true, 2},
		{"place zero", []int{0, 1}, true, 0},
		{"gap", []int{1, 3}, true, 3},
		{"three-way tie not skipped", []int{1, 1, 1, 3}, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour, err := NewTournament(placings(t, tt.places...), day1, TierSmall)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, tour.Results(), len(tt.places))
				return
			}
			require.ErrorIs(t, err, ErrInconsistentRanks)
			var ir *InconsistentRanksError
			require.True(t, errors.As(err, &ir))
			assert.Equal(t, tt.badAt, ir.Place)
		})
	}
}

func TestNewTournamentSortsResults(t *testing.T) {
	tour, err := NewTournament(placings(t, 3, 1, 2), day1, TierMajor)
	require.NoError(t, err)

	got := tour.Results()
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Place)
	assert.Equal(t, [2]PlayerID{3, 4}, got[0].Team.Players())
	assert.Equal(t, 3, got[2].Place)
	assert.Equal(t, TierMajor, tour.Tier())
	assert.Equal(t, 2023, tour.Year())
}

func TestNewTournamentRepeatedPlayer(t *testing.T) {
	results := []Placing{
		{Place: 1, Team: team(t, 1, 2)},
		{Place: 2, Team: team(t, 3, 2)},
	}
	_, err := NewTournament(results, day1, TierSmall)
	require.ErrorIs(t, err, ErrRepeatedPlayer)
	var rp *RepeatedPlayerError
	require.True(t, errors.As(err, &rp))
	assert.Equal(t, PlayerID(2), rp.Player)
}

func TestPointsSingleTeam(t *testing.T) {
	tour, err := NewTournament([]Placing{{Place: 1, Team: team(t, 10, 20)}}, day1, TierSmall)
	require.NoError(t, err)

	pts := tour.Points(2023, nil, DefaultConfig())
	require.Len(t, pts, 2)
	assert.InDelta(t, 22.727272727, pts[10], 1e-9)
	assert.InDelta(t, 22.727272727, pts[20], 1e-9)
}

func TestPointsPanicsOnOverflow(t *testing.T) {
	tour, err := NewTournament(placings(t, 1, 2), day1, TierSmall)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.FinishDecay = 1e-300
	require.NoError(t, cfg.Validate())
	assert.Panics(t, func() { tour.Points(2023, nil, cfg) })
}

func TestPointsEmptyTournament(t *testing.T) {
	tour, err := NewTournament(nil, day1, TierChampionship)
	require.NoError(t, err)
	assert.Empty(t, tour.Points(2023, nil, DefaultConfig()))
}

func TestPointsAgeDecay(t *testing.T) {
	cfg := DefaultConfig()
	current, err := NewTournament(placings(t, 1, 2, 3), day1, TierMedium)
	require.NoError(t, err)
	older, err := NewTournament(placings(t, 1, 2, 3), day1.AddDate(-2, 0, 0), TierMedium)
	require.NoError(t, err)

	now := current.Points(2023, nil, cfg)
	then := older.Points(2023, nil, cfg)
	for pid, p := range now {
		assert.Less(t, then[pid], p, "player %d", pid)
		assert.InDelta(t, p/(1.1*1.1), then[pid], 1e-9)
	}

	// Future-dated results are inflated rather than rejected.
	future := current.Points(2022, nil, cfg)
	for pid, p := range now {
		assert.Greater(t, future[pid], p)
	}
}

func TestPointsFinishDecay(t *testing.T) {
	tour, err := NewTournament(placings(t, 1, 2, 3, 4), day1, TierSmall)
	require.NoError(t, err)

	pts := tour.Points(2023, nil, DefaultConfig())
	for i := 0; i < 3; i++ {
		better := pts[PlayerID(2*i+1)]
		worse := pts[PlayerID(2*i+3)]
		assert.InDelta(t, better/1.1, worse, 1e-9)
	}
}

func TestPointsBonusPropagation(t *testing.T) {
	cfg := DefaultConfig()
	results := []Placing{
		{Place: 1, Team: team(t, 1, 2)},
		{Place: 2, Team: team(t, 3, 4)},
		{Place: 3, Team: team(t, 5, 6)},
	}
	tour, err := NewTournament(results, day1, TierSmall)
	require.NoError(t, err)

	ranks := Ranks{5: 3, 6: 150, 3: 40}
	pts := tour.Points(2023, ranks, cfg)

	raw := func(place int) float64 {
		base := 50.0
		for i := 0; i < place; i++ {
			base /= 1.1
		}
		return base
	}
	// Last place earns no bonus; its players are worth 10 + 0.5.
	assert.InDelta(t, raw(3)/2, pts[5], 1e-9)
	// Second place collects the bonus from third; its players add 2.5 + 0.
	assert.InDelta(t, (raw(2)+10.5)/2, pts[3], 1e-9)
	// First place collects everything below it.
	assert.InDelta(t, (raw(1)+13.0)/2, pts[1], 1e-9)
	assert.Equal(t, pts[1], pts[2])
}

func TestPointsTiedTeamsShareBonusSnapshot(t *testing.T) {
	results := []Placing{
		{Place: 1, Team: team(t, 1, 2)},
		{Place: 2, Team: team(t, 3, 4)},
		{Place: 2, Team: team(t, 5, 6)},
		{Place: 4, Team: team(t, 7, 8)},
	}
	tour, err := NewTournament(results, day1, TierSmall)
	require.NoError(t, err)

	// 3 and 5 are top players, 7 is ranked 8th.
	ranks := Ranks{3: 1, 5: 2, 7: 8}
	pts := tour.Points(2023, ranks, DefaultConfig())

	// Both tied teams see only the last-place bonus.
	assert.Equal(t, pts[3], pts[5])
	assert.InDelta(t, (50/1.1/1.1+7.5)/2, pts[3], 1e-9)
	// The winner sees both tied teams.
	assert.InDelta(t, (50/1.1+7.5+20)/2, pts[1], 1e-9)
}

func TestPointsNeverNegative(t *testing.T) {
	tour, err := NewTournament(placings(t, 1, 2, 2, 4, 5, 5, 5, 8), day1, TierChampionship)
	require.NoError(t, err)
	for pid, p := range tour.Points(2030, Ranks{1: 1, 16: 4}, DefaultConfig()) {
		assert.GreaterOrEqual(t, p, 0.0, "player %d", pid)
	}
}
