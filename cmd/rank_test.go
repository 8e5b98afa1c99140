package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-team-rank/internal/rating"
)

func TestRankOptionsTiers(t *testing.T) {
	o := rankOptions{noMedium: true, noChampionship: true}
	assert.Equal(t, []rating.Tier{rating.TierSmall, rating.TierMajor}, o.tiers())

	none := rankOptions{noSmall: true, noMedium: true, noMajor: true, noChampionship: true}
	got := none.tiers()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankOptionsComputeFromDir(t *testing.T) {
	root := t.TempDir()
	write := func(rel, body string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("small/2022-05-01.tsv", "1\t1\t2\n2\t3\t4\n")
	write("major/2023-05-01.tsv", "1\t3\t4\n2\t5\t6\n")

	o := rankOptions{dir: root, to: "2022"}
	res, ts, err := o.compute(context.Background())
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, rating.Ranks{1: 1, 2: 1, 3: 3, 4: 3}, res.Ranks)

	p, ok := playerReport(res, ts, 3)
	require.True(t, ok)
	assert.Equal(t, 3, p.Rank)
	assert.Equal(t, 1, p.Tournaments)
	assert.Len(t, p.Contributions, 1)

	_, ok = playerReport(res, ts, 5)
	assert.False(t, ok)
}

func TestRankOptionsComputeRejectsInvertedRange(t *testing.T) {
	o := rankOptions{dir: t.TempDir(), from: "2023", to: "2022"}
	_, _, err := o.compute(context.Background())
	assert.Error(t, err)
}

func TestParsePlayerID(t *testing.T) {
	id, err := parsePlayerID("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, rating.PlayerID(18446744073709551615), id)

	_, err = parsePlayerID("-1")
	assert.Error(t, err)
}

func TestNeighbourhood(t *testing.T) {
	var standings []rating.Standing
	for i := 1; i <= 10; i++ {
		standings = append(standings, rating.Standing{Rank: i, Player: rating.PlayerID(100 + i)})
	}
	players := func(ss []rating.Standing) []rating.PlayerID {
		var out []rating.PlayerID
		for _, s := range ss {
			out = append(out, s.Player)
		}
		return out
	}

	assert.Equal(t, []rating.PlayerID{103, 104, 105, 106, 107}, players(neighbourhood(standings, 105, 2)))
	assert.Equal(t, []rating.PlayerID{101, 102, 103}, players(neighbourhood(standings, 101, 2)))
	assert.Equal(t, []rating.PlayerID{109, 110}, players(neighbourhood(standings, 110, 1)))
	assert.Nil(t, neighbourhood(standings, 999, 2))
}
