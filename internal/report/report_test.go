package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pable/go-team-rank/internal/model"
	"github.com/pable/go-team-rank/internal/rating"
)

var standings = []rating.Standing{
	{Rank: 1, Player: 42, Rating: 113.63636363636363, Results: 1},
	{Rank: 2, Player: 7, Rating: 22.5, Results: 3},
}

func TestPrintStandingsTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintStandingsTSV(&buf, standings); err != nil {
		t.Fatalf("PrintStandingsTSV: %v", err)
	}
	want := "1\t113.63636363636363\t42\n2\t22.5\t7\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteStandingsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStandingsJSON(&buf, standings); err != nil {
		t.Fatalf("WriteStandingsJSON: %v", err)
	}
	var got []standingJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Player != 42 || got[1].Results != 3 {
		t.Errorf("unexpected JSON rows %+v", got)
	}
}

func TestPrintStandingsTableMarksFocus(t *testing.T) {
	var buf bytes.Buffer
	PrintStandingsTable(&buf, standings, 7)
	out := buf.String()
	if !strings.Contains(out, "RATING") || !strings.Contains(out, "113.64") {
		t.Errorf("table missing expected cells:\n%s", out)
	}
	if strings.Count(out, ">") != 1 {
		t.Errorf("expected exactly one focus marker:\n%s", out)
	}
}

func TestPrintPlacingsWithRanks(t *testing.T) {
	team, err := rating.NewTeam(5, 3)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	s := model.TournamentSummary{
		ID:     "0123456789abcdef",
		HeldAt: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
		Tier:   rating.TierMajor,
		Teams:  1,
	}
	var buf bytes.Buffer
	PrintPlacings(&buf, s, []rating.Placing{{Place: 1, Team: team}}, rating.Ranks{3: 12})
	out := buf.String()
	for _, want := range []string{"2023-04-01", "major", "0123456789ab", "12", "—"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTournamentList(t *testing.T) {
	var buf bytes.Buffer
	PrintTournamentList(&buf, []model.TournamentSummary{{
		ID: "abc", Source: "small/2023-01-01.tsv", HeldAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Tier: rating.TierSmall, Teams: 8,
	}})
	if !strings.Contains(buf.String(), "small/2023-01-01.tsv") {
		t.Errorf("list missing source:\n%s", buf.String())
	}
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"tier", "n"}, [][]string{{"major", "3"}, {"small", "NULL"}})
	out := buf.String()
	for _, want := range []string{"major", "3", "NULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
