package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-team-rank/internal/model"
	"github.com/pable/go-team-rank/internal/rating"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// FormatRating renders a rating with the shortest exact representation.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// PrintStandingsTSV writes one "rank<TAB>rating<TAB>player" line per standing.
func PrintStandingsTSV(w io.Writer, standings []rating.Standing) error {
	for _, s := range standings {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", s.Rank, FormatRating(s.Rating), s.Player); err != nil {
			return err
		}
	}
	return nil
}

// PrintStandingsTable prints the standings as an aligned table.
// If focus is non-zero, that player's row is marked with ">".
func PrintStandingsTable(w io.Writer, standings []rating.Standing, focus rating.PlayerID) {
	table := newTable(w)
	table.Header(" ", "RANK", "PLAYER", "RATING", "RESULTS")

	for _, s := range standings {
		marker := " "
		if focus != 0 && s.Player == focus {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(s.Rank),
			strconv.FormatUint(uint64(s.Player), 10),
			fmt.Sprintf("%.2f", s.Rating),
			strconv.Itoa(s.Results),
		)
	}
	table.Render()
}

type standingJSON struct {
	Rank    int     `json:"rank"`
	Player  uint64  `json:"player"`
	Rating  float64 `json:"rating"`
	Results int     `json:"results"`
}

// WriteStandingsJSON writes the standings as a JSON array.
func WriteStandingsJSON(w io.Writer, standings []rating.Standing) error {
	out := make([]standingJSON, len(standings))
	for i, s := range standings {
		out[i] = standingJSON{Rank: s.Rank, Player: uint64(s.Player), Rating: s.Rating, Results: s.Results}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintPlayer prints a player's standing and the results their rating is built from.
func PrintPlayer(w io.Writer, p model.PlayerReport) {
	fmt.Fprintf(w, "\nPlayer: %d  |  Rank: %d  |  Rating: %.2f  |  Tournaments: %d\n\n",
		p.Player, p.Rank, p.Rating, p.Tournaments)

	table := newTable(w)
	table.Header("#", "POINTS", "SHARE")
	for i, c := range p.Contributions {
		share := "—"
		if p.Rating > 0 {
			share = fmt.Sprintf("%.0f%%", c/p.Rating*100)
		}
		table.Append(strconv.Itoa(i+1), fmt.Sprintf("%.2f", c), share)
	}
	table.Render()
}

// PrintTournamentList prints one line per stored tournament.
func PrintTournamentList(w io.Writer, ts []model.TournamentSummary) {
	fmt.Fprintf(w, "%-14s  %-10s  %-12s  %5s  %s\n", "ID", "DATE", "TIER", "TEAMS", "SOURCE")
	fmt.Fprintf(w, "%-14s  %-10s  %-12s  %5s  %s\n",
		"──────────────", "──────────", "────────────", "─────", "──────")
	for _, t := range ts {
		fmt.Fprintf(w, "%-14s  %-10s  %-12s  %5d  %s\n",
			t.ShortID(), t.HeldAt.Format("2006-01-02"), t.Tier, t.Teams, t.Source)
	}
}

// PrintPlacings prints a tournament header followed by its placings.
// ranks, if non-nil, adds each player's current rank.
func PrintPlacings(w io.Writer, s model.TournamentSummary, placings []rating.Placing, ranks rating.Ranks) {
	fmt.Fprintf(w, "\nDate: %s  |  Tier: %s  |  Teams: %d  |  ID: %s\n\n",
		s.HeldAt.Format("2006-01-02"), s.Tier, s.Teams, s.ShortID())

	table := newTable(w)
	if ranks != nil {
		table.Header("PLACE", "PLAYER", "RANK", "PLAYER", "RANK")
	} else {
		table.Header("PLACE", "PLAYER", "PLAYER")
	}
	for _, p := range placings {
		players := p.Team.Players()
		row := []any{strconv.Itoa(p.Place)}
		for _, pid := range players {
			row = append(row, strconv.FormatUint(uint64(pid), 10))
			if ranks != nil {
				row = append(row, rankString(ranks, pid))
			}
		}
		table.Append(row...)
	}
	table.Render()
}

func rankString(ranks rating.Ranks, pid rating.PlayerID) string {
	if r, ok := ranks[pid]; ok {
		return strconv.Itoa(r)
	}
	return "—"
}

// PrintRows prints an ad-hoc query result with cols as the header.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}
