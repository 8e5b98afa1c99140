package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/model"
	"github.com/pable/go-team-rank/internal/rating"
	"github.com/pable/go-team-rank/internal/report"
)

var (
	playerOpts   rankOptions
	playerAround int
)

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show one player's rank, rating and the results behind it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerOpts.bind(playerCmd)
	playerCmd.Flags().IntVar(&playerAround, "around", 5, "also list this many players ranked above and below (0 = none)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	pid, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}
	res, ts, err := playerOpts.compute(cmd.Context())
	if err != nil {
		return err
	}
	p, ok := playerReport(res, ts, pid)
	if !ok {
		fmt.Fprintf(os.Stderr, "No results for player %d\n", pid)
		return nil
	}
	report.PrintPlayer(os.Stdout, p)
	printNeighbourhood(res, pid, playerAround)
	return nil
}

// printNeighbourhood prints the standings around pid with its row marked.
func printNeighbourhood(res *rating.Result, pid rating.PlayerID, radius int) {
	if radius <= 0 {
		return
	}
	fmt.Fprintln(os.Stdout)
	report.PrintStandingsTable(os.Stdout, neighbourhood(res.Standings(), pid, radius), pid)
}

// neighbourhood returns up to radius standings on either side of pid's row.
func neighbourhood(standings []rating.Standing, pid rating.PlayerID, radius int) []rating.Standing {
	i := slices.IndexFunc(standings, func(s rating.Standing) bool { return s.Player == pid })
	if i < 0 {
		return nil
	}
	return standings[max(0, i-radius):min(len(standings), i+radius+1)]
}

func parsePlayerID(s string) (rating.PlayerID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid player id %q: %w", s, err)
	}
	return rating.PlayerID(id), nil
}

func playerReport(res *rating.Result, ts []*rating.Tournament, pid rating.PlayerID) (model.PlayerReport, bool) {
	st, ok := res.Standing(pid)
	if !ok {
		return model.PlayerReport{}, false
	}
	p := model.PlayerReport{
		Standing:      st,
		Contributions: res.Records[pid].Contributions(),
	}
	for _, t := range ts {
		if slices.Contains(t.Players(), pid) {
			p.Tournaments++
		}
	}
	return p, true
}
