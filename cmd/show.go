package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/config"
	"github.com/pable/go-team-rank/internal/rating"
	"github.com/pable/go-team-rank/internal/report"
	"github.com/pable/go-team-rank/internal/storage"
)

var showRanks bool

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a stored tournament's placings by id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRanks, "ranks", false, "annotate each player with their rank going into the tournament (earlier results scored with the tournament's year as the season, so ranks can differ from a current 'rank' run)")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var cfg rating.Config
	if showRanks {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	return showTournament(db, cfg, prefix, showRanks)
}

// showTournament prints the placings of the tournament matching prefix.
// With withRanks, players are annotated with the ranks that applied when
// it was scored: those from every tournament held strictly before it.
func showTournament(db *storage.DB, cfg rating.Config, prefix string, withRanks bool) error {
	s, err := db.GetTournamentByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query tournament: %w", err)
	}
	if s == nil {
		fmt.Fprintf(os.Stderr, "No tournament found with id prefix %q\n", prefix)
		return nil
	}
	placings, err := db.GetPlacings(s.ID)
	if err != nil {
		return fmt.Errorf("get placings: %w", err)
	}

	var ranks rating.Ranks
	if withRanks {
		ranks = rating.Ranks{}
		prior, err := db.LoadTournaments(time.Time{}, s.HeldAt.Add(-time.Second), nil)
		if err != nil {
			return fmt.Errorf("load tournaments: %w", err)
		}
		if len(prior) > 0 {
			res, err := rankTournaments(prior, s.HeldAt.Year(), cfg)
			if err != nil {
				return err
			}
			ranks = res.Ranks
		}
	}

	report.PrintPlacings(os.Stdout, *s, placings, ranks)
	return nil
}
