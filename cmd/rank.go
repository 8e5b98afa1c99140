package cmd

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/config"
	"github.com/pable/go-team-rank/internal/ingest"
	"github.com/pable/go-team-rank/internal/rating"
	"github.com/pable/go-team-rank/internal/report"
	"github.com/pable/go-team-rank/internal/storage"
)

// rankOptions selects the tournaments to rank. Shared by rank and player.
type rankOptions struct {
	dir      string
	from, to string
	season   int
	workers  int

	skipInvalid    bool
	noSmall        bool
	noMedium       bool
	noMajor        bool
	noChampionship bool
}

func (o *rankOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.dir, "dir", "", "read results from a directory tree instead of the database")
	f.StringVar(&o.from, "from", "", "only count tournaments on or after this date")
	f.StringVar(&o.to, "to", "", "only count tournaments on or before this date (a year or month covers the whole period)")
	f.IntVar(&o.season, "season", 0, "current season for age decay (default: year of --to, else this year)")
	f.IntVar(&o.workers, "workers", 0, "parallel file parsers with --dir (default: GOMAXPROCS)")
	f.BoolVar(&o.skipInvalid, "skip-invalid", false, "skip result files that fail validation")
	f.BoolVar(&o.noSmall, "no-small", false, "exclude small tournaments")
	f.BoolVar(&o.noMedium, "no-medium", false, "exclude medium tournaments")
	f.BoolVar(&o.noMajor, "no-major", false, "exclude major tournaments")
	f.BoolVar(&o.noChampionship, "no-championship", false, "exclude championships")
}

func (o *rankOptions) tiers() []rating.Tier {
	excluded := map[rating.Tier]bool{
		rating.TierSmall:        o.noSmall,
		rating.TierMedium:       o.noMedium,
		rating.TierMajor:        o.noMajor,
		rating.TierChampionship: o.noChampionship,
	}
	// Non-nil even when empty: nil means every tier downstream.
	out := make([]rating.Tier, 0, len(excluded))
	for _, t := range rating.AllTiers() {
		if !excluded[t] {
			out = append(out, t)
		}
	}
	return out
}

// compute loads the selected tournaments and ranks them. The tournaments
// are returned alongside the result for per-player reporting.
func (o *rankOptions) compute(ctx context.Context) (*rating.Result, []*rating.Tournament, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	from, err := parseBound(o.from, false)
	if err != nil {
		return nil, nil, fmt.Errorf("--from: %w", err)
	}
	to, err := parseBound(o.to, true)
	if err != nil {
		return nil, nil, fmt.Errorf("--to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, nil, fmt.Errorf("--from %s is after --to %s", o.from, o.to)
	}

	season := o.season
	switch {
	case season != 0:
	case !to.IsZero():
		season = to.Year()
	default:
		season = time.Now().UTC().Year()
	}

	var ts []*rating.Tournament
	if o.dir != "" {
		in := ingest.New(o.dir)
		in.Tiers = o.tiers()
		in.From, in.Until = from, to
		in.Workers = o.workers
		in.SkipInvalid = o.skipInvalid
		in.Logger = slog.Default()
		files, err := in.Ingest(ctx)
		if err != nil {
			return nil, nil, err
		}
		ts = ingest.Tournaments(files)
	} else {
		db, err := storage.Open(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		if ts, err = db.LoadTournaments(from, to, o.tiers()); err != nil {
			return nil, nil, fmt.Errorf("load tournaments: %w", err)
		}
	}

	res, err := rankTournaments(ts, season, cfg)
	if err != nil {
		return nil, nil, err
	}
	return res, ts, nil
}

func rankTournaments(ts []*rating.Tournament, season int, cfg rating.Config) (*rating.Result, error) {
	start := time.Now()
	res, err := rating.RankPlayers(ts, season, cfg)
	if err != nil {
		return nil, fmt.Errorf("rank players: %w", err)
	}
	slog.Info("ranked players",
		slog.Int("tournaments", len(ts)),
		slog.Int("players", len(res.Ranks)),
		slog.Int("season", season),
		slog.Duration("took", time.Since(start)))
	return res, nil
}

var (
	rankOpts   rankOptions
	rankFormat string
	rankTop    int
	rankSorted bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rate and rank every player",
	Long: `Compute ratings from all selected tournaments and print one line per player.

Results are read from the database (see 'import') or, with --dir, straight from
a directory laid out as <dir>/<tier>/**/YYYY-MM-DD*.tsv.`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	rankOpts.bind(rankCmd)
	rankCmd.Flags().StringVar(&rankFormat, "format", "tsv", "output format: tsv, table or json")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "print only the first N rows (0 = all)")
	rankCmd.Flags().BoolVar(&rankSorted, "sorted", true, "order by rank; --sorted=false orders by player id")
}

func runRank(cmd *cobra.Command, args []string) error {
	res, _, err := rankOpts.compute(cmd.Context())
	if err != nil {
		return err
	}

	standings := res.Standings()
	if !rankSorted {
		slices.SortFunc(standings, func(a, b rating.Standing) int {
			return cmp.Compare(a.Player, b.Player)
		})
	}
	if rankTop > 0 && len(standings) > rankTop {
		standings = standings[:rankTop]
	}

	switch rankFormat {
	case "tsv":
		return report.PrintStandingsTSV(os.Stdout, standings)
	case "table":
		report.PrintStandingsTable(os.Stdout, standings, 0)
		return nil
	case "json":
		return report.WriteStandingsJSON(os.Stdout, standings)
	default:
		return fmt.Errorf("unknown format %q (want tsv, table or json)", rankFormat)
	}
}
