package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/report"
	"github.com/pable/go-team-rank/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the results database",
	Long: `Run an arbitrary SQL query against the results database and print results as a table.

Schema overview:
  tournaments(id, source, held_at, tier, teams)
  placings(tournament_id, place, player_a TEXT, player_b TEXT)

held_at is RFC 3339 UTC; tier is one of small, medium, major, championship.
Player ids are stored as TEXT. Use quotes: WHERE player_a = '1234'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
