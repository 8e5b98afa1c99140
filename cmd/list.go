package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/report"
	"github.com/pable/go-team-rank/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored tournaments",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ts, err := db.ListTournaments()
	if err != nil {
		return fmt.Errorf("list tournaments: %w", err)
	}
	if len(ts) == 0 {
		fmt.Fprintln(os.Stdout, "No tournaments stored yet. Run 'teamrank import <dir>' to add some.")
		return nil
	}
	report.PrintTournamentList(os.Stdout, ts)
	return nil
}
