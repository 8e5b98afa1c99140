package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/ingest"
	"github.com/pable/go-team-rank/internal/storage"
)

var (
	importSkipInvalid bool
	importWorkers     int
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import result files into the database",
	Long: `Parse every <dir>/<tier>/**/YYYY-MM-DD*.tsv result file and store it.
Tournaments already in the database are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importSkipInvalid, "skip-invalid", false, "skip result files that fail validation")
	importCmd.Flags().IntVar(&importWorkers, "workers", 0, "parallel file parsers (default: GOMAXPROCS)")
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}

	in := ingest.New(dir)
	in.SkipInvalid = importSkipInvalid
	in.Workers = importWorkers
	in.Logger = slog.Default()
	files, err := in.Ingest(cmd.Context())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cWarn.Fprintf(os.Stderr, "No result files found under %s\n", dir)
		return nil
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var imported, skipped int
	for _, f := range files {
		id := storage.TournamentID(f.Tournament)
		exists, err := db.TournamentExists(id)
		if err != nil {
			return fmt.Errorf("check tournament: %w", err)
		}
		if exists {
			slog.Debug("tournament already stored", slog.String("path", f.Path), slog.String("id", id[:12]))
			skipped++
			continue
		}
		source, err := filepath.Rel(dir, f.Path)
		if err != nil {
			source = f.Path
		}
		if _, err := db.InsertTournament(source, f.Tournament); err != nil {
			return fmt.Errorf("store %s: %w", f.Path, err)
		}
		imported++
	}

	fmt.Fprintf(os.Stdout, "Imported %d tournament(s), %d already stored.\n", imported, skipped)
	return nil
}
