package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-team-rank/internal/config"
	"github.com/pable/go-team-rank/internal/rating"
	"github.com/pable/go-team-rank/internal/report"
	"github.com/pable/go-team-rank/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession holds the open database and the ranking over everything
// stored in it, computed on first use.
type shellSession struct {
	db  *storage.DB
	cfg rating.Config

	res *rating.Result
	ts  []*rating.Tournament
}

func runShell(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()
	s := &shellSession{db: db, cfg: cfg}

	cGreeting.Println("teamrank shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("teamrank")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			s.list()
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <id-prefix> [--ranks]")
				continue
			}
			withRanks := len(args) > 1 && args[1] == "--ranks"
			if err := showTournament(db, cfg, args[0], withRanks); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "rank":
			top := 20
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					cError.Fprintln(os.Stderr, "usage: rank [N]")
					continue
				}
				top = n
			}
			s.rank(top)
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <id> [<id>...]")
				continue
			}
			s.player(args)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored tournaments"},
		{"show <id-prefix>", "show a tournament's placings"},
		{"show <id-prefix> --ranks", "same, with each player's rank going in"},
		{"rank [N]", "top N players over all stored results (default 20, 0 = all)"},
		{"player <id> [...]", "rank, rating and best results for one or more players"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *shellSession) list() {
	ts, err := s.db.ListTournaments()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(ts) == 0 {
		cMuted.Println("No tournaments stored yet.")
		return
	}
	report.PrintTournamentList(os.Stdout, ts)
}

func (s *shellSession) ranking() (*rating.Result, error) {
	if s.res != nil {
		return s.res, nil
	}
	ts, err := s.db.LoadTournaments(time.Time{}, time.Time{}, nil)
	if err != nil {
		return nil, fmt.Errorf("load tournaments: %w", err)
	}
	res, err := rankTournaments(ts, time.Now().UTC().Year(), s.cfg)
	if err != nil {
		return nil, err
	}
	s.res, s.ts = res, ts
	return res, nil
}

func (s *shellSession) rank(top int) {
	res, err := s.ranking()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	standings := res.Standings()
	if len(standings) == 0 {
		cMuted.Println("No ranked players.")
		return
	}
	if top > 0 && len(standings) > top {
		standings = standings[:top]
	}
	report.PrintStandingsTable(os.Stdout, standings, 0)
}

func (s *shellSession) player(args []string) {
	res, err := s.ranking()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	for _, arg := range args {
		pid, err := parsePlayerID(arg)
		if err != nil {
			cError.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		p, ok := playerReport(res, s.ts, pid)
		if !ok {
			cWarn.Fprintf(os.Stderr, "no results for player %d\n", pid)
			continue
		}
		cHeader.Fprintf(os.Stdout, "\n--- player %d ---\n", pid)
		report.PrintPlayer(os.Stdout, p)
		printNeighbourhood(res, pid, 3)
	}
}
