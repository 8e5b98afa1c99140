// Package ingest discovers tournament result files on disk and turns them
// into validated tournaments.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pable/go-team-rank/internal/rating"
)

// ParseResults reads tab-separated rows of place, player, player. Lines
// starting with '#' are comments. Rows whose place or player ids don't parse
// (headers, notes) are skipped; a row naming the same player twice is an error.
func ParseResults(r io.Reader, logger *slog.Logger) ([]rating.Placing, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []rating.Placing
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not parse TSV: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(record) < 3 {
			logger.Debug("too few fields, skipping", slog.Int("line", line), slog.Int("fields", len(record)))
			continue
		}
		place, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil || place < 0 {
			logger.Debug("could not parse rank, skipping", slog.Int("line", line), slog.String("value", record[0]))
			continue
		}
		p1, err := parsePlayer(record[1])
		if err != nil {
			logger.Debug("could not parse player ID, skipping", slog.Int("line", line), slog.String("value", record[1]))
			continue
		}
		p2, err := parsePlayer(record[2])
		if err != nil {
			logger.Debug("could not parse player ID, skipping", slog.Int("line", line), slog.String("value", record[2]))
			continue
		}

		team, err := rating.NewTeam(p1, p2)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rating.Placing{Place: place, Team: team})
	}
	return out, nil
}

func parsePlayer(s string) (rating.PlayerID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return rating.PlayerID(n), err
}
