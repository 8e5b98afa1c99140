package storage

import (
	"cmp"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/pable/go-team-rank/internal/model"
	"github.com/pable/go-team-rank/internal/rating"
)

// TournamentID is the content hash of a tournament: tier, date and placings.
// Importing the same results twice yields the same id, whatever the order
// of tied rows in the source file.
func TournamentID(t *rating.Tournament) string {
	results := t.Results()
	slices.SortFunc(results, func(a, b rating.Placing) int {
		if c := cmp.Compare(a.Place, b.Place); c != 0 {
			return c
		}
		pa, pb := a.Team.Players(), b.Team.Players()
		if c := cmp.Compare(pa[0], pb[0]); c != 0 {
			return c
		}
		return cmp.Compare(pa[1], pb[1])
	})

	h := sha256.New()
	fmt.Fprintf(h, "%s\n%s\n", t.Tier(), formatTime(t.Time()))
	for _, r := range results {
		p := r.Team.Players()
		fmt.Fprintf(h, "%d\t%d\t%d\n", r.Place, p[0], p[1])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// TournamentExists returns true if a tournament with the given id is already stored.
func (db *DB) TournamentExists(id string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM tournaments WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertTournament stores a tournament and its placings in one transaction
// and returns its id. Re-inserting the same tournament replaces it.
func (db *DB) InsertTournament(source string, t *rating.Tournament) (string, error) {
	id := TournamentID(t)
	results := t.Results()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM placings WHERE tournament_id = ?", id); err != nil {
		return "", fmt.Errorf("clear placings: %w", err)
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO tournaments(id, source, held_at, tier, teams)
		VALUES (?, ?, ?, ?, ?)`,
		id, source, formatTime(t.Time()), t.Tier().String(), len(results),
	)
	if err != nil {
		return "", fmt.Errorf("insert tournament: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO placings(tournament_id, place, player_a, player_b)
		VALUES (?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range results {
		p := r.Team.Players()
		if _, err := stmt.Exec(id, r.Place, formatPlayer(p[0]), formatPlayer(p[1])); err != nil {
			return "", fmt.Errorf("insert placing %d for %s: %w", r.Place, id, err)
		}
	}
	return id, tx.Commit()
}

// ListTournaments returns all stored tournaments ordered by date desc.
func (db *DB) ListTournaments() ([]model.TournamentSummary, error) {
	rows, err := db.conn.Query(`
		SELECT id, source, held_at, tier, teams
		FROM tournaments ORDER BY held_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TournamentSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetTournamentByPrefix finds the first tournament whose id starts with the given prefix.
func (db *DB) GetTournamentByPrefix(prefix string) (*model.TournamentSummary, error) {
	row := db.conn.QueryRow(`
		SELECT id, source, held_at, tier, teams
		FROM tournaments WHERE id LIKE ? ORDER BY id LIMIT 1`, prefix+"%")
	s, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPlacings returns the placings of a tournament, best place first.
func (db *DB) GetPlacings(id string) ([]rating.Placing, error) {
	rows, err := db.conn.Query(`
		SELECT place, player_a, player_b
		FROM placings WHERE tournament_id = ?
		ORDER BY place, player_a`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rating.Placing
	for rows.Next() {
		var place int
		var a, b string
		if err := rows.Scan(&place, &a, &b); err != nil {
			return nil, err
		}
		p, err := placing(place, a, b)
		if err != nil {
			return nil, fmt.Errorf("tournament %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LoadTournaments returns stored tournaments held within [from, until] in
// chronological order. Zero bounds are open; nil tiers means all tiers.
// Stored results were validated on insert and are not re-checked.
func (db *DB) LoadTournaments(from, until time.Time, tiers []rating.Tier) ([]*rating.Tournament, error) {
	lo, hi := "", "9999"
	if !from.IsZero() {
		lo = formatTime(from)
	}
	if !until.IsZero() {
		hi = formatTime(until)
	}

	rows, err := db.conn.Query(`
		SELECT t.id, t.held_at, t.tier, p.place, p.player_a, p.player_b
		FROM tournaments t
		LEFT JOIN placings p ON p.tournament_id = t.id
		WHERE t.held_at >= ? AND t.held_at <= ?
		ORDER BY t.held_at, t.id, p.place, p.player_a`, lo, hi)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out     []*rating.Tournament
		curID   string
		curAt   time.Time
		curTier rating.Tier
		results []rating.Placing
	)
	flush := func() {
		if curID == "" {
			return
		}
		if tiers == nil || slices.Contains(tiers, curTier) {
			out = append(out, rating.NewTournamentUnchecked(results, curAt, curTier))
		}
		results = nil
	}

	for rows.Next() {
		var (
			id, heldAt, tierStr string
			place               sql.NullInt64
			a, b                sql.NullString
		)
		if err := rows.Scan(&id, &heldAt, &tierStr, &place, &a, &b); err != nil {
			return nil, err
		}
		if id != curID {
			flush()
			curID = id
			if curAt, err = parseTime(heldAt); err != nil {
				return nil, fmt.Errorf("tournament %s: %w", id, err)
			}
			if curTier, err = rating.ParseTier(tierStr); err != nil {
				return nil, fmt.Errorf("tournament %s: %w", id, err)
			}
		}
		if !place.Valid {
			continue // no placings
		}
		p, err := placing(int(place.Int64), a.String, b.String)
		if err != nil {
			return nil, fmt.Errorf("tournament %s: %w", id, err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (model.TournamentSummary, error) {
	var s model.TournamentSummary
	var heldAt, tierStr string
	if err := row.Scan(&s.ID, &s.Source, &heldAt, &tierStr, &s.Teams); err != nil {
		return s, err
	}
	var err error
	if s.HeldAt, err = parseTime(heldAt); err != nil {
		return s, err
	}
	if s.Tier, err = rating.ParseTier(tierStr); err != nil {
		return s, err
	}
	return s, nil
}

func placing(place int, a, b string) (rating.Placing, error) {
	pa, err := strconv.ParseUint(a, 10, 64)
	if err != nil {
		return rating.Placing{}, fmt.Errorf("player id %q: %w", a, err)
	}
	pb, err := strconv.ParseUint(b, 10, 64)
	if err != nil {
		return rating.Placing{}, fmt.Errorf("player id %q: %w", b, err)
	}
	team, err := rating.NewTeam(rating.PlayerID(pa), rating.PlayerID(pb))
	if err != nil {
		return rating.Placing{}, err
	}
	return rating.Placing{Place: place, Team: team}, nil
}

// Player ids are stored as TEXT: uint64 does not fit SQLite's signed INTEGER.
func formatPlayer(pid rating.PlayerID) string {
	return strconv.FormatUint(uint64(pid), 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
