// Package model holds the plain records shared by storage, report and the CLI.
package model

import (
	"time"

	"github.com/pable/go-team-rank/internal/rating"
)

// TournamentSummary is a lightweight record for list/show commands.
type TournamentSummary struct {
	ID     string
	Source string // file the results were imported from
	HeldAt time.Time
	Tier   rating.Tier
	Teams  int
}

// ShortID returns the id prefix shown in listings.
func (s TournamentSummary) ShortID() string {
	if len(s.ID) > 12 {
		return s.ID[:12]
	}
	return s.ID
}

// PlayerReport is a ranked player's standing together with the results
// that make up their rating.
type PlayerReport struct {
	rating.Standing
	Contributions []float64 // best first
	Tournaments   int       // tournaments the player appeared in
}
