package rating

import (
	"fmt"
	"math"
	"strings"
)

// Tier is the category of a tournament; it selects the point base.
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierMajor
	TierChampionship
)

// AllTiers lists every tier from least to most prestigious.
func AllTiers() []Tier {
	return []Tier{TierSmall, TierMedium, TierMajor, TierChampionship}
}

// String returns the lowercase name, which is also the result directory name.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierMajor:
		return "major"
	case TierChampionship:
		return "championship"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier is the inverse of Tier.String. Matching is case-insensitive.
func ParseTier(s string) (Tier, error) {
	for _, t := range AllTiers() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// Default tuning constants.
const (
	DefaultFinishDecay  = 1.1
	DefaultAgeDecay     = 1.1
	DefaultRecordLength = 10
)

// Config holds the numeric tuning of a ranking run.
type Config struct {
	FinishDecay  float64
	AgeDecay     float64
	RecordLength int
	PointBase    map[Tier]float64
}

// DefaultConfig returns a fresh Config with the standard constants.
func DefaultConfig() Config {
	return Config{
		FinishDecay:  DefaultFinishDecay,
		AgeDecay:     DefaultAgeDecay,
		RecordLength: DefaultRecordLength,
		PointBase: map[Tier]float64{
			TierSmall:        50,
			TierMedium:       125,
			TierMajor:        200,
			TierChampionship: 250,
		},
	}
}

// WithPointBase returns a copy of c with the point base of tier replaced.
func (c Config) WithPointBase(tier Tier, base float64) Config {
	pb := make(map[Tier]float64, len(c.PointBase)+1)
	for k, v := range c.PointBase {
		pb[k] = v
	}
	pb[tier] = base
	c.PointBase = pb
	return c
}

// Validate rejects configurations that could produce NaN or infinite points.
func (c Config) Validate() error {
	if !(c.FinishDecay > 0) || math.IsInf(c.FinishDecay, 0) {
		return fmt.Errorf("finish decay must be positive and finite, got %v", c.FinishDecay)
	}
	if !(c.AgeDecay > 0) || math.IsInf(c.AgeDecay, 0) {
		return fmt.Errorf("age decay must be positive and finite, got %v", c.AgeDecay)
	}
	if c.RecordLength < 1 {
		return fmt.Errorf("record length must be at least 1, got %d", c.RecordLength)
	}
	for _, t := range AllTiers() {
		base, ok := c.PointBase[t]
		if !ok {
			return fmt.Errorf("no point base for tier %s", t)
		}
		if !(base >= 0) || math.IsInf(base, 0) {
			return fmt.Errorf("point base for tier %s must be finite and non-negative, got %v", t, base)
		}
	}
	return nil
}
