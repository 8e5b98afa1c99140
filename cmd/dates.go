package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

var (
	yearRe  = regexp.MustCompile(`^\d{4}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
)

// parseBound parses a --from/--to value. An empty string is an open bound.
// Upper bounds are widened to the last second of the period they name, so
// "--to 2023" covers all of 2023 and "--to 2023-06" all of June.
func parseBound(s string, upper bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if yearRe.MatchString(s) {
		y, _ := strconv.Atoi(s)
		t := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		if upper {
			t = t.AddDate(1, 0, 0).Add(-time.Second)
		}
		return t, nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	t = t.UTC()
	if !upper {
		return t, nil
	}
	switch {
	case monthRe.MatchString(s):
		t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Add(-time.Second)
	case t.Equal(t.Truncate(24 * time.Hour)):
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return t, nil
}
