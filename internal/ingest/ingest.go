package ingest

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-team-rank/internal/rating"
)

// resultFileRe matches result files; the captured date is the tournament day.
var resultFileRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}).*\.tsv$`)

// File is a parsed result file.
type File struct {
	Path       string
	Tournament *rating.Tournament
}

// Ingester reads <Root>/<tier>/**/YYYY-MM-DD*.tsv result files.
// Symlinked directories below a tier directory are not followed.
type Ingester struct {
	Root string
	// Tiers to read; nil means all.
	Tiers []rating.Tier
	// From and Until bound tournament dates inclusively; zero means unbounded.
	From, Until time.Time
	// Workers caps concurrent file parsing; <= 0 means GOMAXPROCS.
	Workers int
	// SkipInvalid logs and drops files that fail validation instead of
	// failing the whole ingest.
	SkipInvalid bool
	Logger      *slog.Logger
}

// New returns an Ingester for root reading every tier and date.
func New(root string) *Ingester {
	return &Ingester{Root: root, Tiers: rating.AllTiers()}
}

type candidate struct {
	path string
	at   time.Time
	tier rating.Tier
}

// Ingest parses every matching file and returns them sorted chronologically.
// Files from the same day are ordered by tier, then path.
func (in *Ingester) Ingest(ctx context.Context) ([]File, error) {
	logger := in.logger()
	tiers := in.Tiers
	if tiers == nil {
		tiers = rating.AllTiers()
	}

	var cands []candidate
	for _, tier := range tiers {
		found, err := in.discover(tier)
		if err != nil {
			return nil, err
		}
		cands = append(cands, found...)
	}
	logger.Debug("discovered result files", slog.Int("count", len(cands)))

	files := make([]*File, len(cands))
	g, ctx := errgroup.WithContext(ctx)
	workers := in.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := in.readFile(c)
			if err != nil {
				if in.SkipInvalid && isInvalidTournament(err) {
					logger.Warn("skipping invalid result file",
						slog.String("path", c.path), slog.Any("error", err))
					return nil
				}
				return fmt.Errorf("ingest %s: %w", c.path, err)
			}
			files[i] = &File{Path: c.path, Tournament: t}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]File, 0, len(files))
	for _, f := range files {
		if f != nil {
			out = append(out, *f)
		}
	}
	slices.SortStableFunc(out, func(a, b File) int {
		if c := a.Tournament.Time().Compare(b.Tournament.Time()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Tournament.Tier(), b.Tournament.Tier()); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return out, nil
}

// Tournaments extracts the tournaments from files, preserving order.
func Tournaments(files []File) []*rating.Tournament {
	out := make([]*rating.Tournament, len(files))
	for i, f := range files {
		out[i] = f.Tournament
	}
	return out
}

func (in *Ingester) discover(tier rating.Tier) ([]candidate, error) {
	dir := filepath.Join(in.Root, tier.String())
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}

	var out []candidate
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		m := resultFileRe.FindStringSubmatch(d.Name())
		if m == nil {
			return nil
		}
		at, err := time.ParseInLocation(time.DateOnly, m[1], time.UTC)
		if err != nil {
			in.logger().Debug("bad date in file name, skipping", slog.String("path", path))
			return nil
		}
		if !in.From.IsZero() && at.Before(in.From) {
			return nil
		}
		if !in.Until.IsZero() && at.After(in.Until) {
			return nil
		}
		out = append(out, candidate{path: path, at: at, tier: tier})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return out, nil
}

func (in *Ingester) readFile(c candidate) (*rating.Tournament, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	results, err := ParseResults(f, in.logger().With(slog.String("path", c.path)))
	if err != nil {
		return nil, err
	}
	return rating.NewTournament(results, c.at, c.tier)
}

func (in *Ingester) logger() *slog.Logger {
	if in.Logger != nil {
		return in.Logger
	}
	return slog.Default()
}

func isInvalidTournament(err error) bool {
	return errors.Is(err, rating.ErrRepeatedPlayer) || errors.Is(err, rating.ErrInconsistentRanks)
}
