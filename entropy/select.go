package entropy

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"
)

var ErrNoProbes = errors.New("entropy: no probes to select from")

// ProbeScore is a probe together with its score and its position in the
// probe order it was scored in.
type ProbeScore[P any] struct {
	Probe P
	Score float64
	Index int
}

// ScoreAll evaluates score for every probe and returns the scores in probe
// order. Probes are scored concurrently on at most workers goroutines
// (workers <= 0 means no limit); score must only read shared state.
func ScoreAll[P any](ctx context.Context, probes []P, workers int, score func(P) (float64, error)) ([]float64, error) {
	scores := make([]float64, len(probes))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, probe := range probes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := score(probe)
			if err != nil {
				return err
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// Best returns the index of the first strictly maximal score, or -1 for an
// empty slice.
func Best(scores []float64) int {
	best := -1
	for i, s := range scores {
		if best < 0 || s > scores[best] {
			best = i
		}
	}
	return best
}

// Select scores every probe and returns the best one. Ties go to the probe
// that comes first in probes, so callers get reproducible choices by
// passing probes in a fixed order.
func Select[P any](ctx context.Context, probes []P, workers int, score func(P) (float64, error)) (ProbeScore[P], error) {
	if len(probes) == 0 {
		return ProbeScore[P]{}, ErrNoProbes
	}
	scores, err := ScoreAll(ctx, probes, workers, score)
	if err != nil {
		return ProbeScore[P]{}, err
	}
	i := Best(scores)
	return ProbeScore[P]{Probe: probes[i], Score: scores[i], Index: i}, nil
}

// Top returns up to n probes ordered by descending score, keeping probe
// order among equal scores.
func Top[P any](probes []P, scores []float64, n int) []ProbeScore[P] {
	ranked := make([]ProbeScore[P], len(probes))
	for i, probe := range probes {
		ranked[i] = ProbeScore[P]{Probe: probe, Score: scores[i], Index: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
