package engine

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Batch runs play once per input on at most workers goroutines
// (workers <= 0 means one goroutine per input) and returns the results in
// input order. Each call to play must own its game state; nothing is shared
// between runs. progress, if not nil, is called after every finished run.
func Batch[T, R any](ctx context.Context, inputs []T, workers int, play func(context.Context, T) (R, error), progress func()) ([]R, error) {
	id := uuid.New()
	start := time.Now()
	log.Info().Str("batch", id.String()).Int("games", len(inputs)).Int("workers", workers).Msg("batch started")

	results := make([]R, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, input := range inputs {
		g.Go(func() error {
			r, err := play(ctx, input)
			if err != nil {
				return err
			}
			results[i] = r
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("batch", id.String()).Msg("batch failed")
		return nil, err
	}
	log.Info().Str("batch", id.String()).Dur("elapsed", time.Since(start)).Msg("batch finished")
	return results, nil
}

// Summary aggregates the outcome of many games.
type Summary struct {
	Games     int
	Solved    int
	Aborted   int
	MeanTurns float64 // over solved games
	MaxTurns  int
	// Histogram maps turns taken to the number of solved games.
	Histogram map[int]int
}

// Turns returns the histogram keys in ascending order.
func (s Summary) Turns() []int {
	keys := make([]int, 0, len(s.Histogram))
	for k := range s.Histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func Summarize[P, F any](results []Result[P, F]) Summary {
	s := Summary{Games: len(results), Histogram: make(map[int]int)}
	total := 0
	for _, r := range results {
		if r.Status != Solved {
			s.Aborted++
			continue
		}
		s.Solved++
		total += r.TurnsTaken
		s.Histogram[r.TurnsTaken]++
		if r.TurnsTaken > s.MaxTurns {
			s.MaxTurns = r.TurnsTaken
		}
	}
	if s.Solved > 0 {
		s.MeanTurns = float64(total) / float64(s.Solved)
	}
	return s
}
