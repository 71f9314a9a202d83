// Package engine drives a guessing game turn by turn: pick the most
// informative probe, observe the real feedback, shrink the hypotheses,
// and stop once the game is solved or the turn budget runs out.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrInvalidMaxTurns = errors.New("engine: max turns must be positive")

type Status int

const (
	Active Status = iota
	Solved
	Aborted
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Solved:
		return "solved"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Game is one simulated game with a hidden truth.
type Game[P, F any] interface {
	// Select returns the next probe and its score (bits).
	Select(ctx context.Context) (P, float64, error)
	// Feedback evaluates the probe against the hidden truth.
	Feedback(probe P) (F, error)
	// Observe folds the feedback into the hypotheses and returns how many
	// hypotheses remain and the uncertainty (bits) left afterwards.
	Observe(ctx context.Context, probe P, feedback F) (remaining int, uncertainty float64, err error)
	Solved() bool
}

type Turn[P, F any] struct {
	Number      int
	Probe       P
	Feedback    F
	Entropy     float64 // score of the probe when it was chosen
	Remaining   int     // hypotheses left after the feedback
	Uncertainty float64 // bits left after the feedback
}

type Result[P, F any] struct {
	Turns      []Turn[P, F]
	Status     Status
	TurnsTaken int
	// Infeasible is set when the evidence left no hypothesis at all.
	Infeasible bool
}

// Trace returns the probe score of every turn.
func (r Result[P, F]) Trace() []float64 {
	trace := make([]float64, len(r.Turns))
	for i, turn := range r.Turns {
		trace[i] = turn.Entropy
	}
	return trace
}

// UncertaintyTrace returns the bits left after every turn.
func (r Result[P, F]) UncertaintyTrace() []float64 {
	trace := make([]float64, len(r.Turns))
	for i, turn := range r.Turns {
		trace[i] = turn.Uncertainty
	}
	return trace
}

// Last returns the final turn; ok is false when no turn was played.
func (r Result[P, F]) Last() (turn Turn[P, F], ok bool) {
	if len(r.Turns) == 0 {
		return turn, false
	}
	return r.Turns[len(r.Turns)-1], true
}

// Run plays g until it is solved or maxTurns turns have been played.
func Run[P, F any](ctx context.Context, g Game[P, F], maxTurns int) (Result[P, F], error) {
	result := Result[P, F]{Status: Active}
	if maxTurns <= 0 {
		return result, ErrInvalidMaxTurns
	}
	if g.Solved() {
		result.Status = Solved
		return result, nil
	}

	for number := 1; number <= maxTurns; number++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		probe, score, err := g.Select(ctx)
		if err != nil {
			return result, fmt.Errorf("turn %d: select probe: %w", number, err)
		}
		feedback, err := g.Feedback(probe)
		if err != nil {
			return result, fmt.Errorf("turn %d: feedback: %w", number, err)
		}
		remaining, uncertainty, err := g.Observe(ctx, probe, feedback)
		if err != nil {
			return result, fmt.Errorf("turn %d: observe: %w", number, err)
		}
		result.Turns = append(result.Turns, Turn[P, F]{
			Number:      number,
			Probe:       probe,
			Feedback:    feedback,
			Entropy:     score,
			Remaining:   remaining,
			Uncertainty: uncertainty,
		})
		result.TurnsTaken = number
		log.Debug().
			Int("turn", number).
			Interface("probe", probe).
			Interface("feedback", feedback).
			Float64("entropy", score).
			Int("remaining", remaining).
			Msg("turn played")

		if g.Solved() {
			result.Status = Solved
			return result, nil
		}
		if remaining == 0 {
			result.Infeasible = true
			log.Warn().Int("turn", number).Msg("no hypothesis is consistent with the evidence")
			break
		}
	}

	result.Status = Aborted
	return result, nil
}
