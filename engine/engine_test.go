package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halving guesses a number in [lo, hi) by bisection.
type halving struct {
	lo, hi, secret int
	solved         bool
	empty          bool // drop every hypothesis on the first observation
	selectErr      error
}

func (h *halving) Select(ctx context.Context) (int, float64, error) {
	if h.selectErr != nil {
		return 0, 0, h.selectErr
	}
	return (h.lo + h.hi) / 2, 1, nil
}

func (h *halving) Feedback(probe int) (int, error) {
	switch {
	case h.secret < probe:
		return -1, nil
	case h.secret > probe:
		return 1, nil
	}
	return 0, nil
}

func (h *halving) Observe(ctx context.Context, probe int, feedback int) (int, float64, error) {
	switch feedback {
	case -1:
		h.hi = probe
	case 1:
		h.lo = probe + 1
	default:
		h.lo, h.hi, h.solved = probe, probe+1, true
	}
	if h.empty {
		return 0, 0, nil
	}
	return h.hi - h.lo, 0, nil
}

func (h *halving) Solved() bool { return h.solved }

func TestRunSolves(t *testing.T) {
	g := &halving{lo: 0, hi: 16, secret: 11}
	result, err := Run[int, int](context.Background(), g, 10)
	require.NoError(t, err)
	assert.Equal(t, Solved, result.Status)
	assert.Equal(t, len(result.Turns), result.TurnsTaken)
	assert.LessOrEqual(t, result.TurnsTaken, 5)
	last, ok := result.Last()
	require.True(t, ok)
	assert.Equal(t, 11, last.Probe)
	assert.Equal(t, 0, last.Feedback)
	for i, turn := range result.Turns {
		assert.Equal(t, i+1, turn.Number)
	}
	assert.Len(t, result.Trace(), result.TurnsTaken)
	assert.Len(t, result.UncertaintyTrace(), result.TurnsTaken)
}

func TestRunAborts(t *testing.T) {
	g := &halving{lo: 0, hi: 1024, secret: 1000}
	result, err := Run[int, int](context.Background(), g, 3)
	require.NoError(t, err)
	assert.Equal(t, Aborted, result.Status)
	assert.Equal(t, 3, result.TurnsTaken)
	assert.False(t, result.Infeasible)
}

func TestRunInfeasible(t *testing.T) {
	g := &halving{lo: 0, hi: 1024, secret: 1000, empty: true}
	result, err := Run[int, int](context.Background(), g, 10)
	require.NoError(t, err)
	assert.Equal(t, Aborted, result.Status)
	assert.True(t, result.Infeasible)
	assert.Equal(t, 1, result.TurnsTaken)
}

func TestRunInvalidMaxTurns(t *testing.T) {
	_, err := Run[int, int](context.Background(), &halving{hi: 4}, 0)
	assert.ErrorIs(t, err, ErrInvalidMaxTurns)
}

func TestRunSelectError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run[int, int](context.Background(), &halving{hi: 4, selectErr: boom}, 3)
	assert.ErrorIs(t, err, boom)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run[int, int](ctx, &halving{hi: 4, secret: 2}, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAlreadySolved(t *testing.T) {
	result, err := Run[int, int](context.Background(), &halving{solved: true}, 3)
	require.NoError(t, err)
	assert.Equal(t, Solved, result.Status)
	assert.Zero(t, result.TurnsTaken)
	_, ok := result.Last()
	assert.False(t, ok)
}

func TestBatchKeepsInputOrder(t *testing.T) {
	secrets := []int{3, 14, 15, 9, 2, 6}
	var done atomic.Int32
	results, err := Batch(context.Background(), secrets, 2, func(ctx context.Context, secret int) (Result[int, int], error) {
		return Run[int, int](ctx, &halving{lo: 0, hi: 16, secret: secret}, 8)
	}, func() { done.Add(1) })
	require.NoError(t, err)
	require.Len(t, results, len(secrets))
	assert.Equal(t, int32(len(secrets)), done.Load())
	for i, r := range results {
		last, ok := r.Last()
		require.True(t, ok)
		assert.Equal(t, secrets[i], last.Probe)
	}

	summary := Summarize(results)
	assert.Equal(t, len(secrets), summary.Games)
	assert.Equal(t, len(secrets), summary.Solved)
	assert.Zero(t, summary.Aborted)
	total := 0
	for _, k := range summary.Turns() {
		total += summary.Histogram[k]
	}
	assert.Equal(t, len(secrets), total)
	assert.Greater(t, summary.MeanTurns, 0.0)
}

func TestBatchError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Batch(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, i int) (int, error) {
		if i == 2 {
			return 0, boom
		}
		return i, nil
	}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "solved", Solved.String())
	assert.Equal(t, "aborted", Aborted.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "status(7)", Status(7).String())
}

func TestAverageTrace(t *testing.T) {
	traces := [][]float64{{4, 2}, {2}, {}}
	tests := []struct {
		name   string
		policy PadPolicy
		want   []float64
	}{
		{"none", PadNone, []float64{3, 2}},
		{"zero", PadZero, []float64{2, 2.0 / 3}},
		{"last", PadLast, []float64{2, 4.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageTrace(traces, tt.policy)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
	assert.Empty(t, AverageTrace(nil, PadZero))
}
