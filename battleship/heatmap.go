package battleship

import (
	"context"

	"github.com/bits-and-blooms/bitset"

	"github.com/powellquiring/infoguess/entropy"
)

// Heatmap is how many of the consistent combinations occupy each cell
type Heatmap struct {
	Grid Grid
	// Counts is indexed by Grid.Index
	Counts       []int
	Combinations int
}

// Analyze walks every combination that agrees with the evidence and counts
// cell occupancy
func Analyze(grid Grid, fleet []int, evidence Evidence) (Heatmap, error) {
	e, err := newEnumerator(grid, fleet, evidence)
	if err != nil {
		return Heatmap{}, err
	}
	h := Heatmap{Grid: grid, Counts: make([]int, grid.Size())}
	e.walk(func(_ Combination, occupied *bitset.BitSet) bool {
		h.Combinations++
		for i, ok := occupied.NextSet(0); ok; i, ok = occupied.NextSet(i + 1) {
			h.Counts[i]++
		}
		return true
	})
	return h, nil
}

// Feasible is false when no combination agrees with the evidence
func (h Heatmap) Feasible() bool {
	return h.Combinations > 0
}

// Probability that c holds a ship, 0 when infeasible
func (h Heatmap) Probability(c Cell) float64 {
	if h.Combinations == 0 || !h.Grid.Contains(c) {
		return 0
	}
	return float64(h.Counts[h.Grid.Index(c)]) / float64(h.Combinations)
}

// Probabilities in rows
func (h Heatmap) Probabilities() [][]float64 {
	ret := make([][]float64, h.Grid.Rows)
	for r := range ret {
		ret[r] = make([]float64, h.Grid.Cols)
		for c := range ret[r] {
			ret[r][c] = h.Probability(Cell{Row: r, Col: c})
		}
	}
	return ret
}

// Entropy sums the binary entropy of every cell. Cells are treated as
// independent, which they are not, so this is an upper bound on the entropy
// of the combinations.
func (h Heatmap) Entropy() float64 {
	sum := 0.0
	for _, c := range h.Grid.Cells() {
		sum += entropy.Binary(h.Probability(c))
	}
	return sum
}

// ExpectedGain is the expected drop in board entropy from shooting cell:
// H(now) - (p(hit)*H(if hit) + p(miss)*H(if miss)). Tried cells gain 0.
func ExpectedGain(grid Grid, fleet []int, evidence Evidence, cell Cell) (float64, error) {
	base, err := Analyze(grid, fleet, evidence)
	if err != nil {
		return 0, err
	}
	if !grid.Contains(cell) {
		return 0, outOfBounds(grid, cell)
	}
	return expectedGain(grid, fleet, evidence, base, cell)
}

func expectedGain(grid Grid, fleet []int, evidence Evidence, base Heatmap, cell Cell) (float64, error) {
	if evidence.Tried(cell) {
		return 0, nil
	}
	pHit := base.Probability(cell)
	expected := 0.0
	if pHit > 0 {
		hit, err := Analyze(grid, fleet, evidence.With(cell, Hit))
		if err != nil {
			return 0, err
		}
		expected += pHit * hit.Entropy()
	}
	if pHit < 1 {
		miss, err := Analyze(grid, fleet, evidence.With(cell, Miss))
		if err != nil {
			return 0, err
		}
		expected += (1 - pHit) * miss.Entropy()
	}
	return base.Entropy() - expected, nil
}

// GainMap is ExpectedGain for every cell, indexed by Grid.Index. Cells are
// scored concurrently on at most workers goroutines.
func GainMap(ctx context.Context, grid Grid, fleet []int, evidence Evidence, workers int) ([]float64, error) {
	base, err := Analyze(grid, fleet, evidence)
	if err != nil {
		return nil, err
	}
	return entropy.ScoreAll(ctx, grid.Cells(), workers, func(c Cell) (float64, error) {
		return expectedGain(grid, fleet, evidence, base, c)
	})
}
