package battleship

import (
	"github.com/bits-and-blooms/bitset"
)

type candidate struct {
	placement Placement
	mask      *bitset.BitSet
}

// enumerator walks every fleet placement that agrees with the evidence.
// Placements touching a miss are dropped up front; the search then picks one
// placement per ship in fleet order, keeping them disjoint, and keeps the
// combinations that cover every hit.
type enumerator struct {
	grid  Grid
	ships [][]candidate
	// cells still to place from ship i to the end of the fleet
	remaining []uint
	hits      *bitset.BitSet
	occupied  *bitset.BitSet
	chosen    Combination
}

func newEnumerator(grid Grid, fleet []int, evidence Evidence) (*enumerator, error) {
	if err := validateFleet(grid, fleet); err != nil {
		return nil, err
	}
	if err := evidence.validate(grid); err != nil {
		return nil, err
	}
	size := uint(grid.Size())
	misses := bitset.New(size)
	for _, c := range evidence.MissCells() {
		misses.Set(grid.Index(c))
	}
	e := &enumerator{
		grid:      grid,
		ships:     make([][]candidate, len(fleet)),
		remaining: make([]uint, len(fleet)+1),
		hits:      bitset.New(size),
		occupied:  bitset.New(size),
		chosen:    make(Combination, 0, len(fleet)),
	}
	for _, c := range evidence.HitCells() {
		e.hits.Set(grid.Index(c))
	}
	for i, length := range fleet {
		for _, p := range Placements(grid, length) {
			mask := p.mask(grid)
			if mask.IntersectionCardinality(misses) == 0 {
				e.ships[i] = append(e.ships[i], candidate{placement: p, mask: mask})
			}
		}
	}
	for i := len(fleet) - 1; i >= 0; i-- {
		e.remaining[i] = e.remaining[i+1] + uint(fleet[i])
	}
	return e, nil
}

// walk calls visit for every valid combination until visit returns false.
// The combination and occupancy are reused between calls.
func (e *enumerator) walk(visit func(Combination, *bitset.BitSet) bool) {
	e.place(0, visit)
}

func (e *enumerator) place(ship int, visit func(Combination, *bitset.BitSet) bool) bool {
	uncovered := e.hits.DifferenceCardinality(e.occupied)
	if ship == len(e.ships) {
		if uncovered > 0 {
			return true
		}
		return visit(e.chosen, e.occupied)
	}
	if uncovered > e.remaining[ship] {
		return true
	}
	for _, c := range e.ships[ship] {
		if e.occupied.IntersectionCardinality(c.mask) > 0 {
			continue
		}
		e.occupied.InPlaceUnion(c.mask)
		e.chosen = append(e.chosen, c.placement)
		more := e.place(ship+1, visit)
		e.chosen = e.chosen[:len(e.chosen)-1]
		e.occupied.InPlaceDifference(c.mask)
		if !more {
			return false
		}
	}
	return true
}

// Walk calls visit for every combination of one placement per ship in
// fleet that agrees with the evidence, stopping early when visit returns
// false. The combination passed to visit is only valid during the call.
func Walk(grid Grid, fleet []int, evidence Evidence, visit func(Combination) bool) error {
	e, err := newEnumerator(grid, fleet, evidence)
	if err != nil {
		return err
	}
	e.walk(func(c Combination, _ *bitset.BitSet) bool {
		return visit(c)
	})
	return nil
}

// Enumerate returns every combination of one placement per ship in fleet
// such that no placement touches a miss, no two placements share a cell, and
// every hit is covered. Contradictory evidence gives an empty result.
// Equal length ships are distinct, so swapping two of them is a different
// combination.
func Enumerate(grid Grid, fleet []int, evidence Evidence) ([]Combination, error) {
	var ret []Combination
	err := Walk(grid, fleet, evidence, func(c Combination) bool {
		ret = append(ret, append(Combination(nil), c...))
		return true
	})
	return ret, err
}
