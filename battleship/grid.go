// Package battleship is the ship location game: a hidden fleet of straight
// ships on a small grid, found one shot at a time by scoring every untried
// cell against all fleet placements that agree with the shots so far.
package battleship

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set"
)

type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

type Grid struct {
	Rows, Cols int
}

func NewGrid(rows, cols int) (Grid, error) {
	g := Grid{Rows: rows, Cols: cols}
	if rows <= 0 || cols <= 0 {
		return g, &MalformedError{Value: "grid " + g.String(), Reason: "rows and cols must be positive"}
	}
	return g, nil
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

func (g Grid) Size() int {
	return g.Rows * g.Cols
}

func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Index is the row-major position of c
func (g Grid) Index(c Cell) uint {
	return uint(c.Row*g.Cols + c.Col)
}

func (g Grid) Cell(index uint) Cell {
	return Cell{Row: int(index) / g.Cols, Col: int(index) % g.Cols}
}

// Cells lists every cell in row-major order
func (g Grid) Cells() []Cell {
	ret := make([]Cell, 0, g.Size())
	for r := range g.Rows {
		for c := range g.Cols {
			ret = append(ret, Cell{Row: r, Col: c})
		}
	}
	return ret
}

type Shot int

const (
	Miss Shot = iota
	Hit
)

func (s Shot) String() string {
	if s == Hit {
		return "hit"
	}
	return "miss"
}

// Evidence is what the shots so far have revealed. Hits and Misses hold
// Cell values.
type Evidence struct {
	Hits   mapset.Set
	Misses mapset.Set
}

func NewEvidence() Evidence {
	return Evidence{Hits: mapset.NewSet(), Misses: mapset.NewSet()}
}

// Record adds the outcome of a shot at c
func (e Evidence) Record(c Cell, shot Shot) {
	if shot == Hit {
		e.Hits.Add(c)
	} else {
		e.Misses.Add(c)
	}
}

func (e Evidence) Tried(c Cell) bool {
	return (e.Hits != nil && e.Hits.Contains(c)) || (e.Misses != nil && e.Misses.Contains(c))
}

// Clone copies the evidence; the zero Evidence clones to an empty one
func (e Evidence) Clone() Evidence {
	ret := NewEvidence()
	if e.Hits != nil {
		ret.Hits = e.Hits.Clone()
	}
	if e.Misses != nil {
		ret.Misses = e.Misses.Clone()
	}
	return ret
}

// With returns a copy of e with one more shot recorded
func (e Evidence) With(c Cell, shot Shot) Evidence {
	ret := e.Clone()
	ret.Record(c, shot)
	return ret
}

func (e Evidence) HitCells() []Cell {
	return sortedCells(e.Hits)
}

func (e Evidence) MissCells() []Cell {
	return sortedCells(e.Misses)
}

func (e Evidence) validate(grid Grid) error {
	for _, c := range append(e.HitCells(), e.MissCells()...) {
		if !grid.Contains(c) {
			return outOfBounds(grid, c)
		}
	}
	return nil
}

func sortedCells(set mapset.Set) []Cell {
	var ret []Cell
	if set == nil {
		return ret
	}
	for _, item := range set.ToSlice() {
		ret = append(ret, item.(Cell))
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Row != ret[j].Row {
			return ret[i].Row < ret[j].Row
		}
		return ret[i].Col < ret[j].Col
	})
	return ret
}
