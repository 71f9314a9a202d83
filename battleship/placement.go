package battleship

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}
	return "H"
}

// Placement is one ship: Length cells starting at Start, running right
// (Horizontal) or down (Vertical).
type Placement struct {
	Start       Cell
	Length      int
	Orientation Orientation
}

func (p Placement) String() string {
	return fmt.Sprintf("%d%s@%s", p.Length, p.Orientation, p.Start)
}

func (p Placement) Cells() []Cell {
	ret := make([]Cell, p.Length)
	for i := range p.Length {
		if p.Orientation == Horizontal {
			ret[i] = Cell{Row: p.Start.Row, Col: p.Start.Col + i}
		} else {
			ret[i] = Cell{Row: p.Start.Row + i, Col: p.Start.Col}
		}
	}
	return ret
}

func (p Placement) Covers(c Cell) bool {
	if p.Orientation == Horizontal {
		return c.Row == p.Start.Row && c.Col >= p.Start.Col && c.Col < p.Start.Col+p.Length
	}
	return c.Col == p.Start.Col && c.Row >= p.Start.Row && c.Row < p.Start.Row+p.Length
}

func (p Placement) mask(grid Grid) *bitset.BitSet {
	ret := bitset.New(uint(grid.Size()))
	for _, c := range p.Cells() {
		ret.Set(grid.Index(c))
	}
	return ret
}

// Combination is one placement per ship, in fleet order
type Combination []Placement

func (c Combination) Covers(cell Cell) bool {
	for _, p := range c {
		if p.Covers(cell) {
			return true
		}
	}
	return false
}

func (c Combination) Cells() []Cell {
	var ret []Cell
	for _, p := range c {
		ret = append(ret, p.Cells()...)
	}
	return ret
}

// Occupies is the feedback of shooting cell when combination is the truth
func Occupies(cell Cell, combination Combination) (Shot, error) {
	if cell.Row < 0 || cell.Col < 0 {
		return Miss, &MalformedError{Value: "cell " + cell.String(), Reason: "negative coordinate"}
	}
	if combination.Covers(cell) {
		return Hit, nil
	}
	return Miss, nil
}

// Placements lists every straight run of length cells inside the grid,
// horizontal runs first, each in row-major order of the start cell. A ship
// of length 1 is listed once per cell.
func Placements(grid Grid, length int) []Placement {
	var ret []Placement
	if length <= 0 {
		return ret
	}
	for r := range grid.Rows {
		for c := 0; c+length <= grid.Cols; c++ {
			ret = append(ret, Placement{Start: Cell{Row: r, Col: c}, Length: length, Orientation: Horizontal})
		}
	}
	if length == 1 {
		return ret
	}
	for r := 0; r+length <= grid.Rows; r++ {
		for c := range grid.Cols {
			ret = append(ret, Placement{Start: Cell{Row: r, Col: c}, Length: length, Orientation: Vertical})
		}
	}
	return ret
}

func validateFleet(grid Grid, fleet []int) error {
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return &MalformedError{Value: "grid " + grid.String(), Reason: "rows and cols must be positive"}
	}
	if len(fleet) == 0 {
		return &MalformedError{Value: "fleet", Reason: "no ships"}
	}
	for _, length := range fleet {
		if length <= 0 {
			return &MalformedError{Value: fmt.Sprintf("ship length %d", length), Reason: "must be positive"}
		}
	}
	return nil
}
