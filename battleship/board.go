package battleship

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"golang.org/x/exp/rand"
)

// tries per ship before RandomBoard gives up on a crowded grid
const maxPlacementTries = 1000

// Board is the hidden truth of one game
type Board struct {
	grid     Grid
	ships    Combination
	occupied mapset.Set
}

// NewBoard checks that every ship is inside the grid and no two overlap
func NewBoard(grid Grid, ships Combination) (*Board, error) {
	fleet := make([]int, len(ships))
	for i, p := range ships {
		fleet[i] = p.Length
	}
	if err := validateFleet(grid, fleet); err != nil {
		return nil, err
	}
	b := &Board{grid: grid, ships: append(Combination(nil), ships...), occupied: mapset.NewSet()}
	for _, p := range ships {
		for _, c := range p.Cells() {
			if !grid.Contains(c) {
				return nil, &MalformedError{Value: "ship " + p.String(), Reason: fmt.Sprintf("outside %s grid", grid)}
			}
			if !b.occupied.Add(c) {
				return nil, &MalformedError{Value: "ship " + p.String(), Reason: "overlaps another ship at " + c.String()}
			}
		}
	}
	return b, nil
}

// RandomBoard places the fleet in order, each ship at a random free run
func RandomBoard(grid Grid, fleet []int, rng *rand.Rand) (*Board, error) {
	if err := validateFleet(grid, fleet); err != nil {
		return nil, err
	}
	var ships Combination
	taken := mapset.NewThreadUnsafeSet()
	for _, length := range fleet {
		placed := false
		for try := 0; try < maxPlacementTries && !placed; try++ {
			p := Placement{Length: length, Orientation: Orientation(rng.Intn(2))}
			rows, cols := grid.Rows, grid.Cols
			if p.Orientation == Horizontal {
				cols -= length - 1
			} else {
				rows -= length - 1
			}
			if rows <= 0 || cols <= 0 {
				continue
			}
			p.Start = Cell{Row: rng.Intn(rows), Col: rng.Intn(cols)}
			cells := p.Cells()
			free := true
			for _, c := range cells {
				if taken.Contains(c) {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			for _, c := range cells {
				taken.Add(c)
			}
			ships = append(ships, p)
			placed = true
		}
		if !placed {
			return nil, fmt.Errorf("battleship: no room for a ship of length %d on a %s grid", length, grid)
		}
	}
	return NewBoard(grid, ships)
}

func (b *Board) Grid() Grid {
	return b.grid
}

func (b *Board) Ships() Combination {
	return b.ships
}

func (b *Board) Fleet() []int {
	fleet := make([]int, len(b.ships))
	for i, p := range b.ships {
		fleet[i] = p.Length
	}
	return fleet
}

// Shoot is Hit when any ship occupies c
func (b *Board) Shoot(c Cell) (Shot, error) {
	if !b.grid.Contains(c) {
		return Miss, outOfBounds(b.grid, c)
	}
	if b.occupied.Contains(c) {
		return Hit, nil
	}
	return Miss, nil
}

// SunkBy reports whether every ship cell is among the hits
func (b *Board) SunkBy(hits mapset.Set) bool {
	return b.occupied.IsSubset(hits)
}

// Render draws the board, O for ships, X for hits, M for misses
func (b *Board) Render(evidence Evidence) string {
	var sb strings.Builder
	for r := range b.grid.Rows {
		for col := range b.grid.Cols {
			c := Cell{Row: r, Col: col}
			if col > 0 {
				sb.WriteByte(' ')
			}
			switch {
			case evidence.Hits != nil && evidence.Hits.Contains(c):
				sb.WriteByte('X')
			case evidence.Misses != nil && evidence.Misses.Contains(c):
				sb.WriteByte('M')
			case b.occupied.Contains(c):
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
