package battleship

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/powellquiring/infoguess/engine"
	"github.com/powellquiring/infoguess/entropy"
)

// Strategy decides how untried cells are scored
type Strategy int

const (
	// StrategyOutcome scores a cell by the entropy of its hit/miss outcome
	StrategyOutcome Strategy = iota
	// StrategyGain scores a cell by its expected drop in board entropy
	StrategyGain
	// StrategyRandom shoots a random untried cell
	StrategyRandom
)

var strategyNames = map[Strategy]string{
	StrategyOutcome: "outcome",
	StrategyGain:    "gain",
	StrategyRandom:  "random",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("battleship: unknown strategy %q", name)
}

type Config struct {
	Strategy Strategy
	MaxTurns int
	// Workers bounds concurrent cell scoring, 0 is unbounded
	Workers int
	// Seed drives StrategyRandom
	Seed uint64
}

// Game shoots at a hidden board. It implements engine.Game.
type Game struct {
	board    *Board
	fleet    []int
	cfg      Config
	evidence Evidence
	heatmap  Heatmap
	rng      *rand.Rand
}

func NewGame(board *Board, cfg Config) (*Game, error) {
	if _, ok := strategyNames[cfg.Strategy]; !ok {
		return nil, fmt.Errorf("battleship: unknown strategy %d", int(cfg.Strategy))
	}
	g := &Game{
		board:    board,
		fleet:    board.Fleet(),
		cfg:      cfg,
		evidence: NewEvidence(),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
	heatmap, err := Analyze(board.Grid(), g.fleet, g.evidence)
	if err != nil {
		return nil, err
	}
	g.heatmap = heatmap
	return g, nil
}

func (g *Game) Evidence() Evidence {
	return g.evidence
}

// Heatmap of the combinations consistent with the shots so far
func (g *Game) Heatmap() Heatmap {
	return g.heatmap
}

func (g *Game) untried() []Cell {
	var ret []Cell
	for _, c := range g.board.Grid().Cells() {
		if !g.evidence.Tried(c) {
			ret = append(ret, c)
		}
	}
	return ret
}

func (g *Game) outcome(c Cell) float64 {
	return entropy.Binary(g.heatmap.Probability(c))
}

// Select returns the best untried cell for the strategy. When no cell has
// a positive score the most likely cell is shot instead, ties to the first
// in row-major order.
func (g *Game) Select(ctx context.Context) (Cell, float64, error) {
	cells := g.untried()
	if len(cells) == 0 {
		return Cell{}, 0, fmt.Errorf("battleship: every cell tried: %w", entropy.ErrNoProbes)
	}
	var best entropy.ProbeScore[Cell]
	var err error
	switch g.cfg.Strategy {
	case StrategyRandom:
		c := cells[g.rng.Intn(len(cells))]
		return c, g.outcome(c), nil
	case StrategyGain:
		grid := g.board.Grid()
		best, err = entropy.Select(ctx, cells, g.cfg.Workers, func(c Cell) (float64, error) {
			return expectedGain(grid, g.fleet, g.evidence, g.heatmap, c)
		})
	default:
		best, err = entropy.Select(ctx, cells, g.cfg.Workers, func(c Cell) (float64, error) {
			return g.outcome(c), nil
		})
	}
	if err != nil {
		return Cell{}, 0, err
	}
	if best.Score > 0 {
		return best.Probe, best.Score, nil
	}
	likely := cells[0]
	for _, c := range cells[1:] {
		if g.heatmap.Probability(c) > g.heatmap.Probability(likely) {
			likely = c
		}
	}
	return likely, 0, nil
}

func (g *Game) Feedback(c Cell) (Shot, error) {
	return g.board.Shoot(c)
}

// Observe records the shot and enumerates the combinations again from the
// full evidence
func (g *Game) Observe(ctx context.Context, c Cell, shot Shot) (int, float64, error) {
	g.evidence.Record(c, shot)
	heatmap, err := Analyze(g.board.Grid(), g.fleet, g.evidence)
	if err != nil {
		return 0, 0, err
	}
	g.heatmap = heatmap
	return heatmap.Combinations, heatmap.Entropy(), nil
}

// Solved once every ship cell has been hit
func (g *Game) Solved() bool {
	return g.board.SunkBy(g.evidence.Hits)
}

// Simulate plays one game against board and returns its turn history
func Simulate(ctx context.Context, board *Board, cfg Config) (engine.Result[Cell, Shot], error) {
	g, err := NewGame(board, cfg)
	if err != nil {
		return engine.Result[Cell, Shot]{}, err
	}
	return engine.Run[Cell, Shot](ctx, g, cfg.MaxTurns)
}

// SimulateMany plays games independent games, each on a random board drawn
// from seed+i, on at most workers goroutines
func SimulateMany(ctx context.Context, grid Grid, fleet []int, cfg Config, games, workers int, progress func()) ([]engine.Result[Cell, Shot], error) {
	seeds := make([]uint64, games)
	for i := range seeds {
		seeds[i] = cfg.Seed + uint64(i)
	}
	return engine.Batch(ctx, seeds, workers, func(ctx context.Context, seed uint64) (engine.Result[Cell, Shot], error) {
		board, err := RandomBoard(grid, fleet, rand.New(rand.NewSource(seed)))
		if err != nil {
			return engine.Result[Cell, Shot]{}, err
		}
		gameCfg := cfg
		gameCfg.Seed = seed
		gameCfg.Workers = 1
		return Simulate(ctx, board, gameCfg)
	}, progress)
}
