package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/powellquiring/infoguess/battleship"
	"github.com/powellquiring/infoguess/engine"
)

// parseCells reads cells written as row,col
func parseCells(args []string) ([]battleship.Cell, error) {
	var cells []battleship.Cell
	for _, arg := range args {
		row, col, ok := strings.Cut(arg, ",")
		if !ok {
			return nil, fmt.Errorf("cell %q must be row,col", arg)
		}
		r, err := strconv.Atoi(strings.TrimSpace(row))
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", arg, err)
		}
		c, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", arg, err)
		}
		cells = append(cells, battleship.Cell{Row: r, Col: c})
	}
	return cells, nil
}

func printGrid(grid battleship.Grid, value func(battleship.Cell) float64) {
	fmt.Print("    ")
	for c := range grid.Cols {
		fmt.Printf(" %5d", c)
	}
	fmt.Println()
	for r := range grid.Rows {
		fmt.Printf("%3d ", r)
		for c := range grid.Cols {
			fmt.Printf(" %5.2f", value(battleship.Cell{Row: r, Col: c}))
		}
		fmt.Println()
	}
}

func simulateBattleship(ctx context.Context, g GlobalConfiguration, pad engine.PadPolicy) error {
	grid, err := g.config.Grid()
	if err != nil {
		return err
	}
	cfg, err := g.config.BattleshipGame()
	if err != nil {
		return err
	}
	games := g.config.Battleship.Games
	progress, done := g.progressFunc(games)
	results, err := battleship.SimulateMany(ctx, grid, g.config.Battleship.Ships, cfg, games, g.config.Workers, progress)
	done()
	if err != nil {
		return err
	}

	shots := make([][]float64, len(results))
	board := make([][]float64, len(results))
	for i, result := range results {
		shots[i] = result.Trace()
		board[i] = result.UncertaintyTrace()
	}
	fmt.Printf("%s grid, ships %v, strategy %s\n", grid, g.config.Battleship.Ships, cfg.Strategy)
	printSummary(engine.Summarize(results))
	printTrace("average board entropy after each shot (bits)", engine.AverageTrace(board, pad))
	printTrace("average score of each shot (bits)", engine.AverageTrace(shots, pad))
	return nil
}

func heatmapBattleship(ctx context.Context, g GlobalConfiguration, hits, misses []string) error {
	grid, err := g.config.Grid()
	if err != nil {
		return err
	}
	evidence := battleship.NewEvidence()
	hitCells, err := parseCells(hits)
	if err != nil {
		return err
	}
	missCells, err := parseCells(misses)
	if err != nil {
		return err
	}
	for _, c := range hitCells {
		evidence.Record(c, battleship.Hit)
	}
	for _, c := range missCells {
		evidence.Record(c, battleship.Miss)
	}

	fleet := g.config.Battleship.Ships
	heatmap, err := battleship.Analyze(grid, fleet, evidence)
	if err != nil {
		return err
	}
	if !heatmap.Feasible() {
		return cli.Exit("no placement of the ships matches those hits and misses", 3)
	}
	gains, err := battleship.GainMap(ctx, grid, fleet, evidence, g.config.Workers)
	if err != nil {
		return err
	}
	fmt.Printf("%d placements, board entropy %.3f bits\n", heatmap.Combinations, heatmap.Entropy())
	fmt.Println("probability of a ship")
	printGrid(grid, heatmap.Probability)
	fmt.Println("expected information gain (bits)")
	printGrid(grid, func(c battleship.Cell) float64 { return gains[grid.Index(c)] })
	return nil
}

func battleshipCommand() *cli.Command {
	return &cli.Command{
		Name:  "battleship",
		Usage: "find hidden ships one shot at a time",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rows", Usage: "grid rows"},
			&cli.IntFlag{Name: "cols", Usage: "grid columns"},
			&cli.IntSliceFlag{Name: "ship", Usage: "--ship 3 --ship 2 ship lengths in fleet order"},
		},
		Commands: []*cli.Command{
			{
				Name: "sim",
				Usage: `sim
				Simulate games on random boards and print the turn histogram and the
				average board entropy after each shot.`,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Usage: "number of games"},
					&cli.StringFlag{Name: "strategy", Aliases: []string{"s"}, Usage: "outcome, gain or random"},
					&cli.Uint64Flag{Name: "seed", Usage: "seed of the first board, game i uses seed+i"},
					padFlag("zero"),
				},
				Action: profiled(func(ctx context.Context, cmd *cli.Command) error {
					g, err := battleshipConfiguration(cmd)
					if err != nil {
						return err
					}
					pad, err := padPolicy(cmd.String("pad"))
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return simulateBattleship(ctx, g, pad)
				}),
			},
			{
				Name: "heatmap",
				Usage: `heatmap --hit 2,2 --miss 0,0
				Print the probability of a ship and the expected information gain of every cell.`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "hit", Usage: "row,col of a hit"},
					&cli.StringSliceFlag{Name: "miss", Usage: "row,col of a miss"},
				},
				Action: profiled(func(ctx context.Context, cmd *cli.Command) error {
					g, err := battleshipConfiguration(cmd)
					if err != nil {
						return err
					}
					return heatmapBattleship(ctx, g, cmd.StringSlice("hit"), cmd.StringSlice("miss"))
				}),
			},
		},
	}
}

// battleshipConfiguration applies the battleship flags over the global configuration
func battleshipConfiguration(cmd *cli.Command) (GlobalConfiguration, error) {
	g, err := globalConfiguration(cmd)
	if err != nil {
		return g, err
	}
	b := &g.config.Battleship
	if cmd.IsSet("rows") {
		b.Rows = cmd.Int("rows")
	}
	if cmd.IsSet("cols") {
		b.Cols = cmd.Int("cols")
	}
	if cmd.IsSet("ship") {
		b.Ships = cmd.IntSlice("ship")
	}
	if cmd.IsSet("games") {
		b.Games = cmd.Int("games")
	}
	if cmd.IsSet("strategy") {
		b.Strategy = cmd.String("strategy")
	}
	if cmd.IsSet("seed") {
		g.config.Seed = cmd.Uint64("seed")
	}
	if err := g.config.Validate(); err != nil {
		return g, fmt.Errorf("invalid flags: %w", err)
	}
	return g, nil
}
