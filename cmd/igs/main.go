package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3" // imports as package "cli"

	"github.com/powellquiring/infoguess/config"
	"github.com/powellquiring/infoguess/engine"
)

func cpuProfile() func() {
	f, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	pprof.StartCPUProfile(f)
	return pprof.StopCPUProfile
}

// profiled runs action under the cpu profiler when --profile is set
func profiled(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Bool("profile") {
			def := cpuProfile()
			defer def()
		}
		return action(ctx, cmd)
	}
}

// GlobalConfiguration is the loaded config with the command line flags applied
type GlobalConfiguration struct {
	config   config.Config
	progress bool
}

func globalConfiguration(cmd *cli.Command) (GlobalConfiguration, error) {
	c, err := config.Load(cmd.String("config"))
	if err != nil {
		return GlobalConfiguration{}, err
	}
	if cmd.IsSet("max-turns") {
		c.MaxTurns = cmd.Int("max-turns")
	}
	if cmd.IsSet("workers") {
		c.Workers = cmd.Int("workers")
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	}
	if cmd.IsSet("log-level") {
		c.LogLevel = cmd.String("log-level")
	}
	if err := c.Validate(); err != nil {
		return GlobalConfiguration{}, fmt.Errorf("invalid flags: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	return GlobalConfiguration{config: c, progress: cmd.Bool("progress")}, nil
}

// progressFunc returns a progress callback for n games, silent unless
// --progress was given
func (g GlobalConfiguration) progressFunc(n int) (func(), func()) {
	var bar *progressbar.ProgressBar
	if g.progress {
		bar = progressbar.Default(int64(n))
	} else {
		bar = progressbar.DefaultSilent(int64(n))
	}
	return func() { _ = bar.Add(1) }, func() { _ = bar.Finish() }
}

func padPolicy(name string) (engine.PadPolicy, error) {
	switch name {
	case "none":
		return engine.PadNone, nil
	case "zero":
		return engine.PadZero, nil
	case "last":
		return engine.PadLast, nil
	}
	return 0, fmt.Errorf("unknown pad policy %q, use none, zero or last", name)
}

func printSummary(summary engine.Summary) {
	fmt.Printf("games %d solved %d aborted %d mean turns %.3f max turns %d\n",
		summary.Games, summary.Solved, summary.Aborted, summary.MeanTurns, summary.MaxTurns)
	for _, turns := range summary.Turns() {
		fmt.Printf("%3d %5d %s\n", turns, summary.Histogram[turns], strings.Repeat("#", min(summary.Histogram[turns], 60)))
	}
}

func printTrace(name string, trace []float64) {
	fmt.Println(name)
	for i, bits := range trace {
		fmt.Printf("%3d %.3f\n", i+1, bits)
	}
}

func padFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:  "pad",
		Value: value,
		Usage: "how games that ended early count in the per turn average: none, zero or last",
	}
}

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmd := &cli.Command{
		Name:  "igs",
		Usage: "entropy guided search for wordle and battleship",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "yaml config file",
				Sources: cli.EnvVars("IGS_CONFIG"),
			},
			&cli.IntFlag{
				Name:  "max-turns",
				Usage: "give up a game after this many turns",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "concurrent games or probe scorers, 0 is unbounded",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:    "progress",
				Value:   false,
				Aliases: []string{"p"},
				Usage:   "show progress bar",
			},
			&cli.BoolFlag{
				Name:  "profile",
				Value: false,
				Usage: "store profile data to analyze",
			},
		},
		Commands: []*cli.Command{
			wordleCommand(),
			battleshipCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("igs failed")
	}
}
