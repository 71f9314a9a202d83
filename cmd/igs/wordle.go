package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/powellquiring/infoguess/engine"
	"github.com/powellquiring/infoguess/wordle"
)

func dictionary(g GlobalConfiguration) (*wordle.Dictionary, error) {
	words, err := g.config.Words()
	if err != nil {
		return nil, err
	}
	return wordle.NewDictionary(words)
}

// playWordle with guess/answer pairs provided
func playWordle(ctx context.Context, g GlobalConfiguration, args []string) error {
	d, err := dictionary(g)
	if err != nil {
		return err
	}
	guessAnswers := []wordle.GuessAnswer{}
	for i := 0; i < len(args); i += 2 {
		guessAnswers = append(guessAnswers, wordle.GuessAnswer{Guess: args[i], Answer: args[i+1]})
	}
	nextGuess, possible, err := wordle.Play(ctx, d, guessAnswers, g.config.WordleGame())
	if err != nil {
		return err
	}
	if len(possible) == 0 {
		return cli.Exit("no word matches those answers", 3)
	}
	fmt.Println(nextGuess + ": " + strings.Join(possible, " "))
	return nil
}

func simulateWordle(ctx context.Context, g GlobalConfiguration, secrets []string, firstWords []string, pad engine.PadPolicy) error {
	d, err := dictionary(g)
	if err != nil {
		return err
	}
	cfg := g.config.WordleGame()
	cfg.FirstGuesses = append(cfg.FirstGuesses, firstWords...)
	if len(secrets) == 0 {
		secrets = cfg.Hypotheses
		if len(secrets) == 0 {
			secrets = d.WordlistStrings(d.WordlistAll())
		}
		if n := g.config.Wordle.Secrets; n > 0 {
			secrets = wordle.Sample(secrets, n, g.config.Seed)
		}
	}

	progress, done := g.progressFunc(len(secrets))
	results, err := wordle.SimulateAll(ctx, d, secrets, cfg, g.config.Workers, progress)
	done()
	if err != nil {
		return err
	}

	traces := make([][]float64, len(results))
	for i, result := range results {
		traces[i] = result.Trace()
		fmt.Print(secrets[i], " ", result.Status, ":")
		for _, turn := range result.Turns {
			fmt.Print(" ", turn.Probe, "/", turn.Feedback.Format(d.WordLength()))
		}
		fmt.Println()
	}
	fmt.Println("---------------------")
	printSummary(engine.Summarize(results))
	printTrace("average entropy of each guess (bits)", engine.AverageTrace(traces, pad))
	return nil
}

func firstWordle(ctx context.Context, g GlobalConfiguration, top int) error {
	d, err := dictionary(g)
	if err != nil {
		return err
	}
	ranked, err := wordle.First(ctx, d, g.config.WordleGame(), top)
	if err != nil {
		return err
	}
	for _, item := range ranked {
		fmt.Printf("%s %.4f\n", item.Probe, item.Score)
	}
	return nil
}

func wordleCommand() *cli.Command {
	return &cli.Command{
		Name:  "wordle",
		Usage: "guess a hidden word from exact/present/absent answers",
		Commands: []*cli.Command{
			{
				Name: "play",
				Usage: `play guess answer [guess answer]...
				Answers are one letter per position: g exact, y present, r absent.
				Prints the next guess and the words that are still possible.`,
				Action: profiled(func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg()%2 != 0 {
						return cli.Exit("must have pairs of guess answer", 1)
					}
					g, err := globalConfiguration(cmd)
					if err != nil {
						return err
					}
					return playWordle(ctx, g, cmd.Args().Slice())
				}),
			},
			{
				Name: "sim",
				Usage: `sim [secret]...
				Simulate one game per secret, all words when no secrets are given.
				Prints every game, the guess count histogram and the average entropy per guess.`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Usage:   "--first first1 --first first2 play these guesses before searching",
						Name:    "first",
						Aliases: []string{"f"},
					},
					padFlag("none"),
				},
				Action: profiled(func(ctx context.Context, cmd *cli.Command) error {
					g, err := globalConfiguration(cmd)
					if err != nil {
						return err
					}
					pad, err := padPolicy(cmd.String("pad"))
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return simulateWordle(ctx, g, cmd.Args().Slice(), cmd.StringSlice("first"), pad)
				}),
			},
			{
				Name:  "first",
				Usage: "rank opening guesses by entropy",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Value:   5,
						Usage:   "how many guesses to list, -1 for all",
					},
				},
				Action: profiled(func(ctx context.Context, cmd *cli.Command) error {
					g, err := globalConfiguration(cmd)
					if err != nil {
						return err
					}
					return firstWordle(ctx, g, cmd.Int("top"))
				}),
			},
		},
	}
}
