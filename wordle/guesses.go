package wordle

import (
	"context"
	"fmt"
	"math"

	"github.com/powellquiring/infoguess/engine"
	"github.com/powellquiring/infoguess/entropy"
)

// Config describes one family of games over a dictionary
type Config struct {
	// Hypotheses are the possible secrets, all dictionary words when empty
	Hypotheses []string
	// Probes are the allowed guesses in tie-break order, Hypotheses when empty
	Probes []string
	// FirstGuesses are played before entropy guessing takes over
	FirstGuesses []string
	MaxTurns     int
	// Workers bounds concurrent probe scoring, 0 is unbounded
	Workers int
}

// Game is one game against a hidden secret. It implements engine.Game.
type Game struct {
	dictionary   *Dictionary
	probes       []Word
	firstGuesses []Word
	candidates   *WordList
	secret       Word
	workers      int
	played       int
	solved       bool
}

func (d *Dictionary) universe(cfg Config) (candidates *WordList, probes []Word, err error) {
	if len(cfg.Hypotheses) == 0 {
		candidates = d.WordlistAll()
	} else if candidates, err = d.WordlistFromStrings(cfg.Hypotheses); err != nil {
		return nil, nil, fmt.Errorf("hypotheses: %w", err)
	}
	switch {
	case len(cfg.Probes) > 0:
		probes, err = d.Lookup(cfg.Probes)
	case len(cfg.Hypotheses) > 0:
		probes, err = d.Lookup(cfg.Hypotheses)
	default:
		probes = candidates.Words()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("probes: %w", err)
	}
	return candidates, probes, nil
}

func NewGame(d *Dictionary, secret string, cfg Config) (*Game, error) {
	candidates, probes, err := d.universe(cfg)
	if err != nil {
		return nil, err
	}
	secretWord, ok := d.Word(secret)
	if !ok {
		if n := len([]rune(secret)); n != d.WordLength() {
			return nil, &MalformedError{Probe: d.String(0), Hypothesis: secret, Reason: "length mismatch"}
		}
		return nil, fmt.Errorf("secret: %w: %q", ErrUnknownWord, secret)
	}
	if !candidates.Contains(secretWord) {
		return nil, fmt.Errorf("secret %q is not one of the hypotheses", secret)
	}
	firstGuesses, err := d.Lookup(cfg.FirstGuesses)
	if err != nil {
		return nil, fmt.Errorf("first guesses: %w", err)
	}
	return &Game{
		dictionary:   d,
		probes:       probes,
		firstGuesses: firstGuesses,
		candidates:   candidates,
		secret:       secretWord,
		workers:      cfg.Workers,
	}, nil
}

// Candidates returns the secrets still consistent with every answer so far
func (g *Game) Candidates() []string {
	return g.dictionary.WordlistStrings(g.candidates)
}

func (g *Game) Select(ctx context.Context) (string, float64, error) {
	d := g.dictionary
	if g.played < len(g.firstGuesses) {
		guess := g.firstGuesses[g.played]
		return d.String(guess), d.Entropy(guess, g.candidates), nil
	}
	guess, score, err := d.NextGuess(ctx, g.candidates, g.probes, g.workers)
	if err != nil {
		return "", 0, err
	}
	return d.String(guess), score, nil
}

func (g *Game) Feedback(probe string) (Answer, error) {
	d := g.dictionary
	word, ok := d.Word(probe)
	if !ok {
		return Score(probe, d.String(g.secret))
	}
	return d.Answer(word, g.secret), nil
}

func (g *Game) Observe(ctx context.Context, probe string, answer Answer) (int, float64, error) {
	word, ok := g.dictionary.Word(probe)
	if !ok {
		return 0, 0, fmt.Errorf("probe: %w: %q", ErrUnknownWord, probe)
	}
	g.played++
	g.candidates = g.dictionary.Filter(g.candidates, word, answer)
	g.solved = answer == AllExact(g.dictionary.WordLength())
	remaining := g.candidates.Len()
	uncertainty := 0.0
	if remaining > 1 {
		uncertainty = math.Log2(float64(remaining))
	}
	return remaining, uncertainty, nil
}

func (g *Game) Solved() bool {
	return g.solved
}

// NextGuess picks the probe with the highest entropy against the candidates.
// A single remaining candidate is guessed directly.
func (d *Dictionary) NextGuess(ctx context.Context, candidates *WordList, probes []Word, workers int) (Word, float64, error) {
	if candidates.Len() == 1 {
		word, _ := candidates.FirstWord()
		return word, 0, nil
	}
	solutions := candidates.Words()
	best, err := entropy.Select(ctx, probes, workers, func(probe Word) (float64, error) {
		return entropy.Score(probe, solutions, d.oracle)
	})
	if err != nil {
		return 0, 0, err
	}
	return best.Probe, best.Score, nil
}

// Simulate plays one game against secret and returns its turn history
func Simulate(ctx context.Context, d *Dictionary, secret string, cfg Config) (engine.Result[string, Answer], error) {
	g, err := NewGame(d, secret, cfg)
	if err != nil {
		return engine.Result[string, Answer]{}, err
	}
	return engine.Run[string, Answer](ctx, g, cfg.MaxTurns)
}

// SimulateAll plays one independent game per secret, in parallel
func SimulateAll(ctx context.Context, d *Dictionary, secrets []string, cfg Config, workers int, progress func()) ([]engine.Result[string, Answer], error) {
	return engine.Batch(ctx, secrets, workers, func(ctx context.Context, secret string) (engine.Result[string, Answer], error) {
		// games run side by side, so each scores its probes on one goroutine
		gameCfg := cfg
		gameCfg.Workers = 1
		return Simulate(ctx, d, secret, gameCfg)
	}, progress)
}

// First ranks the opening guesses and returns the best n
func First(ctx context.Context, d *Dictionary, cfg Config, n int) ([]entropy.ProbeScore[string], error) {
	candidates, probes, err := d.universe(cfg)
	if err != nil {
		return nil, err
	}
	scores, err := d.Scores(ctx, probes, candidates, cfg.Workers)
	if err != nil {
		return nil, err
	}
	return entropy.Top(d.Strings(probes), scores, n), nil
}

type GuessAnswer struct {
	Guess  string
	Answer string
}

// Play replays guess/answer pairs from a real game and returns the next
// best guess and the words that are still possible
func Play(ctx context.Context, d *Dictionary, guessAnswers []GuessAnswer, cfg Config) (string, []string, error) {
	candidates, probes, err := d.universe(cfg)
	if err != nil {
		return "", nil, err
	}
	for _, guessAnswer := range guessAnswers {
		guess, ok := d.Word(guessAnswer.Guess)
		if !ok {
			return "", nil, fmt.Errorf("guess: %w: %q", ErrUnknownWord, guessAnswer.Guess)
		}
		answer, ok := StringToAnswer(guessAnswer.Answer)
		if !ok || len(guessAnswer.Answer) != d.WordLength() {
			return "", nil, fmt.Errorf("answer %q must be %d of r, y, g", guessAnswer.Answer, d.WordLength())
		}
		candidates = d.Filter(candidates, guess, answer)
	}
	possible := d.WordlistStrings(candidates)
	if len(possible) == 0 {
		return "", nil, nil
	}
	next, _, err := d.NextGuess(ctx, candidates, probes, cfg.Workers)
	if err != nil {
		return "", nil, err
	}
	return d.String(next), possible, nil
}
