// Package config holds the settings of a simulation run. Values come from
// the defaults, then an optional YAML file, then IGS_* environment
// variables, and are validated before use.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/powellquiring/infoguess/battleship"
	"github.com/powellquiring/infoguess/wordle"
)

type Config struct {
	MaxTurns int `yaml:"max_turns" validate:"gt=0"`
	// Workers bounds concurrent games and probe scoring, 0 is unbounded
	Workers  int    `yaml:"workers" validate:"gte=0"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	// Seed drives random boards, random shots and sampled secrets
	Seed       uint64           `yaml:"seed"`
	Wordle     WordleConfig     `yaml:"wordle"`
	Battleship BattleshipConfig `yaml:"battleship"`
}

type WordleConfig struct {
	WordLength int `yaml:"word_length" validate:"gte=1,lte=16"`
	// WordFile replaces the embedded three letter list
	WordFile     string   `yaml:"word_file"`
	Hypotheses   []string `yaml:"hypotheses" validate:"dive,required"`
	Probes       []string `yaml:"probes" validate:"dive,required"`
	FirstGuesses []string `yaml:"first_guesses" validate:"dive,required"`
	// Secrets limits simulation to this many sampled secrets, 0 is all
	Secrets int `yaml:"secrets" validate:"gte=0"`
}

// BattleshipConfig grids are at most 10x10, placement enumeration is brute force
type BattleshipConfig struct {
	Rows     int    `yaml:"rows" validate:"gte=1,lte=10"`
	Cols     int    `yaml:"cols" validate:"gte=1,lte=10"`
	Ships    []int  `yaml:"ships" validate:"min=1,dive,gte=1,lte=10"`
	Strategy string `yaml:"strategy" validate:"oneof=outcome gain random"`
	Games    int    `yaml:"games" validate:"gte=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(fleetFits, BattleshipConfig{})
}

// fleetFits rejects fleets that cannot be placed on the grid at all
func fleetFits(sl validator.StructLevel) {
	c := sl.Current().Interface().(BattleshipConfig)
	cells := 0
	for _, length := range c.Ships {
		cells += length
		if length > max(c.Rows, c.Cols) {
			sl.ReportError(c.Ships, "Ships", "ships", "fitgrid", strconv.Itoa(length))
			return
		}
	}
	if cells > c.Rows*c.Cols {
		sl.ReportError(c.Ships, "Ships", "ships", "fitgrid", strconv.Itoa(cells))
	}
}

// Default is a 3 letter word game and a 6x6 grid with ships of 3 and 2
func Default() Config {
	return Config{
		MaxTurns: 50,
		LogLevel: "info",
		Seed:     1,
		Wordle: WordleConfig{
			WordLength: 3,
		},
		Battleship: BattleshipConfig{
			Rows:     6,
			Cols:     6,
			Ships:    []int{3, 2},
			Strategy: battleship.StrategyOutcome.String(),
			Games:    100,
		},
	}
}

// Load reads path over the defaults. A missing file leaves the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}
	loadConfigFromEnv(&config)
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadConfigFromEnv(config *Config) {
	if v := os.Getenv("IGS_MAX_TURNS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.MaxTurns = i
		}
	}
	if v := os.Getenv("IGS_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Workers = i
		}
	}
	if v := os.Getenv("IGS_WORD_FILE"); v != "" {
		config.Wordle.WordFile = v
	}
	if v := os.Getenv("IGS_STRATEGY"); v != "" {
		config.Battleship.Strategy = v
	}
	if v := os.Getenv("IGS_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Seed = seed
		}
	}
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// Words is the word file when one is set, else the embedded list
func (c Config) Words() ([]string, error) {
	if c.Wordle.WordFile != "" {
		return wordle.ReadWordFile(c.Wordle.WordFile, c.Wordle.WordLength)
	}
	if c.Wordle.WordLength != 3 {
		return nil, fmt.Errorf("config: no embedded list of %d letter words, set word_file", c.Wordle.WordLength)
	}
	return wordle.DefaultWords(), nil
}

func (c Config) WordleGame() wordle.Config {
	return wordle.Config{
		Hypotheses:   c.Wordle.Hypotheses,
		Probes:       c.Wordle.Probes,
		FirstGuesses: c.Wordle.FirstGuesses,
		MaxTurns:     c.MaxTurns,
		Workers:      c.Workers,
	}
}

func (c Config) Grid() (battleship.Grid, error) {
	return battleship.NewGrid(c.Battleship.Rows, c.Battleship.Cols)
}

func (c Config) BattleshipGame() (battleship.Config, error) {
	strategy, err := battleship.ParseStrategy(c.Battleship.Strategy)
	if err != nil {
		return battleship.Config{}, err
	}
	return battleship.Config{
		Strategy: strategy,
		MaxTurns: c.MaxTurns,
		Workers:  c.Workers,
		Seed:     c.Seed,
	}, nil
}
