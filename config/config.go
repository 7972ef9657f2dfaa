// Package config loads the tuning file that sizes the board and paces a session.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/piece"
)

// Config is the tuning of one session.
type Config struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	PlayableRows int `yaml:"playable_rows"`

	Tick   Tick   `yaml:"tick"`
	Repeat Repeat `yaml:"repeat"`

	// Landing is "per-unit" or "rigid".
	Landing        string `yaml:"landing"`
	SpawnOverwrite bool   `yaml:"spawn_overwrite"`

	ScorePerRow int `yaml:"score_per_row"`
	// WinRows ends the session as a win once this many rows were cleared. Zero disables it.
	WinRows int `yaml:"win_rows"`

	// Seed fixes the piece order. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// Tick holds the phase-dependent tick intervals.
type Tick struct {
	Base     time.Duration `yaml:"base"`
	Cascade  time.Duration `yaml:"cascade"`
	SoftDrop time.Duration `yaml:"soft_drop"`
}

// Repeat holds the held-key auto-repeat delays for horizontal moves.
type Repeat struct {
	Initial time.Duration `yaml:"initial"`
	Rate    time.Duration `yaml:"rate"`
}

// Default returns the standard tuning.
func Default() Config {
	return Config{
		Width:        board.Width,
		Height:       board.Height,
		PlayableRows: board.PlayableRows,
		Tick: Tick{
			Base:     500 * time.Millisecond,
			Cascade:  100 * time.Millisecond,
			SoftDrop: 50 * time.Millisecond,
		},
		Repeat: Repeat{
			Initial: 200 * time.Millisecond,
			Rate:    50 * time.Millisecond,
		},
		Landing:     board.PerUnit.String(),
		ScorePerRow: 100,
	}
}

// Load reads a YAML tuning file on top of Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(raw []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LandingPolicy returns the parsed landing policy.
func (c Config) LandingPolicy() board.LandingPolicy {
	p, _ := board.ParseLandingPolicy(c.Landing)
	return p
}

const (
	minWidth  = 7
	minHeight = piece.SpawnRow + 2
)

// Validate reports every inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.Width < minWidth {
		errs = append(errs, fmt.Errorf("width %d: spawn templates need %d columns", c.Width, minWidth))
	}
	if c.Height < minHeight {
		errs = append(errs, fmt.Errorf("height %d: spawn templates need %d rows", c.Height, minHeight))
	}
	if c.PlayableRows <= 0 || c.PlayableRows > piece.SpawnRow {
		errs = append(errs, fmt.Errorf("playable_rows %d outside (0, %d]", c.PlayableRows, piece.SpawnRow))
	}
	if c.Tick.Base <= 0 || c.Tick.Cascade <= 0 || c.Tick.SoftDrop <= 0 {
		errs = append(errs, errors.New("tick intervals must be positive"))
	}
	if c.Repeat.Initial <= 0 || c.Repeat.Rate <= 0 {
		errs = append(errs, errors.New("repeat delays must be positive"))
	}
	if _, err := board.ParseLandingPolicy(c.Landing); err != nil {
		errs = append(errs, err)
	}
	if c.ScorePerRow < 0 || c.WinRows < 0 {
		errs = append(errs, errors.New("score_per_row and win_rows cannot be negative"))
	}
	return errors.Join(errs...)
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
