package config

import (
	"errors"
	"fmt"
	"strconv"
)

// Environment variables read by Env. PathVar is only consulted by the
// commands, to pick the tuning file when -config is not given.
const (
	PathVar           = "BLOCKFALL_CONFIG"
	SeedVar           = "BLOCKFALL_SEED"
	LandingVar        = "BLOCKFALL_LANDING"
	WinRowsVar        = "BLOCKFALL_WIN_ROWS"
	SpawnOverwriteVar = "BLOCKFALL_SPAWN_OVERWRITE"
)

// Env returns c with overrides taken from lookup (usually os.LookupEnv),
// validated like a loaded file.
func (c Config) Env(lookup func(string) (string, bool)) (Config, error) {
	var errs []error
	if v, ok := lookup(SeedVar); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", SeedVar, err))
		}
		c.Seed = seed
	}
	if v, ok := lookup(LandingVar); ok {
		c.Landing = v
	}
	if v, ok := lookup(WinRowsVar); ok {
		rows, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", WinRowsVar, err))
		}
		c.WinRows = rows
	}
	if v, ok := lookup(SpawnOverwriteVar); ok {
		overwrite, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", SpawnOverwriteVar, err))
		}
		c.SpawnOverwrite = overwrite
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
