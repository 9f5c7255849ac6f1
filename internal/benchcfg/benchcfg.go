// Package benchcfg loads benchmark suite descriptions from TOML files.
package benchcfg

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Suite describes one benchmark run: how many times each input is
// minified and which stylesheet files to feed through.
type Suite struct {
	Iterations int      `toml:"iterations"`
	Inputs     []string `toml:"inputs"`
}

const defaultIterations = 100

// Load reads a suite description from path. A missing iterations key
// falls back to the default; missing inputs are an error.
func Load(path string) (*Suite, error) {
	var s Suite
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("inputs") || len(s.Inputs) == 0 {
		return nil, fmt.Errorf("%s: missing inputs", path)
	}
	if s.Iterations <= 0 {
		s.Iterations = defaultIterations
	}
	return &s, nil
}
