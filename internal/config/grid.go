package config

import (
	"math/rand"
	"time"

	"github.com/pdrpinto/gridpath"
)

// Walls turns the wall settings into a generator config, keeping the
// size-based defaults for unset counts.
func (c GridConfig) Walls() gridpath.WallConfig {
	walls := gridpath.DefaultWallConfig(c.Size)
	if c.WallClusters > 0 {
		walls.Clusters = c.WallClusters
	}
	if c.WallSteps > 0 {
		walls.Steps = c.WallSteps
	}
	walls.Density = c.WallDensity
	return walls
}

// Rand returns the random source for the session and the seed it used.
func (c GridConfig) Rand() (*rand.Rand, int64) {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// NewGrid creates the startup grid: random distinct endpoints plus
// generated walls.
func (c GridConfig) NewGrid(rng *rand.Rand) (*gridpath.Grid, int, error) {
	grid, err := gridpath.NewRandomGrid(c.Size, rng)
	if err != nil {
		return nil, 0, err
	}
	n := gridpath.GenerateWalls(grid, c.Walls(), rng)
	return grid, n, nil
}
