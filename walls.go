package gridpath

import (
	"math/rand"
)

// WallConfig shapes the clustered random walls of GenerateWalls.
type WallConfig struct {
	// Clusters is the number of random walks.
	Clusters int
	// Steps is the length of each walk.
	Steps int
	// Density is the probability in [0,1] that a visited cell is blocked.
	Density float64
}

// DefaultWallConfig scales the walk count and length with the grid size.
func DefaultWallConfig(size int) WallConfig {
	clusters := size / 4
	if clusters < 1 {
		clusters = 1
	}
	return WallConfig{
		Clusters: clusters,
		Steps:    size * 2,
		Density:  0.25,
	}
}

// GenerateWalls blocks cells along random walks. Endpoints are never
// blocked. It returns the number of newly blocked cells.
func GenerateWalls(g *Grid, cfg WallConfig, rng *rand.Rand) int {
	size := g.Size()
	dirs := [4]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	blocked := 0
	for c := 0; c < cfg.Clusters; c++ {
		p := Coord{rng.Intn(size), rng.Intn(size)}
		for s := 0; s < cfg.Steps; s++ {
			if rng.Float64() < cfg.Density && g.At(p) == Empty {
				if err := g.SetBlocked(p.X, p.Y); err == nil {
					blocked++
				}
			}
			d := dirs[rng.Intn(len(dirs))]
			np := Coord{p.X + d.X, p.Y + d.Y}
			if g.InBounds(np) {
				p = np
			}
		}
	}
	return blocked
}
