package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
)

// spawnAgents builds the initial population for cfg.Agents.Spawn.
func spawnAgents(cfg *config.Config, rng RandomSource) ([]AgentState, error) {
	switch cfg.Agents.Spawn {
	case config.SpawnRing:
		return spawnRing(cfg, rng), nil
	case config.SpawnNormal:
		return spawnNormal(cfg, rng), nil
	default:
		return nil, fmt.Errorf("%w: unknown agents.spawn %q", config.ErrInvalidConfig, cfg.Agents.Spawn)
	}
}

// spawnRing places agents on a circle centered on the quarter point of the
// field, each heading tangent to the circle (counter-clockwise in screen space).
func spawnRing(cfg *config.Config, rng RandomSource) []AgentState {
	w := float64(cfg.Field.Width)
	h := float64(cfg.Field.Height)
	radius := cfg.Agents.RingFraction * math.Min(w, h)
	cx, cy := w/4, h/4

	agents := make([]AgentState, cfg.Agents.Count)
	for i := range agents {
		hd := rng.Float64() * 2 * math.Pi
		agents[i] = AgentState{
			Position: components.Position{
				X: wrap(cx+radius*math.Cos(hd), w),
				Y: wrap(cy+radius*math.Sin(hd), h),
			},
			Motion: components.Motion{
				Velocity: cfg.Agents.Velocity,
				Heading:  wrap(hd+math.Pi/2, 2*math.Pi),
			},
		}
	}
	return agents
}

// spawnNormal scatters agents around the quarter point with a normal
// distribution per axis and uniform headings. Draws come from rng so runs
// stay reproducible.
func spawnNormal(cfg *config.Config, rng RandomSource) []AgentState {
	w := float64(cfg.Field.Width)
	h := float64(cfg.Field.Height)
	distX := distuv.Normal{Mu: w / 4, Sigma: cfg.Agents.SpawnSigmaFraction * w}
	distY := distuv.Normal{Mu: h / 4, Sigma: cfg.Agents.SpawnSigmaFraction * h}

	agents := make([]AgentState, cfg.Agents.Count)
	for i := range agents {
		x := sampleNormal(distX, rng)
		y := sampleNormal(distY, rng)
		agents[i] = AgentState{
			Position: components.Position{X: wrap(x, w), Y: wrap(y, h)},
			Motion: components.Motion{
				Velocity: cfg.Agents.Velocity,
				Heading:  rng.Float64() * 2 * math.Pi,
			},
		}
	}
	return agents
}

// sampleNormal inverts the CDF at a uniform draw. Zero is redrawn since the
// quantile there is -Inf.
func sampleNormal(d distuv.Normal, rng RandomSource) float64 {
	if d.Sigma == 0 {
		return d.Mu
	}
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return d.Quantile(u)
}

// wrap returns v mod m in [0, m).
func wrap(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
