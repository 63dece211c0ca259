package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/game"
	"github.com/pthm-cable/slime/telemetry"
)

// Score component weights.
const (
	scoreWeightCoverage  = 0.35
	scoreWeightContrast  = 0.40
	scoreWeightStability = 0.25

	scoreWarmupWindows = 2    // skip first N windows while the network forms
	targetCoverage     = 0.15 // fraction of cells a thin network occupies
	coverageTolerance  = 0.10
)

// FitnessEvaluator runs headless simulations and scores the trail network they form.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	bestFitness float64
	lastScore   float64 // mean score from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	window := int(maxTicks) / 10
	if window < 1 {
		window = 1
	}
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: window,
		bestFitness: math.Inf(1),
	}
}

// LastScore returns the network score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean network score across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	scores := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			scores[idx] = NetworkScore(fe.runSimulation(x, s))
		}(i, seed)
	}
	wg.Wait()

	mean := stat.Mean(scores, nil)
	fitness := -mean

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.lastScore = mean
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run and returns its window stats.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.StatsWindow = fe.statsWindow

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Config:         cfg,
		Headless:       true,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// copyConfig creates an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// NetworkScore rates window stats in [0, 1]. High scores mean the trail
// settled into thin, bright strands: moderate coverage, strong contrast
// between typical and bright cells, and coverage that stopped drifting.
func NetworkScore(windows []telemetry.WindowStats) float64 {
	if len(windows) <= scoreWarmupWindows {
		return 0
	}
	valid := windows[scoreWarmupWindows:]

	coverage := make([]float64, 0, len(valid))
	var coverageSum, contrastSum float64
	for _, w := range valid {
		coverage = append(coverage, w.Coverage)

		d := (w.Coverage - targetCoverage) / coverageTolerance
		coverageSum += math.Exp(-d * d)

		if w.IntensityP90 > 0 {
			contrastSum += clamp01((w.IntensityP90 - w.IntensityP50) / w.IntensityP90)
		}
	}
	n := float64(len(valid))

	stabilityScore := 0.0
	if mean := stat.Mean(coverage, nil); mean > 0 {
		if len(coverage) < 2 {
			stabilityScore = 1
		} else {
			cv := stat.StdDev(coverage, nil) / mean
			stabilityScore = math.Exp(-cv * cv)
		}
	}

	score := scoreWeightCoverage*coverageSum/n +
		scoreWeightContrast*contrastSum/n +
		scoreWeightStability*stabilityScore
	return clamp01(score)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
