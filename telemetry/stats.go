package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// State at window end
	Agents       int     `csv:"agents"`
	ActiveCells  int     `csv:"active_cells"`
	NonZeroCells int     `csv:"nonzero_cells"`
	Coverage     float64 `csv:"coverage"` // nonzero cells / all cells

	// Trail intensity over nonzero cells at window end
	TotalIntensity float64 `csv:"total_intensity"`
	IntensityMean  float64 `csv:"intensity_mean"`
	IntensityStd   float64 `csv:"intensity_std"`
	IntensityP50   float64 `csv:"intensity_p50"`
	IntensityP90   float64 `csv:"intensity_p90"`
	IntensityMax   float64 `csv:"intensity_max"`

	// Steering decisions during window
	TurnsLeft  int     `csv:"turns_left"`
	TurnsNone  int     `csv:"turns_none"`
	TurnsRight int     `csv:"turns_right"`
	TurnRate   float64 `csv:"turn_rate"` // fraction of decisions that turned

	// Sensor readings at window end
	SensorCenterMean float64 `csv:"sensor_center_mean"`
	SensorSideMean   float64 `csv:"sensor_side_mean"`
}

// Distribution summarizes a set of values.
type Distribution struct {
	Mean, Std, P50, P90, Max, Total float64
}

// ComputeDistribution calculates mean, standard deviation, percentiles, max
// and total. Returns zeros for an empty slice. values is not modified.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	d.Mean, d.Std = stat.PopMeanStdDev(sorted, nil)
	d.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	d.Max = sorted[n-1]
	d.Total = floats.Sum(sorted)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("agents", s.Agents),
		slog.Int("active_cells", s.ActiveCells),
		slog.Int("nonzero_cells", s.NonZeroCells),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("total_intensity", s.TotalIntensity),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_std", s.IntensityStd),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Float64("intensity_max", s.IntensityMax),
		slog.Int("turns_left", s.TurnsLeft),
		slog.Int("turns_none", s.TurnsNone),
		slog.Int("turns_right", s.TurnsRight),
		slog.Float64("turn_rate", s.TurnRate),
		slog.Float64("sensor_center_mean", s.SensorCenterMean),
		slog.Float64("sensor_side_mean", s.SensorSideMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"agents", s.Agents,
		"active_cells", s.ActiveCells,
		"nonzero_cells", s.NonZeroCells,
		"coverage", s.Coverage,
		"total_intensity", s.TotalIntensity,
		"intensity_mean", s.IntensityMean,
		"intensity_p50", s.IntensityP50,
		"intensity_p90", s.IntensityP90,
		"intensity_max", s.IntensityMax,
		"turns_left", s.TurnsLeft,
		"turns_none", s.TurnsNone,
		"turns_right", s.TurnsRight,
		"turn_rate", s.TurnRate,
		"sensor_center_mean", s.SensorCenterMean,
		"sensor_side_mean", s.SensorSideMean,
	)
}
