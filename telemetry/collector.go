package telemetry

// Sample is the end-of-window state the caller hands to Flush.
type Sample struct {
	Agents      int
	ActiveCells int
	CellCount   int       // total cells in the field
	Intensities []float64 // values of the nonzero cells

	// Last readings of each agent's center sensor, and of both side sensors.
	SensorCenter []float64
	SensorSides  []float64
}

// Collector accumulates steering events within windows of ticks and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	turnsLeft  int
	turnsNone  int
	turnsRight int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
	}
}

// RecordTurns adds one tick's steering decisions.
func (c *Collector) RecordTurns(left, none, right int) {
	c.turnsLeft += left
	c.turnsNone += none
	c.turnsRight += right
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	intensity := ComputeDistribution(sample.Intensities)
	center := ComputeDistribution(sample.SensorCenter)
	sides := ComputeDistribution(sample.SensorSides)

	var coverage float64
	if sample.CellCount > 0 {
		coverage = float64(len(sample.Intensities)) / float64(sample.CellCount)
	}

	var turnRate float64
	if decisions := c.turnsLeft + c.turnsNone + c.turnsRight; decisions > 0 {
		turnRate = float64(c.turnsLeft+c.turnsRight) / float64(decisions)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Agents:       sample.Agents,
		ActiveCells:  sample.ActiveCells,
		NonZeroCells: len(sample.Intensities),
		Coverage:     coverage,

		TotalIntensity: intensity.Total,
		IntensityMean:  intensity.Mean,
		IntensityStd:   intensity.Std,
		IntensityP50:   intensity.P50,
		IntensityP90:   intensity.P90,
		IntensityMax:   intensity.Max,

		TurnsLeft:  c.turnsLeft,
		TurnsNone:  c.turnsNone,
		TurnsRight: c.turnsRight,
		TurnRate:   turnRate,

		SensorCenterMean: center.Mean,
		SensorSideMean:   sides.Mean,
	}

	c.windowStartTick = currentTick
	c.turnsLeft = 0
	c.turnsNone = 0
	c.turnsRight = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
