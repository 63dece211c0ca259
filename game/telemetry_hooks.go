package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/slime/telemetry"
)

// flushTelemetry closes the stats window when it is due, then logs and writes it.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	start := time.Now()
	stats := g.collector.Flush(tick, g.sampleState())
	g.perfCollector.AddPhase(telemetry.PhaseTelemetry, time.Since(start))
	perfStats := g.perfCollector.Stats()

	g.lastStats = stats
	g.haveStats = true

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleState gathers the end-of-window field and sensor values.
func (g *Game) sampleState() telemetry.Sample {
	n := g.sim.TrailField().CopyTo(g.fieldBuf)

	g.intensities = g.intensities[:0]
	for _, v := range g.fieldBuf[:n] {
		if v != 0 {
			g.intensities = append(g.intensities, float64(v))
		}
	}

	g.agentViews = g.sim.AppendAgents(g.agentViews[:0])
	g.sensorCenter = g.sensorCenter[:0]
	g.sensorSides = g.sensorSides[:0]
	for i := range g.agentViews {
		s := &g.agentViews[i].Sensors
		g.sensorCenter = append(g.sensorCenter, float64(s.Center))
		g.sensorSides = append(g.sensorSides, float64(s.Left), float64(s.Right))
	}

	return telemetry.Sample{
		Agents:       g.sim.AgentCount(),
		ActiveCells:  g.sim.ActiveCount(),
		CellCount:    n,
		Intensities:  g.intensities,
		SensorCenter: g.sensorCenter,
		SensorSides:  g.sensorSides,
	}
}

// agentRecords snapshots every agent for agents.csv.
func (g *Game) agentRecords() []telemetry.AgentRecord {
	tick := g.sim.Tick()
	g.agentViews = g.sim.AppendAgents(g.agentViews[:0])
	records := make([]telemetry.AgentRecord, len(g.agentViews))
	for i, a := range g.agentViews {
		records[i] = telemetry.AgentRecord{
			Tick:    tick,
			X:       a.Position.X,
			Y:       a.Position.Y,
			Heading: a.Motion.Heading,
			Left:    a.Sensors.Left,
			Center:  a.Sensors.Center,
			Right:   a.Sensors.Right,
			Turn:    a.Sensors.Turn,
		}
	}
	return records
}
