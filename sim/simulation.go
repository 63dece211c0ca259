// Package sim runs the slime-mold model: a population of agents that sense,
// steer and move over a toroidal trail field, deposit into it, and let it
// diffuse and decay once per tick.
package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
	"github.com/pthm-cable/slime/telemetry"
)

// RandomSource supplies uniform draws in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// AgentState is the initial state of one agent.
type AgentState struct {
	Position components.Position
	Motion   components.Motion
}

// TurnCounts tallies the steering decisions of one tick.
type TurnCounts struct {
	Left  int
	None  int
	Right int
}

// Simulation owns the field, the diffuser and the agent population.
// It is not safe for concurrent use; Step must not overlap any reader.
type Simulation struct {
	world *ecs.World

	agentMapper *ecs.Map3[components.Position, components.Motion, components.Sensors]
	agentFilter *ecs.Filter3[components.Position, components.Motion, components.Sensors]
	posMap      *ecs.Map[components.Position]
	motMap      *ecs.Map[components.Motion]
	sensorMap   *ecs.Map[components.Sensors]

	field    *systems.TrailField
	diffuser systems.TrailDiffuser
	params   systems.SteeringParams
	deposit  uint8
	rng      RandomSource

	parallel          *parallelState
	parallelThreshold int

	perf *telemetry.PerfCollector

	tick       int32
	agentCount int
	lastTurns  TurnCounts
}

// New creates a simulation with agents placed by cfg.Agents.Spawn.
func New(cfg *config.Config, rng RandomSource) (*Simulation, error) {
	s, err := newEmpty(cfg, rng)
	if err != nil {
		return nil, err
	}
	agents, err := spawnAgents(cfg, rng)
	if err != nil {
		return nil, err
	}
	s.addAgents(agents)
	return s, nil
}

// NewWithAgents creates a simulation with an explicit initial population.
// Positions are wrapped onto the field.
func NewWithAgents(cfg *config.Config, rng RandomSource, agents []AgentState) (*Simulation, error) {
	s, err := newEmpty(cfg, rng)
	if err != nil {
		return nil, err
	}
	for i, a := range agents {
		if !finite(a.Position.X) || !finite(a.Position.Y) || !finite(a.Motion.Heading) || !finite(a.Motion.Velocity) {
			return nil, fmt.Errorf("agent %d: non-finite state %+v", i, a)
		}
	}
	s.addAgents(agents)
	return s, nil
}

func newEmpty(cfg *config.Config, rng RandomSource) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	world := ecs.NewWorld()
	field := systems.NewTrailField(cfg.Field.Width, cfg.Field.Height)

	var diffuser systems.TrailDiffuser
	switch cfg.Trail.Mode {
	case config.TrailDense:
		diffuser = systems.NewDenseDiffuser(field, cfg.Trail.DiffuseRadius, cfg.Trail.DecayFactor)
	default:
		diffuser = systems.NewSparseDiffuser(field, cfg.Trail.DiffuseRadius, cfg.Trail.DecayFactor)
	}

	return &Simulation{
		world:             world,
		agentMapper:       ecs.NewMap3[components.Position, components.Motion, components.Sensors](world),
		agentFilter:       ecs.NewFilter3[components.Position, components.Motion, components.Sensors](world),
		posMap:            ecs.NewMap[components.Position](world),
		motMap:            ecs.NewMap[components.Motion](world),
		sensorMap:         ecs.NewMap[components.Sensors](world),
		field:             field,
		diffuser:          diffuser,
		params:            systems.SteeringParamsFromConfig(cfg),
		deposit:           uint8(cfg.Trail.DepositAmount),
		rng:               rng,
		parallel:          newParallelState(cfg.Parallel.Workers),
		parallelThreshold: cfg.Parallel.Threshold,
	}, nil
}

// addAgents creates one entity per agent and registers its starting cell.
// No trail is laid at construction.
func (s *Simulation) addAgents(agents []AgentState) {
	w, h := float64(s.field.Width()), float64(s.field.Height())
	for _, a := range agents {
		pos := components.Position{X: wrap(a.Position.X, w), Y: wrap(a.Position.Y, h)}
		mot := a.Motion
		sensors := components.Sensors{}
		s.agentMapper.NewEntity(&pos, &mot, &sensors)

		s.diffuser.Register(systems.DepositCell(pos))
		s.agentCount++
	}
}

// SetPerfCollector enables per-phase timing of Step. Pass nil to disable.
func (s *Simulation) SetPerfCollector(p *telemetry.PerfCollector) {
	s.perf = p
}

// Step advances the model by one tick: sense and move every agent against
// the field as the previous tick left it, deposit, diffuse, then decay.
func (s *Simulation) Step() {
	if s.perf != nil {
		s.perf.StartTick()
		s.perf.StartPhase(telemetry.PhaseSenseMove)
	}
	s.senseAndMove()

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseDeposit)
	}
	s.depositTrails()

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseDiffuse)
	}
	s.diffuser.Diffuse()

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseDecay)
	}
	s.diffuser.Decay()

	if s.perf != nil {
		s.perf.EndTick()
	}
	s.tick++
}

// depositTrails lays trail under every agent. Saturating adds commute, so the
// order only matters for the order cells are registered.
func (s *Simulation) depositTrails() {
	if s.deposit == 0 {
		return
	}
	for i := range s.parallel.snapshots {
		c := systems.DepositCell(s.parallel.intents[i].Pos)
		s.diffuser.Register(s.field.DepositSaturating(c.Y, c.X, s.deposit))
	}
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// Field returns a read-only view of the trail field.
func (s *Simulation) Field() systems.FieldReader {
	return s.field
}

// TrailField returns the field itself for bulk readers such as the renderer.
// Callers must not write to it.
func (s *Simulation) TrailField() *systems.TrailField {
	return s.field
}

// ActiveCount returns the number of cells the next diffusion pass will start from.
func (s *Simulation) ActiveCount() int {
	return s.diffuser.ActiveCount()
}

// AgentCount returns the population size.
func (s *Simulation) AgentCount() int {
	return s.agentCount
}

// LastTurns returns the steering decisions made during the most recent step.
func (s *Simulation) LastTurns() TurnCounts {
	return s.lastTurns
}

// Params returns the steering parameters in use.
func (s *Simulation) Params() systems.SteeringParams {
	return s.params
}

// Close stops the worker pool. The simulation must not be stepped afterwards.
func (s *Simulation) Close() {
	if s.parallel != nil {
		s.parallel.stopWorkers()
	}
}
