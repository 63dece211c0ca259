package sim

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// agentSnapshot captures read-only agent state for the sense/move phase.
type agentSnapshot struct {
	Entity ecs.Entity
	Pos    components.Position
	Mot    components.Motion
	Draw   float64 // uniform draw for this tick's steering decision
}

// intent captures the computed outputs applied after the sense/move phase.
type intent struct {
	Pos     components.Position
	Mot     components.Motion
	Sensors components.Sensors
}

// workChunk is a range of snapshots for one worker.
type workChunk struct {
	start, end int
}

// parallelState holds the snapshot buffers and the persistent worker pool.
type parallelState struct {
	snapshots  []agentSnapshot
	intents    []intent
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		numWorkers: workers,
		snapshots:  make([]agentSnapshot, 0, 512),
		intents:    make([]intent, 0, 512),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(s *Simulation) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *parallelState) worker(s *Simulation) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			s.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// senseAndMove updates every agent against the field as it stood at the end
// of the previous tick. Draws are taken in query order before any agent is
// updated, so sequential and parallel runs produce identical results.
func (s *Simulation) senseAndMove() {
	p := s.parallel

	// Phase A: snapshot (single-threaded, fixes the draw order)
	p.snapshots = p.snapshots[:0]
	query := s.agentFilter.Query()
	for query.Next() {
		pos, mot, _ := query.Get()
		p.snapshots = append(p.snapshots, agentSnapshot{
			Entity: query.Entity(),
			Pos:    *pos,
			Mot:    *mot,
			Draw:   s.rng.Float64(),
		})
	}

	n := len(p.snapshots)
	if cap(p.intents) < n {
		p.intents = make([]intent, n)
	}
	p.intents = p.intents[:n]
	s.lastTurns = TurnCounts{}
	if n == 0 {
		return
	}

	// Phase B: compute against the read-only field
	if n < s.parallelThreshold || p.numWorkers < 2 {
		s.computeChunk(0, n)
	} else {
		s.computeParallel(n)
	}

	// Phase C: apply (single-threaded)
	s.applyIntents()
}

// computeParallel dispatches work to the worker pool and waits for it.
func (s *Simulation) computeParallel(n int) {
	p := s.parallel
	if !p.running {
		p.startWorkers(s)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// computeChunk runs sense, decide and move for a range of snapshots.
// It reads only the field and its own snapshots, and writes only its own intents.
func (s *Simulation) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &s.parallel.snapshots[i]
		out := &s.parallel.intents[i]
		out.Pos, out.Mot, out.Sensors = systems.UpdateAgent(s.field, snap.Pos, snap.Mot, s.params, snap.Draw)
	}
}

// applyIntents writes the computed state back to the components.
func (s *Simulation) applyIntents() {
	for i, snap := range s.parallel.snapshots {
		out := &s.parallel.intents[i]

		pos := s.posMap.Get(snap.Entity)
		mot := s.motMap.Get(snap.Entity)
		sensors := s.sensorMap.Get(snap.Entity)
		if pos == nil || mot == nil || sensors == nil {
			continue
		}
		*pos = out.Pos
		*mot = out.Mot
		*sensors = out.Sensors

		switch out.Sensors.Turn {
		case components.TurnLeft:
			s.lastTurns.Left++
		case components.TurnRight:
			s.lastTurns.Right++
		default:
			s.lastTurns.None++
		}
	}
}
