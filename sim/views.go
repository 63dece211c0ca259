package sim

import "github.com/pthm-cable/slime/components"

// AgentView is a read-only copy of one agent for rendering and telemetry.
type AgentView struct {
	Position components.Position
	Motion   components.Motion
	Sensors  components.Sensors
}

// Agents returns a copy of every agent's state.
func (s *Simulation) Agents() []AgentView {
	return s.AppendAgents(make([]AgentView, 0, s.agentCount))
}

// AppendAgents appends every agent's state to dst, reusing its storage.
func (s *Simulation) AppendAgents(dst []AgentView) []AgentView {
	query := s.agentFilter.Query()
	for query.Next() {
		pos, mot, sensors := query.Get()
		dst = append(dst, AgentView{Position: *pos, Motion: *mot, Sensors: *sensors})
	}
	return dst
}
