package clients

import (
	"telemetry-hub/app/domains"
)

// StateStore defines the interface for registry and metrics-cache state.
// Implementations must guarantee that removing an agent also removes its
// cached metrics atomically with respect to concurrent readers, and that a
// metrics write for an unregistered agent is a no-op.
type StateStore interface {
	RegisterAgent(agent *domains.Agent) error
	RemoveAgent(agentID string) bool
	TouchAgent(agentID string) bool
	GetAgent(agentID string) (*domains.Agent, bool)
	ResolveHostname(hostname string) (string, bool)
	ListAgents() []*domains.Agent
	AgentCount() int
	PutMetrics(agentID string, m *domains.CachedAgentMetrics) bool
	GetMetrics(agentID string) (*domains.CachedAgentMetrics, bool)
	AllMetrics() map[string]*domains.CachedAgentMetrics
}
