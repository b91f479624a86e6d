package memory

import (
	"sync"
	"time"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/domains"
)

// Store is the in-memory StateStore. Registry entries and cached metrics
// share one RWMutex so that removing an agent and dropping its cache entry
// are a single atomic step: readers see both present or both absent.
type Store struct {
	mu      sync.RWMutex
	agents  map[string]*domains.Agent
	metrics map[string]*domains.CachedAgentMetrics
	seq     uint64
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		agents:  make(map[string]*domains.Agent),
		metrics: make(map[string]*domains.CachedAgentMetrics),
	}
}

// RegisterAgent inserts a new agent. The existing entry is left unchanged
// and ErrAgentConflict returned if the identity is already present.
func (s *Store) RegisterAgent(agent *domains.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[agent.ID]; exists {
		return clients.ErrAgentConflict
	}

	s.seq++
	agent.Seq = s.seq
	s.agents[agent.ID] = agent
	return nil
}

// RemoveAgent deletes the agent and its cached metrics in one critical
// section. Returns false if the identity was not registered.
func (s *Store) RemoveAgent(agentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[agentID]; !exists {
		return false
	}
	delete(s.agents, agentID)
	delete(s.metrics, agentID)
	return true
}

// TouchAgent updates the agent's last heartbeat time
func (s *Store) TouchAgent(agentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, exists := s.agents[agentID]
	if !exists {
		return false
	}
	updated := *agent
	updated.LastHeartbeat = time.Now()
	s.agents[agentID] = &updated
	return true
}

// GetAgent returns the agent for an identity
func (s *Store) GetAgent(agentID string) (*domains.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agent, ok := s.agents[agentID]
	return agent, ok
}

// ResolveHostname returns the identity of the most recently connected agent
// reporting the given hostname. Hostname collisions are expected in dynamic
// fleets; last connection wins.
func (s *Store) ResolveHostname(hostname string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domains.Agent
	for _, agent := range s.agents {
		if agent.Hostname != hostname {
			continue
		}
		if best == nil || agent.ConnectedAt.After(best.ConnectedAt) ||
			(agent.ConnectedAt.Equal(best.ConnectedAt) && agent.Seq > best.Seq) {
			best = agent
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

// ListAgents returns a point-in-time slice of all registered agents
func (s *Store) ListAgents() []*domains.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]*domains.Agent, 0, len(s.agents))
	for _, agent := range s.agents {
		agents = append(agents, agent)
	}
	return agents
}

// AgentCount returns the number of registered agents
func (s *Store) AgentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// PutMetrics overwrites the cached metrics for an agent. Late snapshots for
// identities no longer registered are dropped so a disconnect cannot be
// resurrected; returns false in that case.
func (s *Store) PutMetrics(agentID string, m *domains.CachedAgentMetrics) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[agentID]; !exists {
		return false
	}
	s.metrics[agentID] = m
	return true
}

// GetMetrics returns the cached metrics for an agent
func (s *Store) GetMetrics(agentID string) (*domains.CachedAgentMetrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.metrics[agentID]
	return m, ok
}

// AllMetrics returns a copy of the cache keyed by identity
func (s *Store) AllMetrics() map[string]*domains.CachedAgentMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*domains.CachedAgentMetrics, len(s.metrics))
	for id, m := range s.metrics {
		result[id] = m
	}
	return result
}
