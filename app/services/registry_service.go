package services

import (
	"log/slog"
	"time"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/domains"
	"telemetry-hub/app/utils"
)

// RegistryService handles agent registry operations
type RegistryService struct {
	store  clients.StateStore
	logger *slog.Logger
}

// NewRegistryService creates a new registry service
func NewRegistryService(store clients.StateStore, logger *slog.Logger) *RegistryService {
	return &RegistryService{
		store:  store,
		logger: logger,
	}
}

// Register inserts a new agent identity. Duplicate identities indicate a
// transport bug; the existing entry is kept and ErrAgentConflict returned.
func (s *RegistryService) Register(agentID, hostname, osName, arch, version string, connectedAt time.Time) (*domains.Agent, error) {
	agent := &domains.Agent{
		ID:            agentID,
		Hostname:      hostname,
		OS:            utils.NormalizeOSName(osName),
		Arch:          utils.NormalizeArch(arch),
		Version:       version,
		ConnectedAt:   connectedAt,
		LastHeartbeat: connectedAt,
	}

	if err := s.store.RegisterAgent(agent); err != nil {
		s.logger.Error("agent registration rejected", "agentId", agentID, "hostname", hostname, "error", err)
		return nil, err
	}

	s.logger.Info("agent registered", "agentId", agentID, "hostname", hostname, "os", agent.OS, "arch", agent.Arch)
	return agent, nil
}

// Unregister removes the agent and its cached metrics
func (s *RegistryService) Unregister(agentID string) {
	if s.store.RemoveAgent(agentID) {
		s.logger.Info("agent unregistered", "agentId", agentID)
	}
}

// Heartbeat updates the agent's last heartbeat time
func (s *RegistryService) Heartbeat(agentID string) bool {
	return s.store.TouchAgent(agentID)
}

// GetAgent returns an agent by identity
func (s *RegistryService) GetAgent(agentID string) (*domains.Agent, error) {
	agent, ok := s.store.GetAgent(agentID)
	if !ok {
		return nil, clients.ErrAgentNotFound
	}
	return agent, nil
}

// ResolveByHostname returns the identity registered under a hostname. When
// several agents report the same hostname the most recently connected wins.
func (s *RegistryService) ResolveByHostname(hostname string) (string, error) {
	agentID, ok := s.store.ResolveHostname(hostname)
	if !ok {
		return "", clients.ErrAgentNotFound
	}
	return agentID, nil
}

// List returns all registered agents as of the call
func (s *RegistryService) List() []*domains.Agent {
	return s.store.ListAgents()
}

// Count returns the number of registered agents
func (s *RegistryService) Count() int {
	return s.store.AgentCount()
}
