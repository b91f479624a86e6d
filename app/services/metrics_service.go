package services

import (
	"log/slog"
	"time"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/domains"
)

// MetricsService maintains the latest-value metrics cache and computes
// cluster aggregates over it.
type MetricsService struct {
	store  clients.StateStore
	alerts *AlertService
	logger *slog.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(store clients.StateStore, alerts *AlertService, logger *slog.Logger) *MetricsService {
	return &MetricsService{
		store:  store,
		alerts: alerts,
		logger: logger,
	}
}

// Ingest normalizes one raw reporting cycle and caches it. agentID is the
// transport-assigned identity of the delivering connection; when it is not
// registered (or empty) the snapshot's self-reported hostname is resolved
// instead. Returns the alerts raised by the fresh entry.
func (s *MetricsService) Ingest(agentID string, raw map[string]interface{}) ([]domains.Alert, error) {
	snap, dropped, err := NormalizeSnapshot(raw)
	if err != nil {
		s.logger.Warn("snapshot rejected", "agentId", agentID, "error", err)
		return nil, err
	}
	if dropped > 0 {
		s.logger.Warn("snapshot contained malformed elements", "agentId", agentID, "hostname", snap.Hostname, "dropped", dropped)
	}

	if _, ok := s.store.GetAgent(agentID); !ok {
		resolved, ok := s.store.ResolveHostname(snap.Hostname)
		if !ok {
			return nil, clients.ErrAgentNotFound
		}
		agentID = resolved
	}

	entry := s.Update(agentID, snap)
	if entry == nil {
		return nil, clients.ErrAgentNotFound
	}
	return s.alerts.Evaluate(entry), nil
}

// Update recomputes the cached projection from a snapshot and overwrites the
// agent's entry. A no-op for unregistered identities: late snapshots for a
// just-disconnected agent must not resurrect a cache entry. Returns the
// written entry, or nil when dropped.
func (s *MetricsService) Update(agentID string, snap *domains.MetricsSnapshot) *domains.CachedAgentMetrics {
	entry := &domains.CachedAgentMetrics{
		Hostname:  snap.Hostname,
		Timestamp: time.Now(),
	}
	if snap.CPU != nil {
		entry.CPUUsage = snap.CPU.UsagePercent
	}
	if snap.Memory != nil {
		entry.MemoryUsage = snap.Memory.UsagePercent()
		entry.MemoryTotal = snap.Memory.Total
		entry.MemoryUsed = snap.Memory.Used
	}

	if !s.store.PutMetrics(agentID, entry) {
		return nil
	}
	return entry
}

// Get returns the cached metrics for one agent
func (s *MetricsService) Get(agentID string) (*domains.CachedAgentMetrics, error) {
	entry, ok := s.store.GetMetrics(agentID)
	if !ok {
		return nil, clients.ErrAgentNotFound
	}
	return entry, nil
}

// GetAll returns the full identity-to-metrics mapping
func (s *MetricsService) GetAll() map[string]*domains.CachedAgentMetrics {
	return s.store.AllMetrics()
}

// ClusterSummary computes on-demand aggregates: the agent count comes from
// the registry (a connected-but-silent agent still counts), the averages are
// plain means over whatever the cache currently holds.
func (s *MetricsService) ClusterSummary() domains.ClusterSummary {
	summary := domains.ClusterSummary{
		AgentCount: s.store.AgentCount(),
	}

	cached := s.store.AllMetrics()
	if len(cached) == 0 {
		return summary
	}

	var totalCPU, totalMem float64
	for _, m := range cached {
		totalCPU += m.CPUUsage
		totalMem += m.MemoryUsage
	}
	summary.AvgCPUUsage = totalCPU / float64(len(cached))
	summary.AvgMemoryUsage = totalMem / float64(len(cached))
	return summary
}
