package services

import (
	"errors"
	"testing"
	"time"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/domains"
	"telemetry-hub/storage/memory"
)

func newTestServices(t *testing.T) (*RegistryService, *MetricsService) {
	t.Helper()
	store := memory.NewStore()
	logger := testLogger()
	registry := NewRegistryService(store, logger)
	alerts := NewAlertService(90, 90, logger)
	return registry, NewMetricsService(store, alerts, logger)
}

func rawSnapshot(hostname string, cpuUsage float64, memTotal, memUsed uint64) map[string]interface{} {
	return map[string]interface{}{
		"timestamp": float64(time.Now().Unix()),
		"hostname":  hostname,
		"cpu":       map[string]interface{}{"usagePercent": cpuUsage},
		"memory": map[string]interface{}{
			"total": float64(memTotal),
			"used":  float64(memUsed),
		},
	}
}

func TestIngestCachesDerivedView(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())

	alerts, err := metrics.Ingest("A1", rawSnapshot("web-1", 95.0, 1000, 950))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	entry, err := metrics.Get("A1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry.CPUUsage != 95.0 {
		t.Errorf("CPUUsage = %v, want 95", entry.CPUUsage)
	}
	if entry.MemoryUsage != 95.0 {
		t.Errorf("MemoryUsage = %v, want 95", entry.MemoryUsage)
	}
	if entry.MemoryTotal != 1000 || entry.MemoryUsed != 950 {
		t.Errorf("memory fields = %d/%d", entry.MemoryTotal, entry.MemoryUsed)
	}

	// both thresholds breached
	if len(alerts) != 2 {
		t.Fatalf("alerts = %v, want cpu and memory", alerts)
	}
}

func TestIngestResolvesByHostnameFallback(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())

	// identity unknown to the registry; the self-reported hostname wins
	if _, err := metrics.Ingest("stale-id", rawSnapshot("web-1", 10, 100, 50)); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if _, err := metrics.Get("A1"); err != nil {
		t.Errorf("snapshot not attributed to resolved identity: %v", err)
	}
}

func TestIngestUnknownAgent(t *testing.T) {
	_, metrics := newTestServices(t)

	_, err := metrics.Ingest("ghost", rawSnapshot("nowhere", 10, 100, 50))
	if !errors.Is(err, clients.ErrAgentNotFound) {
		t.Errorf("Ingest() error = %v, want ErrAgentNotFound", err)
	}
}

func TestUpdateUnregisteredIsNoOp(t *testing.T) {
	_, metrics := newTestServices(t)

	snap := &domains.MetricsSnapshot{Hostname: "web-1"}
	if entry := metrics.Update("ghost", snap); entry != nil {
		t.Errorf("Update() for unregistered identity = %+v, want nil", entry)
	}
	if _, err := metrics.Get("ghost"); !errors.Is(err, clients.ErrAgentNotFound) {
		t.Errorf("Get() error = %v, want ErrAgentNotFound", err)
	}
}

func TestUpdateAbsentSectionsDefaultToZero(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())

	entry := metrics.Update("A1", &domains.MetricsSnapshot{Hostname: "web-1"})
	if entry == nil {
		t.Fatal("Update() = nil")
	}
	if entry.CPUUsage != 0 || entry.MemoryUsage != 0 || entry.MemoryTotal != 0 {
		t.Errorf("absent sections must cache zeros: %+v", entry)
	}
}

func TestClusterSummaryEmptyCache(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())

	summary := metrics.ClusterSummary()
	if summary.AgentCount != 1 {
		t.Errorf("AgentCount = %d, want 1 (connected-but-silent agents count)", summary.AgentCount)
	}
	if summary.AvgCPUUsage != 0 || summary.AvgMemoryUsage != 0 {
		t.Errorf("averages over empty cache = %v/%v, want 0/0", summary.AvgCPUUsage, summary.AvgMemoryUsage)
	}
}

func TestClusterSummaryAverages(t *testing.T) {
	registry, metrics := newTestServices(t)
	now := time.Now()
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", now)
	registry.Register("A2", "web-2", "linux", "amd64", "0.1.0", now)
	registry.Register("A3", "web-3", "linux", "amd64", "0.1.0", now)

	metrics.Ingest("A1", rawSnapshot("web-1", 20, 1000, 200))
	metrics.Ingest("A2", rawSnapshot("web-2", 40, 1000, 600))
	// A3 registered but silent: counts toward AgentCount, not the averages

	summary := metrics.ClusterSummary()
	if summary.AgentCount != 3 {
		t.Errorf("AgentCount = %d, want 3", summary.AgentCount)
	}
	if summary.AvgCPUUsage != 30 {
		t.Errorf("AvgCPUUsage = %v, want 30", summary.AvgCPUUsage)
	}
	if summary.AvgMemoryUsage != 40 {
		t.Errorf("AvgMemoryUsage = %v, want 40", summary.AvgMemoryUsage)
	}
}

func TestUnregisterRemovesCachedEntry(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())
	metrics.Ingest("A1", rawSnapshot("web-1", 50, 1000, 500))

	registry.Unregister("A1")

	if _, err := metrics.Get("A1"); !errors.Is(err, clients.ErrAgentNotFound) {
		t.Errorf("Get() after unregister error = %v, want ErrAgentNotFound", err)
	}
	if len(metrics.GetAll()) != 0 {
		t.Errorf("GetAll() after unregister = %v, want empty", metrics.GetAll())
	}
}

func TestIngestOverwritesPreviousEntry(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())

	metrics.Ingest("A1", rawSnapshot("web-1", 10, 1000, 100))
	metrics.Ingest("A1", rawSnapshot("web-1", 70, 1000, 700))

	entry, _ := metrics.Get("A1")
	if entry.CPUUsage != 70 {
		t.Errorf("CPUUsage = %v, want latest value 70", entry.CPUUsage)
	}
	if len(metrics.GetAll()) != 1 {
		t.Errorf("cache must hold one entry per agent, got %d", len(metrics.GetAll()))
	}
}

func TestIngestRejectsInvalidSnapshot(t *testing.T) {
	registry, metrics := newTestServices(t)
	registry.Register("A1", "web-1", "linux", "amd64", "0.1.0", time.Now())

	_, err := metrics.Ingest("A1", map[string]interface{}{"cpu": map[string]interface{}{}})
	var nerr *NormalizationError
	if !errors.As(err, &nerr) {
		t.Fatalf("Ingest() error = %v, want NormalizationError", err)
	}
	if _, err := metrics.Get("A1"); !errors.Is(err, clients.ErrAgentNotFound) {
		t.Error("rejected snapshot must not touch the cache")
	}
}
