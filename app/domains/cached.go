package domains

import "time"

// CachedAgentMetrics is the latest-value projection kept per agent. It is
// overwritten on every snapshot and removed when the agent disconnects.
type CachedAgentMetrics struct {
	Hostname    string    `json:"hostname"`
	CPUUsage    float64   `json:"cpuUsage"`
	MemoryUsage float64   `json:"memoryUsage"`
	MemoryTotal uint64    `json:"memoryTotal"`
	MemoryUsed  uint64    `json:"memoryUsed"`
	Timestamp   time.Time `json:"timestamp"`
}

// ClusterSummary holds cluster-wide aggregates. AgentCount is the registry
// size; the averages are arithmetic means over cached entries only.
type ClusterSummary struct {
	AgentCount     int     `json:"agent_count"`
	AvgCPUUsage    float64 `json:"avg_cpu_usage"`
	AvgMemoryUsage float64 `json:"avg_memory_usage"`
}

// Alert metric kinds
const (
	AlertMetricCPU    = "cpu"
	AlertMetricMemory = "memory"
)

// Alert is emitted when a cached entry breaches a threshold.
type Alert struct {
	Hostname string  `json:"hostname"`
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
}
