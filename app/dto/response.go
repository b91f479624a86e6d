package dto

import "telemetry-hub/app/domains"

// TokenResponse carries a freshly issued agent token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// AgentResponse is one agent in a listing
type AgentResponse struct {
	AgentID       string `json:"agentId"`
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Version       string `json:"version"`
	ConnectedAt   string `json:"connectedAt"`
	LastHeartbeat string `json:"lastHeartbeat"`
}

// ListAgentsResponse lists all connected agents
type ListAgentsResponse struct {
	Agents []AgentResponse `json:"agents"`
	Count  int             `json:"count"`
}

// SummaryResponse is the cluster summary
type SummaryResponse struct {
	AgentCount     int     `json:"agent_count"`
	AvgCPUUsage    float64 `json:"avg_cpu_usage"`
	AvgMemoryUsage float64 `json:"avg_memory_usage"`
}

// HealthResponse reports liveness plus connected-agent count
type HealthResponse struct {
	Status          string `json:"status"`
	ConnectedAgents int    `json:"connected_agents"`
}

// CommandResponse reports whether a command was handed to the transport
type CommandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MetricsResponse maps agent identities to their latest cached metrics
type MetricsResponse map[string]*domains.CachedAgentMetrics

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
