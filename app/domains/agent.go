package domains

import "time"

// Agent represents one connected monitoring agent. The ID is assigned by the
// transport layer at connection time and is the canonical key; hostnames are
// self-reported and may collide across agents.
type Agent struct {
	ID            string    `json:"agentId"`
	Hostname      string    `json:"hostname"`
	OS            string    `json:"os"`
	Arch          string    `json:"arch"`
	Version       string    `json:"version"`
	ConnectedAt   time.Time `json:"connectedAt"`
	LastHeartbeat time.Time `json:"lastHeartbeat"`

	// Seq is a monotonic registration sequence used to break
	// hostname-resolution ties between agents connected at the same instant.
	Seq uint64 `json:"-"`
}
