package clients

import "telemetry-hub/app/domains"

// CommandSender delivers a command to a connected agent. The websocket hub
// implements this; command execution results come back as transport frames
// and are not part of the core's contract.
type CommandSender interface {
	SendCommand(agentID string, cmd domains.Command) error
}
