package domains

// Command types dispatched to agents
const (
	CommandServiceRestart = "serviceRestart"
	CommandProcessKill    = "processKill"
	CommandDockerRestart  = "dockerRestart"
)

// Command is a remote operation addressed to one agent. The core only
// resolves the target; execution and its outcome belong to the transport.
type Command struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}
