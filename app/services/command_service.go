package services

import (
	"fmt"
	"log/slog"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/domains"
)

// CommandService handles remote command dispatch. Commands are addressed by
// hostname; the service resolves the owning identity and hands the command
// to the transport.
type CommandService struct {
	registry *RegistryService
	sender   clients.CommandSender
	logger   *slog.Logger
}

// NewCommandService creates a new command service
func NewCommandService(registry *RegistryService, sender clients.CommandSender, logger *slog.Logger) *CommandService {
	return &CommandService{
		registry: registry,
		sender:   sender,
		logger:   logger,
	}
}

// RestartService dispatches a service restart to the agent at hostname
func (s *CommandService) RestartService(hostname, serviceName string) error {
	return s.dispatch(hostname, domains.Command{
		Type:    domains.CommandServiceRestart,
		Payload: map[string]interface{}{"serviceName": serviceName},
	})
}

// KillProcess dispatches a process termination to the agent at hostname.
// target takes precedence over pid when both are given.
func (s *CommandService) KillProcess(hostname string, pid int, target string) error {
	payload := map[string]interface{}{"pid": pid}
	if target != "" {
		payload["target"] = target
	}
	return s.dispatch(hostname, domains.Command{
		Type:    domains.CommandProcessKill,
		Payload: payload,
	})
}

// RestartContainer dispatches a container restart to the agent at hostname
func (s *CommandService) RestartContainer(hostname, containerName string) error {
	return s.dispatch(hostname, domains.Command{
		Type:    domains.CommandDockerRestart,
		Payload: map[string]interface{}{"containerName": containerName},
	})
}

func (s *CommandService) dispatch(hostname string, cmd domains.Command) error {
	agentID, err := s.registry.ResolveByHostname(hostname)
	if err != nil {
		return err
	}

	if err := s.sender.SendCommand(agentID, cmd); err != nil {
		return fmt.Errorf("failed to dispatch %s to %s: %w", cmd.Type, hostname, err)
	}

	s.logger.Info("command dispatched", "type", cmd.Type, "hostname", hostname, "agentId", agentID)
	return nil
}
