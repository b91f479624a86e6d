package dto

// TokenRequest exchanges the configured registration key for an agent token
type TokenRequest struct {
	RegistrationKey string `json:"registration_key" validate:"required"`
	Hostname        string `json:"hostname" validate:"required"`
}

// ServiceRequest names the service to restart
type ServiceRequest struct {
	ServiceName string `json:"service_name" validate:"required"`
}

// ProcessRequest identifies the process to terminate, by pid or by name
type ProcessRequest struct {
	PID    int    `json:"pid" validate:"required_without=Target,omitempty,min=1"`
	Target string `json:"target,omitempty"`
}

// DockerRequest names the container to restart
type DockerRequest struct {
	ContainerName string `json:"container_name" validate:"required"`
}
