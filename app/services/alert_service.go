package services

import (
	"log/slog"

	"telemetry-hub/app/domains"
)

// AlertService evaluates cached entries against fixed thresholds. It keeps
// no state between calls: every breaching update emits a fresh alert, and
// suppressing repeats is the consumer's problem.
type AlertService struct {
	cpuThreshold float64
	memThreshold float64
	logger       *slog.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(cpuThreshold, memThreshold float64, logger *slog.Logger) *AlertService {
	return &AlertService{
		cpuThreshold: cpuThreshold,
		memThreshold: memThreshold,
		logger:       logger,
	}
}

// Evaluate returns one alert per breached threshold
func (s *AlertService) Evaluate(entry *domains.CachedAgentMetrics) []domains.Alert {
	var alerts []domains.Alert

	if entry.CPUUsage > s.cpuThreshold {
		alerts = append(alerts, domains.Alert{
			Hostname: entry.Hostname,
			Metric:   domains.AlertMetricCPU,
			Value:    entry.CPUUsage,
		})
		s.logger.Warn("high cpu alert", "hostname", entry.Hostname, "usagePercent", entry.CPUUsage)
	}
	if entry.MemoryUsage > s.memThreshold {
		alerts = append(alerts, domains.Alert{
			Hostname: entry.Hostname,
			Metric:   domains.AlertMetricMemory,
			Value:    entry.MemoryUsage,
		})
		s.logger.Warn("high memory alert", "hostname", entry.Hostname, "usagePercent", entry.MemoryUsage)
	}

	return alerts
}
