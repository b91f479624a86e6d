package services

import (
	"fmt"

	"telemetry-hub/app/domains"
)

// NormalizationError means a snapshot was unusable as a whole: a required
// top-level field was missing or of the wrong primitive kind.
type NormalizationError struct {
	Field  string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize snapshot: field %q %s", e.Field, e.Reason)
}

// NormalizeSnapshot converts one loosely-typed reporting cycle into the
// canonical MetricsSnapshot. Missing scalar fields get their defaults,
// missing optional sections stay nil, and a missing list section is an empty
// list. Malformed list elements are dropped and counted rather than failing
// the whole snapshot; the returned int is that drop count. Only a missing or
// mistyped hostname or timestamp fails the call.
func NormalizeSnapshot(raw map[string]interface{}) (*domains.MetricsSnapshot, int, error) {
	hostname, ok := asString(raw["hostname"])
	if !ok || hostname == "" {
		return nil, 0, &NormalizationError{Field: "hostname", Reason: "missing or not a string"}
	}
	timestamp, ok := asInt64(raw["timestamp"])
	if !ok {
		return nil, 0, &NormalizationError{Field: "timestamp", Reason: "missing or not a number"}
	}

	snap := &domains.MetricsSnapshot{
		Timestamp:   timestamp,
		Hostname:    hostname,
		LoadAverage: floatSlice(raw["loadAverage"]),
	}

	if sec, ok := section(raw, "cpu"); ok {
		snap.CPU = normalizeCPU(sec)
	}
	if sec, ok := section(raw, "memory"); ok {
		snap.Memory = normalizeMemory(sec)
	}
	if sec, ok := section(raw, "systemInfo"); ok {
		snap.SystemInfo = normalizeSystemInfo(sec)
	}

	dropped := 0
	for _, el := range elements(raw["disks"]) {
		sec, ok := el.(map[string]interface{})
		if !ok {
			dropped++
			continue
		}
		snap.Disks = append(snap.Disks, normalizeDisk(sec))
	}
	for _, el := range elements(raw["networks"]) {
		sec, ok := el.(map[string]interface{})
		if !ok {
			dropped++
			continue
		}
		snap.Networks = append(snap.Networks, normalizeNetwork(sec))
	}
	for _, el := range elements(raw["gpus"]) {
		sec, ok := el.(map[string]interface{})
		if !ok {
			dropped++
			continue
		}
		snap.GPUs = append(snap.GPUs, normalizeGPU(sec))
	}

	return snap, dropped, nil
}

func normalizeCPU(sec map[string]interface{}) *domains.CPUMetrics {
	return &domains.CPUMetrics{
		UsagePercent: getFloat(sec, "usagePercent"),
		CoreCount:    int(getInt(sec, "coreCount")),
		PerCoreUsage: floatSlice(sec["perCoreUsage"]),
		Model:        getString(sec, "model"),
		Vendor:       getString(sec, "vendor"),
		FrequencyMHz: getUint(sec, "frequencyMhz"),
		Temperature:  getFloat(sec, "temperature"),
	}
}

func normalizeMemory(sec map[string]interface{}) *domains.MemoryMetrics {
	return &domains.MemoryMetrics{
		Total:     getUint(sec, "total"),
		Used:      getUint(sec, "used"),
		Available: getUint(sec, "available"),
		SwapTotal: getUint(sec, "swapTotal"),
		SwapUsed:  getUint(sec, "swapUsed"),
	}
}

func normalizeDisk(sec map[string]interface{}) domains.DiskMetrics {
	return domains.DiskMetrics{
		MountPoint:       getString(sec, "mountPoint"),
		Device:           getString(sec, "device"),
		FSType:           getString(sec, "fsType"),
		Total:            getUint(sec, "total"),
		Used:             getUint(sec, "used"),
		Available:        getUint(sec, "available"),
		ReadBytesPerSec:  getUint(sec, "readBytesPerSec"),
		WriteBytesPerSec: getUint(sec, "writeBytesPerSec"),
		Model:            getString(sec, "model"),
		DiskType:         getString(sec, "diskType"),
		Temperature:      getFloat(sec, "temperature"),
	}
}

func normalizeNetwork(sec map[string]interface{}) domains.NetworkMetrics {
	return domains.NetworkMetrics{
		Interface:       getString(sec, "interface"),
		RxBytesPerSec:   getUint(sec, "rxBytesPerSec"),
		TxBytesPerSec:   getUint(sec, "txBytesPerSec"),
		RxPacketsPerSec: getUint(sec, "rxPacketsPerSec"),
		TxPacketsPerSec: getUint(sec, "txPacketsPerSec"),
		IsUp:            getBool(sec, "isUp"),
		MacAddress:      getString(sec, "macAddress"),
		IPAddresses:     stringSlice(sec["ipAddresses"]),
		SpeedMbps:       getUint(sec, "speedMbps"),
	}
}

func normalizeGPU(sec map[string]interface{}) domains.GPUMetrics {
	return domains.GPUMetrics{
		Index:           uint32(getUint(sec, "index")),
		Name:            getString(sec, "name"),
		Vendor:          getString(sec, "vendor"),
		UsagePercent:    getFloat(sec, "usagePercent"),
		MemoryTotal:     getUint(sec, "memoryTotal"),
		MemoryUsed:      getUint(sec, "memoryUsed"),
		Temperature:     getFloat(sec, "temperature"),
		FanSpeedPercent: uint32(getUint(sec, "fanSpeedPercent")),
		PowerWatts:      uint32(getUint(sec, "powerWatts")),
		ClockCoreMHz:    getUint(sec, "clockCoreMhz"),
		ClockMemoryMHz:  getUint(sec, "clockMemoryMhz"),
		DriverVersion:   getString(sec, "driverVersion"),
		EncoderUsage:    getFloat(sec, "encoderUsage"),
		DecoderUsage:    getFloat(sec, "decoderUsage"),
	}
}

func normalizeSystemInfo(sec map[string]interface{}) *domains.SystemInfo {
	return &domains.SystemInfo{
		OSName:        getString(sec, "osName"),
		OSVersion:     getString(sec, "osVersion"),
		KernelVersion: getString(sec, "kernelVersion"),
		Hostname:      getString(sec, "hostname"),
		BootTime:      getInt(sec, "bootTime"),
		UptimeSeconds: getInt(sec, "uptimeSeconds"),
	}
}

// section returns the named optional section only when it is present and a
// non-empty object. "present but empty" still counts as absent.
func section(raw map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	if !ok || len(m) == 0 {
		return nil, false
	}
	return m, true
}

// elements treats a missing or non-list value as an empty list
func elements(v interface{}) []interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	return list
}

func getString(sec map[string]interface{}, key string) string {
	s, _ := asString(sec[key])
	return s
}

func getFloat(sec map[string]interface{}, key string) float64 {
	f, _ := asFloat(sec[key])
	return f
}

func getInt(sec map[string]interface{}, key string) int64 {
	n, _ := asInt64(sec[key])
	return n
}

func getUint(sec map[string]interface{}, key string) uint64 {
	n, ok := asInt64(sec[key])
	if !ok || n < 0 {
		return 0
	}
	return uint64(n)
}

func getBool(sec map[string]interface{}, key string) bool {
	b, _ := sec[key].(bool)
	return b
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asFloat accepts the numeric kinds JSON decoders produce
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func floatSlice(v interface{}) []float64 {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]float64, 0, len(list))
	for _, el := range list {
		if f, ok := asFloat(el); ok {
			result = append(result, f)
		}
	}
	return result
}

func stringSlice(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := asString(el); ok {
			result = append(result, s)
		}
	}
	return result
}
