package services

import (
	"errors"
	"reflect"
	"testing"
)

func fullRawSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"timestamp": float64(1700000000),
		"hostname":  "web-1",
		"cpu": map[string]interface{}{
			"usagePercent": 42.5,
			"coreCount":    float64(8),
			"perCoreUsage": []interface{}{40.0, 45.0},
			"model":        "Xeon",
			"vendor":       "Intel",
			"frequencyMhz": float64(3200),
			"temperature":  55.0,
		},
		"memory": map[string]interface{}{
			"total":     float64(16000),
			"used":      float64(8000),
			"available": float64(8000),
			"swapTotal": float64(4000),
			"swapUsed":  float64(1000),
		},
		"disks": []interface{}{
			map[string]interface{}{
				"mountPoint": "/",
				"device":     "/dev/sda1",
				"fsType":     "ext4",
				"total":      float64(100000),
				"used":       float64(60000),
			},
		},
		"networks": []interface{}{
			map[string]interface{}{
				"interface":     "eth0",
				"rxBytesPerSec": float64(1024),
				"txBytesPerSec": float64(2048),
				"isUp":          true,
				"ipAddresses":   []interface{}{"10.0.0.1"},
			},
		},
		"gpus": []interface{}{
			map[string]interface{}{
				"index":        float64(0),
				"name":         "RTX 4090",
				"vendor":       "NVIDIA",
				"usagePercent": 75.0,
				"memoryTotal":  float64(24000),
				"memoryUsed":   float64(12000),
			},
		},
		"systemInfo": map[string]interface{}{
			"osName":        "Ubuntu",
			"osVersion":     "22.04",
			"kernelVersion": "6.5.0",
			"hostname":      "web-1",
			"uptimeSeconds": float64(3600),
		},
		"loadAverage": []interface{}{1.5, 1.2, 0.9},
	}
}

func TestNormalizeFullSnapshot(t *testing.T) {
	snap, dropped, err := NormalizeSnapshot(fullRawSnapshot())
	if err != nil {
		t.Fatalf("NormalizeSnapshot() error = %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}

	if snap.Hostname != "web-1" || snap.Timestamp != 1700000000 {
		t.Errorf("top-level fields = %q/%d", snap.Hostname, snap.Timestamp)
	}
	if snap.CPU == nil || snap.CPU.UsagePercent != 42.5 || snap.CPU.CoreCount != 8 {
		t.Errorf("cpu section not normalized: %+v", snap.CPU)
	}
	if snap.Memory == nil || snap.Memory.Total != 16000 || snap.Memory.Used != 8000 {
		t.Errorf("memory section not normalized: %+v", snap.Memory)
	}
	if len(snap.Disks) != 1 || snap.Disks[0].MountPoint != "/" {
		t.Errorf("disks not normalized: %+v", snap.Disks)
	}
	if len(snap.Networks) != 1 || !snap.Networks[0].IsUp || snap.Networks[0].IPAddresses[0] != "10.0.0.1" {
		t.Errorf("networks not normalized: %+v", snap.Networks)
	}
	if len(snap.GPUs) != 1 || snap.GPUs[0].Name != "RTX 4090" {
		t.Errorf("gpus not normalized: %+v", snap.GPUs)
	}
	if snap.SystemInfo == nil || snap.SystemInfo.OSName != "Ubuntu" {
		t.Errorf("systemInfo not normalized: %+v", snap.SystemInfo)
	}
	if !reflect.DeepEqual(snap.LoadAverage, []float64{1.5, 1.2, 0.9}) {
		t.Errorf("loadAverage = %v", snap.LoadAverage)
	}
}

func TestNormalizeMissingSectionsStayAbsent(t *testing.T) {
	raw := map[string]interface{}{
		"timestamp": float64(1700000000),
		"hostname":  "bare-1",
	}

	snap, dropped, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("NormalizeSnapshot() error = %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}

	if snap.CPU != nil || snap.Memory != nil || snap.SystemInfo != nil {
		t.Errorf("absent sections must stay nil: cpu=%v mem=%v sys=%v", snap.CPU, snap.Memory, snap.SystemInfo)
	}
	if len(snap.Disks) != 0 || len(snap.Networks) != 0 || len(snap.GPUs) != 0 {
		t.Errorf("absent list sections must be empty")
	}
}

func TestNormalizeEmptySectionIsAbsent(t *testing.T) {
	raw := map[string]interface{}{
		"timestamp": float64(1),
		"hostname":  "h",
		"cpu":       map[string]interface{}{},
		"memory":    nil,
	}

	snap, _, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("NormalizeSnapshot() error = %v", err)
	}
	if snap.CPU != nil {
		t.Errorf("empty cpu object must normalize to absent, got %+v", snap.CPU)
	}
	if snap.Memory != nil {
		t.Errorf("null memory must normalize to absent, got %+v", snap.Memory)
	}
}

func TestNormalizeDefaultsForMissingScalars(t *testing.T) {
	raw := map[string]interface{}{
		"timestamp": float64(1),
		"hostname":  "h",
		"cpu": map[string]interface{}{
			"usagePercent": 10.0,
		},
	}

	snap, _, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("NormalizeSnapshot() error = %v", err)
	}
	if snap.CPU.CoreCount != 0 || snap.CPU.Model != "" || snap.CPU.FrequencyMHz != 0 {
		t.Errorf("missing scalars must default: %+v", snap.CPU)
	}
}

func TestNormalizeDropsMalformedElements(t *testing.T) {
	raw := map[string]interface{}{
		"timestamp": float64(1),
		"hostname":  "h",
		"disks": []interface{}{
			"not-an-object",
			map[string]interface{}{"mountPoint": "/data"},
			float64(42),
		},
		"networks": []interface{}{
			map[string]interface{}{"interface": "eth0"},
		},
	}

	snap, dropped, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("NormalizeSnapshot() error = %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(snap.Disks) != 1 || snap.Disks[0].MountPoint != "/data" {
		t.Errorf("surviving disk element lost: %+v", snap.Disks)
	}
	if len(snap.Networks) != 1 {
		t.Errorf("other sections must be unaffected: %+v", snap.Networks)
	}
}

func TestNormalizeRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"missing hostname", map[string]interface{}{"timestamp": float64(1)}},
		{"hostname wrong kind", map[string]interface{}{"timestamp": float64(1), "hostname": float64(7)}},
		{"missing timestamp", map[string]interface{}{"hostname": "h"}},
		{"timestamp wrong kind", map[string]interface{}{"hostname": "h", "timestamp": "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NormalizeSnapshot(tt.raw)
			var nerr *NormalizationError
			if !errors.As(err, &nerr) {
				t.Errorf("NormalizeSnapshot() error = %v, want NormalizationError", err)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := fullRawSnapshot()

	first, _, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("first NormalizeSnapshot() error = %v", err)
	}
	second, _, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("second NormalizeSnapshot() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalizing the same record twice produced different snapshots")
	}
}

func TestNormalizeIntegerKinds(t *testing.T) {
	// Decoders that preserve integer types must normalize the same way as
	// ones that produce float64 for every number.
	raw := map[string]interface{}{
		"timestamp": int64(1700000000),
		"hostname":  "h",
		"memory": map[string]interface{}{
			"total": int(1000),
			"used":  uint64(950),
		},
	}

	snap, _, err := NormalizeSnapshot(raw)
	if err != nil {
		t.Fatalf("NormalizeSnapshot() error = %v", err)
	}
	if snap.Memory.Total != 1000 || snap.Memory.Used != 950 {
		t.Errorf("integer kinds not accepted: %+v", snap.Memory)
	}
}
