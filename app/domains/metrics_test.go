package domains

import "testing"

func TestMemoryUsagePercent(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		used  uint64
		want  float64
	}{
		{"zero total", 0, 0, 0},
		{"zero total nonzero used", 0, 500, 0},
		{"half used", 1000, 500, 50},
		{"fully used", 1000, 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MemoryMetrics{Total: tt.total, Used: tt.used}
			if got := m.UsagePercent(); got != tt.want {
				t.Errorf("UsagePercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSwapUsagePercent(t *testing.T) {
	m := &MemoryMetrics{SwapTotal: 0, SwapUsed: 100}
	if got := m.SwapUsagePercent(); got != 0 {
		t.Errorf("SwapUsagePercent() with zero swap total = %v, want 0", got)
	}

	m = &MemoryMetrics{SwapTotal: 200, SwapUsed: 50}
	if got := m.SwapUsagePercent(); got != 25 {
		t.Errorf("SwapUsagePercent() = %v, want 25", got)
	}
}

func TestDiskUsagePercent(t *testing.T) {
	d := &DiskMetrics{Total: 0, Used: 0}
	if got := d.UsagePercent(); got != 0 {
		t.Errorf("UsagePercent() with zero total = %v, want 0", got)
	}

	d = &DiskMetrics{Total: 400, Used: 100}
	if got := d.UsagePercent(); got != 25 {
		t.Errorf("UsagePercent() = %v, want 25", got)
	}
}

func TestGPUMemoryUsagePercent(t *testing.T) {
	g := &GPUMetrics{MemoryTotal: 0, MemoryUsed: 512}
	if got := g.MemoryUsagePercent(); got != 0 {
		t.Errorf("MemoryUsagePercent() with zero total = %v, want 0", got)
	}

	g = &GPUMetrics{MemoryTotal: 8192, MemoryUsed: 4096}
	if got := g.MemoryUsagePercent(); got != 50 {
		t.Errorf("MemoryUsagePercent() = %v, want 50", got)
	}
}
