package domains

// MetricsSnapshot is the canonical form of one reporting cycle from an agent.
// Optional sections are nil when the agent did not send them; a nil section
// is not the same thing as a zero-valued one.
type MetricsSnapshot struct {
	Timestamp   int64            `json:"timestamp"`
	Hostname    string           `json:"hostname"`
	CPU         *CPUMetrics      `json:"cpu,omitempty"`
	Memory      *MemoryMetrics   `json:"memory,omitempty"`
	Disks       []DiskMetrics    `json:"disks,omitempty"`
	Networks    []NetworkMetrics `json:"networks,omitempty"`
	GPUs        []GPUMetrics     `json:"gpus,omitempty"`
	SystemInfo  *SystemInfo      `json:"systemInfo,omitempty"`
	LoadAverage []float64        `json:"loadAverage,omitempty"`
}

// CPUMetrics represents CPU metrics
type CPUMetrics struct {
	UsagePercent float64   `json:"usagePercent"`
	CoreCount    int       `json:"coreCount"`
	PerCoreUsage []float64 `json:"perCoreUsage,omitempty"`
	Model        string    `json:"model,omitempty"`
	Vendor       string    `json:"vendor,omitempty"`
	FrequencyMHz uint64    `json:"frequencyMhz,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
}

// MemoryMetrics represents memory metrics
type MemoryMetrics struct {
	Total     uint64 `json:"total"`
	Used      uint64 `json:"used"`
	Available uint64 `json:"available"`
	SwapTotal uint64 `json:"swapTotal"`
	SwapUsed  uint64 `json:"swapUsed"`
}

// UsagePercent returns memory usage percentage
func (m *MemoryMetrics) UsagePercent() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Used) / float64(m.Total) * 100
}

// SwapUsagePercent returns swap usage percentage
func (m *MemoryMetrics) SwapUsagePercent() float64 {
	if m.SwapTotal == 0 {
		return 0
	}
	return float64(m.SwapUsed) / float64(m.SwapTotal) * 100
}

// DiskMetrics represents metrics for one mounted filesystem
type DiskMetrics struct {
	MountPoint       string  `json:"mountPoint"`
	Device           string  `json:"device"`
	FSType           string  `json:"fsType"`
	Total            uint64  `json:"total"`
	Used             uint64  `json:"used"`
	Available        uint64  `json:"available"`
	ReadBytesPerSec  uint64  `json:"readBytesPerSec"`
	WriteBytesPerSec uint64  `json:"writeBytesPerSec"`
	Model            string  `json:"model,omitempty"`
	DiskType         string  `json:"diskType,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

// UsagePercent returns disk usage percentage
func (d *DiskMetrics) UsagePercent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Used) / float64(d.Total) * 100
}

// NetworkMetrics represents metrics for one network interface
type NetworkMetrics struct {
	Interface       string   `json:"interface"`
	RxBytesPerSec   uint64   `json:"rxBytesPerSec"`
	TxBytesPerSec   uint64   `json:"txBytesPerSec"`
	RxPacketsPerSec uint64   `json:"rxPacketsPerSec"`
	TxPacketsPerSec uint64   `json:"txPacketsPerSec"`
	IsUp            bool     `json:"isUp"`
	MacAddress      string   `json:"macAddress,omitempty"`
	IPAddresses     []string `json:"ipAddresses,omitempty"`
	SpeedMbps       uint64   `json:"speedMbps,omitempty"`
}

// GPUMetrics represents metrics for one GPU
type GPUMetrics struct {
	Index           uint32  `json:"index"`
	Name            string  `json:"name"`
	Vendor          string  `json:"vendor"`
	UsagePercent    float64 `json:"usagePercent"`
	MemoryTotal     uint64  `json:"memoryTotal"`
	MemoryUsed      uint64  `json:"memoryUsed"`
	Temperature     float64 `json:"temperature"`
	FanSpeedPercent uint32  `json:"fanSpeedPercent,omitempty"`
	PowerWatts      uint32  `json:"powerWatts,omitempty"`
	ClockCoreMHz    uint64  `json:"clockCoreMhz,omitempty"`
	ClockMemoryMHz  uint64  `json:"clockMemoryMhz,omitempty"`
	DriverVersion   string  `json:"driverVersion,omitempty"`
	EncoderUsage    float64 `json:"encoderUsage,omitempty"`
	DecoderUsage    float64 `json:"decoderUsage,omitempty"`
}

// MemoryUsagePercent returns GPU memory usage percentage
func (g *GPUMetrics) MemoryUsagePercent() float64 {
	if g.MemoryTotal == 0 {
		return 0
	}
	return float64(g.MemoryUsed) / float64(g.MemoryTotal) * 100
}

// SystemInfo represents static system information
type SystemInfo struct {
	OSName        string `json:"osName"`
	OSVersion     string `json:"osVersion"`
	KernelVersion string `json:"kernelVersion"`
	Hostname      string `json:"hostname"`
	BootTime      int64  `json:"bootTime"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}
