package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const defaultCollectInterval = 5 * time.Second

var (
	HostCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_host_cpu_usage_percent",
			Help: "Host CPU usage percentage",
		},
	)

	HostMemoryUsed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_host_memory_used_bytes",
			Help: "Host memory in use, bytes",
		},
	)

	ProcessResidentMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_process_resident_memory_bytes",
			Help: "Resident set size of the parcel-locker process, bytes",
		},
	)

	ProcessHeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_process_heap_alloc_bytes",
			Help: "Go heap allocation of the parcel-locker process, bytes",
		},
	)

	ProcessGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_process_goroutines",
			Help: "Number of goroutines, grows with in-flight assignment runs and consumers",
		},
	)
)

// StartSystemCollector снимает показатели хоста и процесса до отмены ctx.
func StartSystemCollector(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCollectInterval
	}

	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		self = nil
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CollectSystemMetrics(ctx, self)
			}
		}
	}()
}

// CollectSystemMetrics self может быть nil, тогда RSS не обновляется.
func CollectSystemMetrics(ctx context.Context, self *process.Process) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	ProcessHeapAlloc.Set(float64(m.Alloc))
	ProcessGoroutines.Set(float64(runtime.NumGoroutine()))

	// cpu.Percent с нулевым интервалом считает от прошлого вызова и не блокирует
	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuPercent) > 0 {
		HostCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		HostMemoryUsed.Set(float64(vmStat.Used))
	}

	if self == nil {
		return
	}
	memInfo, err := self.MemoryInfoWithContext(ctx)
	if err == nil {
		ProcessResidentMemory.Set(float64(memInfo.RSS))
	}
}
