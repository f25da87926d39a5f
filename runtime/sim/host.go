package sim

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo 运行机器的快照，随报告一起保存
type HostInfo struct {
	LogicalCPUs   int
	TotalMemory   uint64
	MemoryUsedPct float64
	CPUUsedPct    float64
}

// DefaultWorkers 逻辑 CPU 数，gopsutil 取不到时用 runtime.NumCPU
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// SnapshotHost 取不到的指标保持零值
func SnapshotHost() HostInfo {
	info := HostInfo{LogicalCPUs: DefaultWorkers()}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
		info.MemoryUsedPct = vm.UsedPercent
	}
	// interval 为 0 时返回与上次调用之间的使用率，不阻塞
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		info.CPUUsedPct = pct[0]
	}
	return info
}
