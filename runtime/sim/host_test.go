package sim

import "testing"

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n <= 0 {
		t.Fatalf("expected positive worker count, got %d", n)
	}
}

func TestSnapshotHost(t *testing.T) {
	info := SnapshotHost()
	if info.LogicalCPUs <= 0 {
		t.Fatalf("expected logical cpus, got %d", info.LogicalCPUs)
	}
	if info.MemoryUsedPct < 0 || info.MemoryUsedPct > 100 {
		t.Fatalf("memory usage %v out of range", info.MemoryUsedPct)
	}
}
