package metrics

import "runtime"

// MemorySnapshot captures the runtime memory figures the verbose extraction
// report surfaces. An extraction's dominant allocation is the shared
// power-of-two table plus one partial-result buffer per dispatch round, so
// live heap, OS footprint, and GC cycle count are enough to characterize a
// run.
type MemorySnapshot struct {
	// HeapAlloc is the bytes of live heap, mostly the power table.
	HeapAlloc uint64
	// Sys is the total bytes obtained from the OS.
	Sys uint64
	// NumGC is the number of completed GC cycles.
	NumGC uint32
}

// SnapshotMemory reads the current runtime memory statistics.
func SnapshotMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc: m.HeapAlloc,
		Sys:       m.Sys,
		NumGC:     m.NumGC,
	}
}

// HeapGrowth returns the live-heap growth since an earlier snapshot, zero
// when the heap shrank.
func (s MemorySnapshot) HeapGrowth(earlier MemorySnapshot) uint64 {
	if s.HeapAlloc <= earlier.HeapAlloc {
		return 0
	}
	return s.HeapAlloc - earlier.HeapAlloc
}
