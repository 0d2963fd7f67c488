package metrics

import (
	"testing"
	"time"
)

func TestMetrics_Collectors(t *testing.T) {
	m := New()

	m.ObserveDispatch(8, 800_000)
	m.ObserveDispatch(8, 800_000)
	m.ExtractionStarted()
	m.ObserveExtraction(250 * time.Millisecond)
	m.ExtractionFinished()

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}
	for _, want := range []string{
		"bbpcalc_chunks_dispatched_total",
		"bbpcalc_terms_evaluated_total",
		"bbpcalc_extraction_duration_seconds",
		"bbpcalc_active_extractions",
	} {
		if !byName[want] {
			t.Errorf("registry missing collector %q", want)
		}
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide: each owns its registry.
	a := New()
	b := New()
	if a.Registry() == b.Registry() {
		t.Error("metrics instances share a registry")
	}
}

func TestSnapshotMemory(t *testing.T) {
	snap := SnapshotMemory()
	if snap.Sys == 0 {
		t.Error("SnapshotMemory().Sys = 0, want nonzero")
	}
	if snap.HeapAlloc == 0 {
		t.Error("SnapshotMemory().HeapAlloc = 0, want nonzero")
	}
}

func TestMemorySnapshot_HeapGrowth(t *testing.T) {
	earlier := MemorySnapshot{HeapAlloc: 1000}
	later := MemorySnapshot{HeapAlloc: 1500}
	if got := later.HeapGrowth(earlier); got != 500 {
		t.Errorf("HeapGrowth = %d, want 500", got)
	}
	// A shrinking heap reports zero growth, never wraps around.
	if got := earlier.HeapGrowth(later); got != 0 {
		t.Errorf("HeapGrowth after shrink = %d, want 0", got)
	}
}
