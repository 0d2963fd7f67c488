// Package progress defines the progress update type shared between the
// extraction engines and the presentation layers (CLI spinner, TUI).
package progress

// ProgressUpdate carries a single progress notification from a running
// extraction engine to the display layer.
type ProgressUpdate struct {
	// CalculatorIndex identifies which engine sent the update. It is the
	// index of the engine in the slice passed to the orchestrator.
	CalculatorIndex int
	// Value is the normalized progress of that engine, from 0.0 to 1.0.
	Value float64
}

// Send delivers an update on the channel without blocking. Updates are
// advisory; if the display layer is slow and the buffer is full, the
// update is dropped rather than stalling the computation.
func Send(ch chan<- ProgressUpdate, index int, value float64) {
	if ch == nil {
		return
	}
	select {
	case ch <- ProgressUpdate{CalculatorIndex: index, Value: value}:
	default:
	}
}
