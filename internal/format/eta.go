package format

import (
	"fmt"
	"strings"
	"time"
)

// etaSmoothing is the exponential smoothing factor applied to the progress
// rate. A lower value favors stability over reactivity.
const etaSmoothing = 0.3

// ProgressWithETA aggregates per-engine progress values and estimates the
// time remaining from a smoothed progress rate.
type ProgressWithETA struct {
	progresses   []float64
	startTime    time.Time
	lastAverage  float64
	lastUpdate   time.Time
	smoothedRate float64 // progress units per second
}

// NewProgressWithETA creates an aggregator for numEngines engines.
func NewProgressWithETA(numEngines int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		progresses: make([]float64, numEngines),
		startTime:  now,
		lastUpdate: now,
	}
}

// UpdateWithETA records a progress value for one engine and returns the new
// average progress along with the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	if index >= 0 && index < len(p.progresses) {
		p.progresses[index] = value
	}

	avg := p.CalculateAverage()
	now := time.Now()
	dt := now.Sub(p.lastUpdate).Seconds()
	if dt > 0 && avg > p.lastAverage {
		rate := (avg - p.lastAverage) / dt
		if p.smoothedRate == 0 {
			p.smoothedRate = rate
		} else {
			p.smoothedRate = etaSmoothing*rate + (1-etaSmoothing)*p.smoothedRate
		}
		p.lastAverage = avg
		p.lastUpdate = now
	}

	return avg, p.GetETA()
}

// CalculateAverage returns the mean progress across all engines.
func (p *ProgressWithETA) CalculateAverage() float64 {
	if len(p.progresses) == 0 {
		return 0
	}
	var total float64
	for _, v := range p.progresses {
		total += v
	}
	return total / float64(len(p.progresses))
}

// GetETA returns the estimated time remaining, or zero when no rate has been
// observed yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if p.smoothedRate <= 0 || avg >= 1 {
		return 0
	}
	remaining := (1 - avg) / p.smoothedRate
	return time.Duration(remaining * float64(time.Second))
}

// FormatETA renders an ETA for display; sub-second estimates show as "<1s".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return ""
	}
	if eta < time.Second {
		return "<1s"
	}
	return eta.Round(time.Second).String()
}

// FormatProgressBarWithETA renders a textual progress bar of the given width
// with a percentage and optional ETA suffix.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := int(progress * float64(width))
	var b strings.Builder
	b.Grow(width)
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}

	s := fmt.Sprintf("[%s] %5.1f%%", b.String(), progress*100)
	if etaStr := FormatETA(eta); etaStr != "" {
		s += " ETA " + etaStr
	}
	return s
}
