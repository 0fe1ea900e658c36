// Package perf records per-frame performance samples and exports them as
// CSV. A Monitor is an explicit instance constructed at the composition
// root and passed to whatever records or exports samples; there is no
// ambient global state.
package perf

import (
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"sync"
	"time"
)

const (
	defaultCapacity = 512
	bytesPerMB      = 1024 * 1024
)

// Sample is one recorded frame measurement. FPS and heap figures are
// optional; absent values export as the literal string "N/A".
type Sample struct {
	Timestamp   time.Time
	RenderTime  time.Duration
	ObjectCount int

	FPS    float64
	HasFPS bool

	HeapTotalMB float64
	HeapUsedMB  float64
	HasHeap     bool
}

// Monitor keeps a bounded rolling buffer of frame samples.
//
// Monitor is safe for concurrent use so front ends may export while the
// engine records.
type Monitor struct {
	mu          sync.Mutex
	samples     []Sample
	index       int
	count       int
	started     bool
	captureHeap bool
	last        time.Time
	hasLast     bool
}

// NewMonitor creates a monitor retaining up to capacity samples; zero or
// negative capacity selects a default.
func NewMonitor(capacity int) *Monitor {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Monitor{samples: make([]Sample, capacity)}
}

// EnableHeapSampling switches per-sample heap measurement on or off.
// Heap figures come from runtime.ReadMemStats, which is not free; leave
// this off for high-frequency recording unless memory is under study.
func (m *Monitor) EnableHeapSampling(enabled bool) {
	m.mu.Lock()
	m.captureHeap = enabled
	m.mu.Unlock()
}

// Start begins accepting samples.
func (m *Monitor) Start() {
	m.mu.Lock()
	m.started = true
	m.hasLast = false
	m.mu.Unlock()
}

// Stop stops accepting samples; recorded samples remain exportable.
func (m *Monitor) Stop() {
	m.mu.Lock()
	m.started = false
	m.mu.Unlock()
}

// Clear discards all recorded samples.
func (m *Monitor) Clear() {
	m.mu.Lock()
	m.index = 0
	m.count = 0
	m.hasLast = false
	m.mu.Unlock()
}

// Record stores one frame sample. Calls before Start (or after Stop) are
// dropped. FPS derives from the spacing between consecutive records, so
// the first sample after Start carries no FPS value.
func (m *Monitor) Record(renderTime time.Duration, objectCount int) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}

	sample := Sample{
		Timestamp:   now,
		RenderTime:  renderTime,
		ObjectCount: objectCount,
	}
	if m.hasLast {
		if gap := now.Sub(m.last); gap > 0 {
			sample.FPS = float64(time.Second) / float64(gap)
			sample.HasFPS = true
		}
	}
	m.last = now
	m.hasLast = true

	if m.captureHeap {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)
		sample.HeapTotalMB = float64(stats.HeapSys) / bytesPerMB
		sample.HeapUsedMB = float64(stats.HeapAlloc) / bytesPerMB
		sample.HasHeap = true
	}

	m.samples[m.index] = sample
	m.index = (m.index + 1) % len(m.samples)
	if m.count < len(m.samples) {
		m.count++
	}
}

// Len returns the number of retained samples.
func (m *Monitor) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Samples returns the retained samples in chronological order.
func (m *Monitor) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Monitor) snapshotLocked() []Sample {
	result := make([]Sample, 0, m.count)
	start := m.index - m.count
	if start < 0 {
		start += len(m.samples)
	}
	for i := 0; i < m.count; i++ {
		result = append(result, m.samples[(start+i)%len(m.samples)])
	}
	return result
}

// csvHeader matches the export contract consumed by external tooling.
var csvHeader = []string{
	"Timestamp",
	"Render Time (ms)",
	"Object Count",
	"FPS",
	"Total Heap Size (MB)",
	"Used Heap Size (MB)",
}

// WriteCSV exports the retained samples, one row per sample, timestamps
// in ISO-8601, missing optional fields as "N/A".
func (m *Monitor) WriteCSV(w io.Writer) error {
	m.mu.Lock()
	samples := m.snapshotLocked()
	m.mu.Unlock()

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, sample := range samples {
		row := []string{
			sample.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(float64(sample.RenderTime)/float64(time.Millisecond), 'f', 3, 64),
			strconv.Itoa(sample.ObjectCount),
			optionalField(sample.FPS, sample.HasFPS, 2),
			optionalField(sample.HeapTotalMB, sample.HasHeap, 2),
			optionalField(sample.HeapUsedMB, sample.HasHeap, 2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func optionalField(value float64, present bool, precision int) string {
	if !present {
		return "N/A"
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
