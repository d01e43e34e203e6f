package logger

import "time"

// Metrics collects the numbers reported at the end of one poll cycle. A
// Metrics value belongs to a single cycle and is not safe for concurrent use.
type Metrics struct {
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string]time.Duration
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string]time.Duration),
	}
}

// IncrCounter adds one to a counter.
func (m *Metrics) IncrCounter(name string) {
	m.counters[name]++
}

// AddCounter adds n to a counter.
func (m *Metrics) AddCounter(name string, n int64) {
	m.counters[name] += n
}

// SetGauge overwrites a gauge.
func (m *Metrics) SetGauge(name string, value float64) {
	m.gauges[name] = value
}

// RecordTiming stores how long a named step took.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.timings[name] = d
}

// Snapshot returns the metrics as log fields, keyed "counters", "gauges" and
// "timings". Timings are rendered as duration strings.
func (m *Metrics) Snapshot() Fields {
	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}
	gauges := make(map[string]float64, len(m.gauges))
	for k, v := range m.gauges {
		gauges[k] = v
	}
	timings := make(map[string]string, len(m.timings))
	for k, v := range m.timings {
		timings[k] = v.String()
	}
	return Fields{
		"counters": counters,
		"gauges":   gauges,
		"timings":  timings,
	}
}
