package metrics

import (
	"sync"
	"time"
)

type persistStats struct {
	saves       int
	errors      int
	lastLatency time.Duration
}

// Recorder counts tracker activity in memory and forwards it to OpenTelemetry
// instruments when Setup configured them. A nil Recorder discards everything.
type Recorder struct {
	mu         sync.Mutex
	mutations  map[string]int
	persist    map[string]*persistStats
	weeksSaved int
	requests   map[string]int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		mutations: make(map[string]int),
		persist:   make(map[string]*persistStats),
		requests:  make(map[string]int),
		otel:      otel,
	}
}

// RecordMutation counts one roster or state change by operation name.
func (r *Recorder) RecordMutation(op string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.mutations[op]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordMutation(op)
	}
}

// RecordPersist tracks one gateway save with its latency and outcome.
func (r *Recorder) RecordPersist(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.persist[backend]
	if !ok {
		stats = &persistStats{}
		r.persist[backend] = stats
	}
	stats.saves++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPersist(backend, duration, err)
	}
}

// RecordWeekSaved counts a week snapshot capture.
func (r *Recorder) RecordWeekSaved(weekID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.weeksSaved++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordWeekSaved(weekID)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.requests[path]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// Requests returns how many requests were served for a route template.
func (r *Recorder) Requests(path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[path]
}

// Mutations returns how many times op was recorded.
func (r *Recorder) Mutations(op string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutations[op]
}

// WeeksSaved returns the number of week captures recorded.
func (r *Recorder) WeeksSaved() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weeksSaved
}

// PersistSnapshot is a copy of the save stats for one backend.
type PersistSnapshot struct {
	Saves       int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) Persist(backend string) PersistSnapshot {
	if r == nil {
		return PersistSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.persist[backend]
	if !ok {
		return PersistSnapshot{}
	}
	return PersistSnapshot{Saves: stats.saves, Errors: stats.errors, LastLatency: stats.lastLatency}
}
