package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric captures the statistics of one search call, aggregated over
// all workers that contributed to it.
type SearchMetric struct {
	Workers    int
	Duration   time.Duration
	Rounds     int
	Nodes      int
	StopReason string
}

// MoveMetric ties a search's statistics to the move it produced.
type MoveMetric struct {
	Ply    int
	Player string
	Move   string
	SearchMetric
}

// GameMetric captures one full game.
type GameMetric struct {
	Winner     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalPlies int
}

// Collector accumulates search statistics. Implementations must tolerate
// concurrent Add and Set calls from parallel workers; Start and Complete
// bracket a single search and run on the coordinating goroutine.
type Collector interface {
	Start(workers int)
	AddRound()
	AddNode()
	SetStopReason(reason string)
	Complete() SearchMetric
}

type collector struct {
	workers    int
	startTime  time.Time
	rounds     atomic.Int64
	nodes      atomic.Int64
	stopReason atomic.Value
}

// NewCollector returns a collector safe for sharing across search workers.
// When several workers stop for different reasons, the last one to report
// wins; the counters are exact.
func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers int) {
	m.workers = workers
	m.startTime = time.Now()
	m.rounds.Store(0)
	m.nodes.Store(0)
	m.stopReason.Store("")
}

func (m *collector) AddRound() {
	m.rounds.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) SetStopReason(reason string) {
	m.stopReason.Store(reason)
}

func (m *collector) Complete() SearchMetric {
	reason, _ := m.stopReason.Load().(string)
	return SearchMetric{
		Workers:    m.workers,
		Duration:   time.Since(m.startTime),
		Rounds:     int(m.rounds.Load()),
		Nodes:      int(m.nodes.Load()),
		StopReason: reason,
	}
}

// NewDummyCollector returns a no-op collector for searches that do not
// record metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

type dummyCollector struct{}

func (m *dummyCollector) Start(workers int)           {}
func (m *dummyCollector) AddRound()                   {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) SetStopReason(reason string) {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
