package metrics

import (
	"sync/atomic"
	"thud/game"
	"time"

	"github.com/google/uuid"
)

type SearchMetric struct {
	Algorithm    string
	Workers      int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	IsTreeReset  bool
	TreeSize     int
	BestDepth    int
	NodesVisited int
	Pruned       int
	TimedOut     bool
}

type MoveMetric struct {
	Step   int
	Player game.Piece
	Action game.Action
	Hash   game.StateHash // of the state the action was chosen in
	SearchMetric
}

type GameMetric struct {
	ID         uuid.UUID
	DwarfAgent string
	TrollAgent string
	Winner     game.Piece
	Status     game.Status
	DwarfScore float64
	TrollScore float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	DwarfTime  time.Duration // spent choosing actions
	TrollTime  time.Duration
}

// Collector accumulates the counters of a single search. Counters are safe
// for concurrent use; Start and Complete bracket one search.
type Collector interface {
	Start(algorithm string, workers, cutoff int)
	SetTreeReset(value bool)
	SetTree(size, bestDepth int)
	SetTimedOut()
	AddFullPlayout()
	AddEpisode()
	AddNode()
	AddPruned()
	Complete() SearchMetric
}

type collector struct {
	algorithm    string
	workers      int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
	pruned       atomic.Int32
	treeSize     atomic.Int32
	bestDepth    atomic.Int32
	isTreeReset  atomic.Bool
	timedOut     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, workers, cutoff int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.workers = workers
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.pruned.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetTree(size, bestDepth int) {
	m.treeSize.Store(int32(size))
	m.bestDepth.Store(int32(bestDepth))
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:    m.algorithm,
		Workers:      m.workers,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Cutoff:       m.cutoff,
		FullPlayouts: int(m.fullPlayouts.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
		TreeSize:     int(m.treeSize.Load()),
		BestDepth:    int(m.bestDepth.Load()),
		NodesVisited: int(m.nodes.Load()),
		Pruned:       int(m.pruned.Load()),
		TimedOut:     m.timedOut.Load(),
	}
}

// Merge folds the metrics of parallel searches of the same position into one.
func Merge(algorithm string, parts []SearchMetric) SearchMetric {
	merged := SearchMetric{Algorithm: algorithm, Workers: len(parts), IsTreeReset: len(parts) > 0}
	for _, p := range parts {
		merged.Duration = max(merged.Duration, p.Duration)
		merged.Episodes += p.Episodes
		merged.Cutoff = p.Cutoff
		merged.FullPlayouts += p.FullPlayouts
		merged.IsTreeReset = merged.IsTreeReset && p.IsTreeReset
		merged.TreeSize += p.TreeSize
		merged.BestDepth = max(merged.BestDepth, p.BestDepth)
	}
	return merged
}
