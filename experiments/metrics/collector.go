package metrics

import (
	"qenolaba/game"
	"time"
)

type SearchMetric struct {
	Depth      int
	Scheme     string
	Duration   time.Duration
	Iterations int // aspiration searches, re-searches included
	Nodes      int // calls of the recursive search
	Generated  int // moves generated in all nodes
	Normal     int // played moves that neither push nor push off
	Pushes     int
	Outs       int
	Rated      int // static evaluations
	Won        int // positions decided by stone count
	Cutoffs    int
	Value      int
	BestMove   game.Move
}

// Played is the number of moves played during the search.
func (m SearchMetric) Played() int {
	return m.Normal + m.Pushes + m.Outs
}

type MoveMetric struct {
	Step   int
	Player int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // 0 if the game was stopped
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics of a single search. Searches run on one
// goroutine, so implementations need no synchronisation.
type Collector interface {
	Start(depth int, scheme string)
	AddIteration()
	AddNode(generated int)
	AddPlayed(t game.MoveType)
	AddRated()
	AddWon()
	AddCutoff()
	Complete(value int, best game.Move) SearchMetric
}

type collector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, scheme string) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Depth: depth, Scheme: scheme}
}

func (m *collector) AddIteration() {
	m.metric.Iterations++
}

func (m *collector) AddNode(generated int) {
	m.metric.Nodes++
	m.metric.Generated += generated
}

func (m *collector) AddPlayed(t game.MoveType) {
	switch {
	case t.IsOut():
		m.metric.Outs++
	case t.IsPush():
		m.metric.Pushes++
	default:
		m.metric.Normal++
	}
}

func (m *collector) AddRated()  { m.metric.Rated++ }
func (m *collector) AddWon()    { m.metric.Won++ }
func (m *collector) AddCutoff() { m.metric.Cutoffs++ }

func (m *collector) Complete(value int, best game.Move) SearchMetric {
	m.metric.Duration = time.Since(m.startTime)
	m.metric.Value = value
	m.metric.BestMove = best
	return m.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, scheme string) {}
func (m *dummyCollector) AddIteration()                  {}
func (m *dummyCollector) AddNode(generated int)          {}
func (m *dummyCollector) AddPlayed(t game.MoveType)      {}
func (m *dummyCollector) AddRated()                      {}
func (m *dummyCollector) AddWon()                        {}
func (m *dummyCollector) AddCutoff()                     {}
func (m *dummyCollector) Complete(value int, best game.Move) SearchMetric {
	return SearchMetric{Value: value, BestMove: best}
}
