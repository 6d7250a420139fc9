package mcts

// SearchStats is the snapshot handed to listener callbacks: everything a
// caller watching genmove's progress can read without touching the tree
// directly.
type SearchStats struct {
	Playouts int
	InUse    int
	RootMean float64 // subjective mean of the current most-explored root child
}

// SearchListenerFunc receives a SearchStats snapshot.
type SearchListenerFunc func(SearchStats)

// SearchListener is the single-threaded analogue of the teacher's
// StatsListener (pkg/mcts/stats_listener.go). Per spec §5's cooperative
// model there is exactly one actor running playouts, so callbacks fire
// synchronously from within GenMove's loop -- no goroutine, no locking,
// and no "main thread" distinction is needed.
type SearchListener struct {
	onCycle SearchListenerFunc
	nCycles int
	onStop  SearchListenerFunc
}

// NewSearchListener returns a listener with no callbacks attached; OnCycle
// and OnStop attach them.
func NewSearchListener() *SearchListener {
	return &SearchListener{nCycles: 1}
}

// OnCycle attaches a callback invoked every n playouts (spec §5: "between
// playouts ... an external driver may interject to handle analysis
// commands").
func (l *SearchListener) OnCycle(n int, f SearchListenerFunc) *SearchListener {
	if n < 1 {
		n = 1
	}
	l.nCycles = n
	l.onCycle = f
	return l
}

// OnStop attaches a callback invoked once, after GenMove's playout loop
// ends (whether by exhausting the playout budget or by a fastplay exit).
func (l *SearchListener) OnStop(f SearchListenerFunc) *SearchListener {
	l.onStop = f
	return l
}

// SetListener installs listener, replacing any previous one. A nil
// listener disables callbacks entirely.
func (s *Search) SetListener(listener *SearchListener) {
	s.listener = listener
}

func (s *Search) snapshot(playouts int, player Player) SearchStats {
	stats := SearchStats{Playouts: playouts, InUse: s.tree.InUse()}
	if best := s.tree.MostExploredChild(s.tree.ActRoot(), player); best != NoNode {
		stats.RootMean = player.SubjectiveScore(s.tree.Node(best).Stat.Mean())
	}
	return stats
}

func (s *Search) invokeCycle(playouts int, player Player) {
	if s.listener == nil || s.listener.onCycle == nil {
		return
	}
	if playouts%s.listener.nCycles == 0 {
		s.listener.onCycle(s.snapshot(playouts, player))
	}
}

func (s *Search) invokeStop(playouts int, player Player) {
	if s.listener == nil || s.listener.onStop == nil {
		return
	}
	s.listener.onStop(s.snapshot(playouts, player))
}
