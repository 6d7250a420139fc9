package mcts

// fakeBoard is a minimal, rule-free Board double for exercising SearchTree
// and Search without pulling in internal/goboard (which would make pkg/mcts
// depend on its own consumer). Legality is simply "empty and in range";
// there is no capture, ko, or scoring logic -- tests that need real Go
// semantics belong in internal/goboard, not here.
type fakeBoard struct {
	size       int
	occupied   map[Vertex]Player
	moves      []Move
	toPlay     Player
	passStreak int
}

func newFakeBoard(size int, toPlay Player) *fakeBoard {
	return &fakeBoard{size: size, occupied: make(map[Vertex]Player), toPlay: toPlay}
}

func (b *fakeBoard) IsLegal(p Player, v Vertex) bool {
	if v == Pass {
		return true
	}
	if v < 0 || int(v) >= b.size {
		return false
	}
	_, taken := b.occupied[v]
	return !taken
}

func (b *fakeBoard) IsReallyLegal(m Move) bool { return b.IsLegal(m.Player, m.Vertex) }
func (b *fakeBoard) IsPseudoLegal(p Player, v Vertex) bool { return b.IsLegal(p, v) }

func (b *fakeBoard) PlayLegal(m Move) bool {
	if !b.IsLegal(m.Player, m.Vertex) {
		return false
	}
	if m.Vertex == Pass {
		b.passStreak++
	} else {
		b.occupied[m.Vertex] = m.Player
		b.passStreak = 0
	}
	b.moves = append(b.moves, m)
	b.toPlay = m.Player.Other()
	return true
}

func (b *fakeBoard) BothPlayersPassed() bool { return b.passStreak >= 2 }

func (b *fakeBoard) TTWinner() Player {
	blackCount, whiteCount := 0, 0
	for _, p := range b.occupied {
		if p == Black {
			blackCount++
		} else {
			whiteCount++
		}
	}
	if whiteCount > blackCount {
		return White
	}
	return Black
}

func (b *fakeBoard) ActPlayer() Player        { return b.toPlay }
func (b *fakeBoard) SetActPlayer(p Player)    { b.toPlay = p }
func (b *fakeBoard) Size() int                { return b.size }
func (b *fakeBoard) Moves() []Move            { return b.moves }

func (b *fakeBoard) Vertices() []Vertex {
	vs := make([]Vertex, 0, b.size+1)
	for v := 0; v < b.size; v++ {
		if _, taken := b.occupied[Vertex(v)]; !taken {
			vs = append(vs, Vertex(v))
		}
	}
	vs = append(vs, Pass)
	return vs
}

func (b *fakeBoard) CopyFrom(src Board) {
	s := src.(*fakeBoard)
	b.size = s.size
	b.occupied = make(map[Vertex]Player, len(s.occupied))
	for v, p := range s.occupied {
		b.occupied[v] = p
	}
	b.moves = append([]Move(nil), s.moves...)
	b.toPlay = s.toPlay
	b.passStreak = s.passStreak
}

// fakeSampler is a fixed-bias Sampler double. Run always terminates the
// rollout by passing the board out to BothPlayersPassed, so tests don't
// depend on fakeBoard ever running out of vertices on its own.
type fakeSampler struct {
	bias   float64
	winner Player
	played []Move
}

func newFakeSampler(bias float64, winner Player) *fakeSampler {
	return &fakeSampler{bias: bias, winner: winner}
}

func (s *fakeSampler) NewPlayout()            { s.played = s.played[:0] }
func (s *fakeSampler) MovePlayed(m Move)      { s.played = append(s.played, m) }
func (s *fakeSampler) Probability(p Player, v Vertex) float64 { return s.bias }

func (s *fakeSampler) Run(board Board) Player {
	for !board.BothPlayersPassed() {
		p := board.ActPlayer()
		board.PlayLegal(Move{Player: p, Vertex: Pass})
	}
	return s.winner
}
