package sampler

import (
	"github.com/tsumego/mctsgo/internal/goboard"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

// pat3Templates holds every compiled 3x3 pattern in michi.go's pat3src
// table (hane, cut, and side shapes), each expanded to its four 90°
// rotations. Patterns are given with the mover's vantage as 'X'/the
// opponent as 'O'; the lowercase forms ('x','o') mean "anything but
// that colour", '?' is a wildcard, and a blank cell means off-board.
// Indices follow goboard.Board.Pattern3x3's order: NW,N,NE,W,E,SW,S,SE.
var pat3Templates = compilePatterns([][3]string{
	{"XOX", "...", "???"}, // enclosing hane
	{"XO.", "...", "?.?"}, // non-cutting hane
	{"XO?", "X..", "x.?"}, // magari
	{".O.", "X..", "..."}, // katatsuke / diagonal attachment
	{"XO?", "O.o", "?o?"}, // unprotected cut
	{"XO?", "O.X", "???"}, // peeped cut
	{"?X?", "O.O", "ooo"}, // de
	{"OX?", "o.O", "???"}, // cut keima
	{"X.?", "O.?", "   "}, // side chase
	{"OX?", "X.O", "   "}, // side block cut
	{"?X?", "x.O", "   "}, // side block connection
	{"?XO", "x.x", "   "}, // side sagari
	{"?OX", "X.O", "   "}, // side cut
})

// compilePatterns flattens each 3-row pattern into the 8-position
// NW,N,NE,W,E,SW,S,SE order (dropping the always-empty centre) and adds
// its 3 further 90° rotations.
func compilePatterns(src [][3]string) [][8]byte {
	out := make([][8]byte, 0, len(src)*4)
	for _, rows := range src {
		var p [8]byte
		p[0], p[1], p[2] = rows[0][0], rows[0][1], rows[0][2]
		p[3], p[4] = rows[1][0], rows[1][2]
		p[5], p[6], p[7] = rows[2][0], rows[2][1], rows[2][2]

		cur := p
		for i := 0; i < 4; i++ {
			out = append(out, cur)
			cur = rotate90(cur)
		}
	}
	return out
}

// rotate90 rotates an 8-position neighbourhood one step clockwise.
func rotate90(p [8]byte) [8]byte {
	// corners: NW(0)->NE(2)->SE(7)->SW(5)->NW(0)
	// edges:   N(1)->E(4)->S(6)->W(3)->N(1)
	return [8]byte{
		p[5], p[3], p[0], p[6], p[1], p[7], p[4], p[2],
	}
}

func matchesChar(ch, have byte) bool {
	switch ch {
	case '?':
		return true
	case 'X':
		return have == 'X'
	case 'O':
		return have == 'O'
	case 'x':
		return have != 'X'
	case 'o':
		return have != 'O'
	case '.':
		return have == '.'
	case ' ':
		return have == ' '
	}
	return false
}

func matchesPattern(tmpl, have [8]byte) bool {
	for i := range tmpl {
		if !matchesChar(tmpl[i], have[i]) {
			return false
		}
	}
	return true
}

func matchesAnyPattern(have [8]byte) bool {
	for _, t := range pat3Templates {
		if matchesPattern(t, have) {
			return true
		}
	}
	return false
}

// Pat3Sampler supplements UniformSampler with michi.go's capture and 3x3
// pattern heuristics (SPEC_FULL.md's "Supplemented features"): Run prefers
// capturing moves, then pattern-matched moves, before falling back to
// uniform play; Probability biases progressive-bias priors the same way
// whenever it is handed a concrete *goboard.Board.
//
// Per spec §6's Sampler contract, Probability takes no board -- unlike
// Run, which does. Pat3Sampler therefore keeps its own pointer to the
// board it should read for Probability, set at construction and expected
// to be the same instance SearchTree.expand/SyncRoot pass as their board
// argument; see DESIGN.md's note on this contract's scope.
type Pat3Sampler struct {
	*UniformSampler
	probeBoard *goboard.Board
}

// NewPat3Sampler wires probeBoard as the board Probability reads pattern
// context from. probeBoard should be the same *goboard.Board instance the
// caller passes to SearchTree.expand during the playouts this sampler
// serves (typically the Search's scratch board).
func NewPat3Sampler(seed int64, probeBoard *goboard.Board) *Pat3Sampler {
	return &Pat3Sampler{
		UniformSampler: NewUniformSampler(seed),
		probeBoard:     probeBoard,
	}
}

// SetProbeBoard rebinds the board Probability reads pattern context from.
// Used when the board Probability should see (typically a Search's
// scratch board) isn't available until after the Search itself is built.
func (s *Pat3Sampler) SetProbeBoard(b *goboard.Board) {
	s.probeBoard = b
}

// Probability overrides UniformSampler's flat prior with michi.go's
// PROB_HEURISTIC-flavoured weighting: capturing moves and pattern-matched
// moves score higher than plain empty-area play.
func (s *Pat3Sampler) Probability(p mcts.Player, v mcts.Vertex) float64 {
	if s.probeBoard == nil || v == mcts.Pass {
		return 0.5
	}
	if s.probeBoard.IsCapturingMove(p, v) {
		return 0.9
	}
	if matchesAnyPattern(s.probeBoard.Pattern3x3(v, p)) {
		return 0.95
	}
	return 0.3
}

// Run overrides UniformSampler's uniform choice with a capture-first,
// then pattern-first, then uniform-random fallback policy -- michi.go's
// "heuristic suggestion, otherwise uniform" playout shape. Falls back to
// the pure uniform policy entirely if board is not a *goboard.Board.
func (s *Pat3Sampler) Run(board mcts.Board) mcts.Player {
	gb, ok := board.(*goboard.Board)
	if !ok {
		return s.UniformSampler.Run(board)
	}

	const maxRolloutMoves = 1 << 20
	for i := 0; i < maxRolloutMoves; i++ {
		if gb.BothPlayersPassed() {
			break
		}

		p := gb.ActPlayer()
		v := s.pickHeuristicVertex(gb, p)
		m := mcts.Move{Player: p, Vertex: v}
		if !gb.PlayLegal(m) {
			m = mcts.Move{Player: p, Vertex: mcts.Pass}
			gb.PlayLegal(m)
		}
		s.MovePlayed(m)
	}

	return gb.TTWinner()
}

func (s *Pat3Sampler) pickHeuristicVertex(gb *goboard.Board, p mcts.Player) mcts.Vertex {
	vertices := gb.Vertices()
	order := s.rng.Perm(len(vertices))

	bestCapture, bestPattern := mcts.Pass, mcts.Pass
	haveCapture, havePattern := false, false

	for _, idx := range order {
		v := vertices[idx]
		if v == mcts.Pass || !gb.IsPseudoLegal(p, v) {
			continue
		}

		if !haveCapture && gb.IsCapturingMove(p, v) && gb.IsLegal(p, v) {
			if s.rng.Float64() < 0.9 { // PROB_HEURISTIC["capture"]
				bestCapture, haveCapture = v, true
				break
			}
		}
		if !havePattern && matchesAnyPattern(gb.Pattern3x3(v, p)) && gb.IsLegal(p, v) {
			if s.rng.Float64() < 0.95 { // PROB_HEURISTIC["pat3"]
				bestPattern, havePattern = v, true
			}
		}
	}

	if haveCapture {
		return bestCapture
	}
	if havePattern {
		return bestPattern
	}
	return s.pickLegalVertex(gb, p)
}
