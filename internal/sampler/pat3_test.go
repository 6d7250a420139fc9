package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsumego/mctsgo/internal/goboard"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

func TestMatchesPatternWildcardsAndNegation(t *testing.T) {
	tmpl := [8]byte{'X', 'O', '?', '.', ' ', 'x', 'o', '?'}
	have := [8]byte{'X', 'O', 'X', '.', ' ', 'O', 'X', '.'}
	assert.True(t, matchesPattern(tmpl, have))

	bad := have
	bad[0] = 'O' // tmpl demands an exact 'X' here
	assert.False(t, matchesPattern(tmpl, bad))
}

func TestRotate90IsAFourCycle(t *testing.T) {
	p := [8]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}
	r1 := rotate90(p)
	r2 := rotate90(r1)
	r3 := rotate90(r2)
	r4 := rotate90(r3)
	assert.Equal(t, p, r4, "four 90-degree rotations must return to the original orientation")
	assert.NotEqual(t, p, r1)
}

func TestPat3SamplerProbabilityPrefersCaptureOverPattern(t *testing.T) {
	board := goboard.NewBoard(3, 0)
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.White, Vertex: 4}))
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.Black, Vertex: 1}))
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.Black, Vertex: 3}))
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.Black, Vertex: 5}))

	s := NewPat3Sampler(1, board)
	assert.Equal(t, 0.9, s.Probability(mcts.Black, mcts.Vertex(7)))
}

func TestPat3SamplerProbabilityMatchesPat3Template(t *testing.T) {
	// Reproduces pat3Templates[0]'s un-rotated shape (enclosing hane) around
	// vertex 12 of a 5x5 board: NW/NE black (mover), N white (opponent), W/E
	// empty, the south row free to match the pattern's wildcards.
	board := goboard.NewBoard(5, 0)
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.Black, Vertex: 6}))
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.White, Vertex: 7}))
	require.True(t, board.PlayLegal(mcts.Move{Player: mcts.Black, Vertex: 8}))

	s := NewPat3Sampler(1, board)
	assert.Equal(t, 0.95, s.Probability(mcts.Black, mcts.Vertex(12)))
}

func TestPat3SamplerProbabilityFallsBackToBaselineOnNoPattern(t *testing.T) {
	board := goboard.NewBoard(5, 0)
	s := NewPat3Sampler(1, board)
	assert.Equal(t, 0.3, s.Probability(mcts.Black, mcts.Vertex(12)), "an empty neighbourhood matches no pattern and isn't a capture")
}

func TestPat3SamplerProbabilityDefaultsWithoutProbeBoard(t *testing.T) {
	s := NewPat3Sampler(1, nil)
	assert.Equal(t, 0.5, s.Probability(mcts.Black, mcts.Vertex(12)))

	board := goboard.NewBoard(5, 0)
	s.SetProbeBoard(board)
	assert.Equal(t, 0.5, s.Probability(mcts.Black, mcts.Pass), "pass is never pattern-biased")
}
