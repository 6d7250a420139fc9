// Package sampler implements the external random-playout policy
// (mcts.Sampler, spec.md §6) this module's core treats as an opaque
// collaborator. UniformSampler is the baseline uniformly-random rollout;
// Pat3Sampler (pat3.go) supplements it with michi.go's 3x3 pattern and
// capture heuristics, per SPEC_FULL.md's "Supplemented features".
package sampler

import (
	"math/rand"

	"github.com/bszcz/mt19937_64"

	"github.com/tsumego/mctsgo/pkg/mcts"
)

// UniformSampler finishes a game by playing uniformly-random legal moves
// (falling back to Pass when none remain) until both players pass. It is
// the dependency leaf every richer sampler in this package builds on.
type UniformSampler struct {
	rng *rand.Rand

	lastVertex  mcts.Vertex
	last2Vertex mcts.Vertex
}

// NewUniformSampler seeds its RNG from the bszcz/mt19937_64 Mersenne
// Twister, matching the quality of randomness michi.go's Python-derived
// reference policy assumes (michi.py uses Python's own MT19937 `random`
// module; mt19937_64 is this module's Go-ecosystem equivalent).
func NewUniformSampler(seed int64) *UniformSampler {
	src := mt19937_64.New()
	src.Seed(seed)
	return &UniformSampler{
		rng:         rand.New(src),
		lastVertex:  mcts.Any,
		last2Vertex: mcts.Any,
	}
}

// NewPlayout implements mcts.Sampler.
func (u *UniformSampler) NewPlayout() {
	u.lastVertex = mcts.Any
	u.last2Vertex = mcts.Any
}

// MovePlayed implements mcts.Sampler.
func (u *UniformSampler) MovePlayed(m mcts.Move) {
	u.last2Vertex = u.lastVertex
	u.lastVertex = m.Vertex
}

// Probability implements mcts.Sampler: a flat prior, since UniformSampler
// has no heuristic to weight vertices by.
func (u *UniformSampler) Probability(p mcts.Player, v mcts.Vertex) float64 {
	return 0.5
}

// Run implements mcts.Sampler, finishing board with uniformly-random legal
// play. It is deliberately written against only the abstract mcts.Board
// contract -- no type assertion to a concrete board -- so it remains a
// correct (if unbiased) fallback for any Board implementation, including
// test doubles.
func (u *UniformSampler) Run(board mcts.Board) mcts.Player {
	const maxRolloutMoves = 1 << 20 // structural backstop against a buggy Board that never terminates

	for i := 0; i < maxRolloutMoves; i++ {
		if board.BothPlayersPassed() {
			break
		}

		p := board.ActPlayer()
		v := u.pickLegalVertex(board, p)
		m := mcts.Move{Player: p, Vertex: v}
		if !board.PlayLegal(m) {
			// A vertex this sampler believed legal was refused; degrade to
			// Pass rather than looping (spec §7 class: external-board
			// disagreement, recovered locally).
			m = mcts.Move{Player: p, Vertex: mcts.Pass}
			board.PlayLegal(m)
		}
		u.MovePlayed(m)
	}

	return board.TTWinner()
}

// pickLegalVertex returns a uniformly-chosen legal vertex for p on board,
// or Pass if none of the shuffled candidates are legal.
func (u *UniformSampler) pickLegalVertex(board mcts.Board, p mcts.Player) mcts.Vertex {
	vertices := board.Vertices()
	order := u.rng.Perm(len(vertices))
	for _, idx := range order {
		v := vertices[idx]
		if v == mcts.Pass {
			continue
		}
		if board.IsPseudoLegal(p, v) && board.IsLegal(p, v) {
			return v
		}
	}
	return mcts.Pass
}
