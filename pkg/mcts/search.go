package mcts

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Search drives playouts against a SearchTree (spec §4.3). It owns the
// real Board (read-only except for the single PlayLegal call GenMove makes
// at the end), a scratch Board reloaded at the start of every playout, and
// the Sampler used both as rollout policy and as the bias source at
// expansion time.
type Search struct {
	tree    *SearchTree
	cfg     *Config
	board   Board
	sampler Sampler
	scratch Board

	trace       []NodeID
	moveHistory []Move

	listener *SearchListener
	log      zerolog.Logger
}

// NewSearch wires a tree, the real board, and a sampler together. newBoard
// is the same scratch-board factory passed to NewSearchTree.
func NewSearch(cfg *Config, board Board, sampler Sampler, newBoard func() Board) *Search {
	return &Search{
		tree:    NewSearchTree(cfg, newBoard),
		cfg:     cfg,
		board:   board,
		sampler: sampler,
		scratch: newBoard(),
		log:     log.With().Str("component", "mcts.search").Logger(),
	}
}

// Tree exposes the underlying SearchTree, chiefly for MCTS.show (spec §4.4).
func (s *Search) Tree() *SearchTree {
	return s.tree
}

// Scratch exposes the per-playout scratch board, so a Sampler
// implementation that needs board context for Probability (spec §6) can
// be wired to read the exact board instance Playout reloads and plays on.
func (s *Search) Scratch() Board {
	return s.scratch
}

func readyToExpand(node *Node, pl Player, cfg *Config) bool {
	if node.hasAllLegalChildren[pl] {
		return false
	}
	return node.Stat.UpdateCount() > cfg.PriorCount+cfg.MatureUpdateThreshold
}

// Playout runs one descend/expand/rollout/propagate cycle (spec §4.3's
// playout protocol). It returns false when the playout was aborted because
// the external board disagreed with the tree about a move's legality --
// in that case no statistic was touched.
func (s *Search) Playout() bool {
	s.scratch.CopyFrom(s.board)
	s.sampler.NewPlayout()

	s.trace = s.trace[:0]
	root := s.tree.ActRoot()
	s.trace = append(s.trace, root)

	rootNode := s.tree.Node(root)
	s.moveHistory = s.moveHistory[:0]
	s.moveHistory = append(s.moveHistory, Move{Player: rootNode.Player, Vertex: rootNode.V})

	treePhase := true
	treeMoveCount := 0
	cur := root

	for treePhase {
		if treeMoveCount >= s.cfg.TreeMaxMoves {
			// spec §8: tree_max_moves == 0 means every playout is
			// rollout-only from the active root (matches Mcts::ChooseMove's
			// cap check at the top of the step, before selection).
			break
		}

		node := s.tree.Node(cur)
		side := s.scratch.ActPlayer()

		if !node.HasAllLegalChildren(side) {
			if readyToExpand(node, side, s.cfg) {
				s.tree.expand(cur, side, s.scratch, s.sampler)
				node = s.tree.Node(cur)
			}
			if !node.HasAllLegalChildren(side) {
				// Not expanded and not ready: stop tree phase, fall through
				// to rollout (spec §4.3 step 2b).
				break
			}
		}

		childID := s.tree.BestRaveChild(cur, side)
		s.trace = append(s.trace, childID)
		child := s.tree.Node(childID)
		m := Move{Player: child.Player, Vertex: child.V}

		if !s.scratch.IsPseudoLegal(m.Player, m.Vertex) || !s.scratch.PlayLegal(m) {
			// External-board disagreement (spec §7): prune and abort, no
			// propagation.
			s.log.Debug().Stringer("vertex", m.Vertex).Msg("pruning child rejected by scratch board")
			s.pruneChild(cur, childID)
			return false
		}

		s.sampler.MovePlayed(m)
		s.moveHistory = append(s.moveHistory, m)
		treeMoveCount++
		cur = childID

		if s.scratch.BothPlayersPassed() {
			winner := s.scratch.TTWinner()
			s.propagate(winner)
			return true
		}
	}

	winner := s.sampler.Run(s.scratch)
	s.propagate(winner)
	return true
}

// pruneChild removes childID from parentID's children and frees its
// subtree (spec §4.3's illegal-child pruning during descent).
func (s *Search) pruneChild(parentID, childID NodeID) {
	parent := s.tree.arena.get(parentID)
	for i, c := range parent.Children {
		if c == childID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	s.tree.arena.freeSubtree(childID)
}

// propagate folds the absolute, Black-positive score for winner into every
// node in the trace, plus the RAVE update (spec §4.3's UpdateTrace).
func (s *Search) propagate(winner Player) {
	score := Result(1)
	if winner == White {
		score = -1
	}

	for _, id := range s.trace {
		s.tree.arena.get(id).Stat.Update(score)
	}

	if s.cfg.RaveEnabled {
		s.updateRave(score)
	}
}

// updateRave implements spec §4.3's RAVE update: for each trace position i,
// scan the move-history tail from i+1 up to the rave-update-fraction
// horizon and credit trace[i]'s matching children.
//
// The masking follows libego's UpdateTraceRave move for move rather than
// the simpler "first occurrence of a vertex wins" reading of spec §4.3:
// doUpdate[m] is reassigned on every occurrence of m in the scanned tail,
// to whatever settable[m] held going in, and every occurrence of a vertex
// (by either player) clears settable for both that vertex's moves. A
// vertex replayed later in the tail by the same player therefore loses its
// credit; a vertex later touched by the other player keeps the first
// mover's credit, while the other player's move at it is never credited.
// See DESIGN.md's Open Question note on scenario 5
// vs. a repeated same-player vertex for why this differs from the literal
// spec wording.
func (s *Search) updateRave(score Result) {
	horizon := int(float64(len(s.moveHistory)) * s.cfg.RaveUpdateFraction)
	if horizon > len(s.moveHistory) {
		horizon = len(s.moveHistory)
	}

	for i, id := range s.trace {
		node := s.tree.arena.get(id)
		if len(node.Children) == 0 {
			continue
		}

		doUpdate := make(map[Move]bool)
		settable := make(map[Move]bool)
		defaultSettable := func(m Move) bool {
			if v, ok := settable[m]; ok {
				return v
			}
			return m.Vertex != Pass
		}

		for j := i + 1; j < horizon; j++ {
			m := s.moveHistory[j]
			doUpdate[m] = defaultSettable(m)
			settable[m] = false
			settable[Move{Player: m.Player.Other(), Vertex: m.Vertex}] = false
		}

		for _, cid := range node.Children {
			c := s.tree.arena.get(cid)
			if doUpdate[Move{Player: c.Player, Vertex: c.V}] {
				c.RaveStat.Update(score)
			}
		}
	}
}

// GenMove runs genmove_playout_count playouts from the synced active root
// and returns either the chosen vertex (having committed it to the real
// board) or Resign (spec §4.3's genmove).
func (s *Search) GenMove(player Player) Vertex {
	s.tree.SyncRoot(s.board, s.sampler)
	s.tree.expand(s.tree.ActRoot(), player, s.board, s.sampler)

	fastplayAt := -1
	if s.cfg.FastplayFraction > 0 {
		fastplayAt = int(float64(s.cfg.GenmovePlayoutCount) * s.cfg.FastplayFraction)
	}

	playouts := 0
	for i := 0; i < s.cfg.GenmovePlayoutCount; i++ {
		s.Playout()
		playouts++
		s.invokeCycle(playouts, player)

		if fastplayAt > 0 && i+1 == fastplayAt {
			if best := s.tree.MostExploredChild(s.tree.ActRoot(), player); best != NoNode {
				mean := player.SubjectiveScore(s.tree.Node(best).Stat.Mean())
				if mean > s.cfg.FastplayThreshold {
					s.log.Debug().Int("playouts", i+1).Float64("mean", mean).Msg("fastplay early exit")
					break
				}
			}
		}
	}
	s.invokeStop(playouts, player)

	best := s.tree.MostExploredChild(s.tree.ActRoot(), player)
	if best == NoNode {
		// Structural invariant violation (spec §7): Pass is always legal, so
		// a root expanded for player always has at least one child.
		panic("mcts: genmove found no root child after expansion")
	}

	bestNode := s.tree.Node(best)
	if player.SubjectiveScore(bestNode.Stat.Mean()) < s.cfg.ResignMean {
		return Resign
	}

	m := Move{Player: bestNode.Player, Vertex: bestNode.V}
	s.board.PlayLegal(m)
	return m.Vertex
}
