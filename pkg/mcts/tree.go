package mcts

// SearchTree is an in-memory, single-rooted tree of Nodes (spec §3, §4.2).
// It owns node lifetime through an arena and exposes root mutation, child
// enumeration, and bulk reset. Backward traversal is the caller's job via
// a playout trace (see Search) -- Nodes carry no parent pointer, matching
// the "arena-owned tree with non-owning traversal" design note (spec §9).
//
// The teacher (IlikeChooros-go-mcts/pkg/mcts) stores children densely,
// inline in the parent ([]NodeBase, owned by value). SearchTree instead
// indexes children by NodeID into a shared arena slice: per spec §9's
// "children container" trade-off, this is the sparse/handle-based variant,
// chosen because SyncRoot and illegal-child pruning need to *remove*
// individual children and hand their storage back to the arena --
// something a value-owned dense slice can't do without reshuffling every
// sibling.
type SearchTree struct {
	arena *arena
	cfg   *Config

	newBoard func() Board // factory for a fresh, empty-position scratch board

	genesisRoot NodeID // the true root: player=opposite of first-to-move, v=Any
	activeRoot  NodeID // follows the live game, per sync_root

	replay       Board // scratch board used only to replay history during sync_root
	syncedMoves  int   // len(board.Moves()) already folded into replay/tree
	firstToMove  Player
}

// NewSearchTree creates an empty tree. newBoard must return a board reset
// to the empty starting position every time it is called.
func NewSearchTree(cfg *Config, newBoard func() Board) *SearchTree {
	t := &SearchTree{
		arena:    newArena(cfg.MCTSMaxNodes),
		cfg:      cfg,
		newBoard: newBoard,
	}
	t.Reset(Black)
	return t
}

// Reset empties the arena and creates a fresh root, for a game where
// firstToMove moves first (spec §4.2).
func (t *SearchTree) Reset(firstToMove Player) {
	t.arena.reset()
	t.firstToMove = firstToMove
	rootPlayer := firstToMove.Other()
	id, ok := t.arena.alloc(rootPlayer, Any, 0, t.cfg.PriorCount, rootPlayer.SubjectiveScore(t.cfg.PriorMean))
	if !ok {
		panic("mcts: arena too small to hold even the root node")
	}
	t.genesisRoot = id
	t.activeRoot = id
	t.replay = t.newBoard()
	t.syncedMoves = 0
}

// ActRoot returns the active root's handle.
func (t *SearchTree) ActRoot() NodeID {
	return t.activeRoot
}

// Node dereferences a handle. Panics on NoNode, matching spec §7's
// "selecting a child from a node with no children" class of structural
// invariant violation: callers must never hold an invalid handle past the
// point where it could have been freed.
func (t *SearchTree) Node(id NodeID) *Node {
	if id == NoNode {
		panic("mcts: dereferenced NoNode")
	}
	return t.arena.get(id)
}

// InUse reports the number of allocated nodes (testable property: after
// Reset, InUse()==1).
func (t *SearchTree) InUse() int {
	return t.arena.InUse()
}

// FreeSubtree releases id and every descendant back to the arena.
func (t *SearchTree) FreeSubtree(id NodeID) {
	t.arena.freeSubtree(id)
}

// expand grows node id with one child per vertex legal for pl in the
// position the caller's board represents (spec §4.3's expansion rule). It
// is idempotent: a node already flagged hasAllLegalChildren[pl] is left
// untouched. It is also all-or-nothing: if the arena cannot hold every
// legal child, no children are added and the flag is left false, so the
// §8 invariant ("if the flag is true, the child set equals the legal set")
// never sees a partial expansion.
func (t *SearchTree) expand(id NodeID, pl Player, board Board, sampler Sampler) bool {
	node := t.arena.get(id)
	if node.hasAllLegalChildren[pl] {
		return true
	}

	var legal []Vertex
	for _, v := range board.Vertices() {
		if board.IsLegal(pl, v) {
			legal = append(legal, v)
		}
	}

	if t.arena.InUse()+len(legal) > t.cfg.MCTSMaxNodes {
		return false
	}

	priorMean := pl.SubjectiveScore(t.cfg.PriorMean)
	children := make([]NodeID, 0, len(legal))
	for _, v := range legal {
		bias := sampler.Probability(pl, v)
		childID, ok := t.arena.alloc(pl, v, bias, t.cfg.PriorCount, priorMean)
		if !ok {
			for _, c := range children {
				t.arena.free(c)
			}
			return false
		}
		children = append(children, childID)
	}

	node.Children = append(node.Children, children...)
	node.hasAllLegalChildren[pl] = true
	return true
}

// findChild returns the existing child of node for move m, or NoNode.
func findChild(node *Node, arena *arena, m Move) NodeID {
	for _, cid := range node.Children {
		c := arena.get(cid)
		if c.Player == m.Player && c.V == m.Vertex {
			return cid
		}
	}
	return NoNode
}

// SyncRoot advances the active root along board's move history,
// expanding along the way so the path exists, then prunes children
// illegal-by-superko at the new root (spec §4.2). It is idempotent:
// calling it twice in a row with the same board history is a no-op the
// second time.
func (t *SearchTree) SyncRoot(board Board, sampler Sampler) {
	moves := board.Moves()

	if len(moves) < t.syncedMoves {
		// The live game is shorter than what we've already replayed: this
		// is a different game (e.g. clear_board). Start over.
		t.Reset(firstMoverOf(moves, t.firstToMove))
	}

	cur := t.genesisRoot
	// Walk the portion of history already folded in, to find where we
	// left off -- cheap, since we only need the node handles, not to
	// replay legality checks again.
	for i := 0; i < t.syncedMoves; i++ {
		node := t.arena.get(cur)
		if next := findChild(node, t.arena, moves[i]); next != NoNode {
			cur = next
		}
	}

	for i := t.syncedMoves; i < len(moves); i++ {
		m := moves[i]
		node := t.arena.get(cur)
		if !node.hasAllLegalChildren[m.Player] {
			t.expand(cur, m.Player, t.replay, sampler)
			node = t.arena.get(cur)
		}

		next := findChild(node, t.arena, m)
		if next == NoNode {
			// Wasn't legal at expansion time (or expansion was skipped for
			// lack of arena room) but it was actually played: add it so the
			// path exists, per spec §4.2.
			bias := sampler.Probability(m.Player, m.Vertex)
			childID, ok := t.arena.alloc(m.Player, m.Vertex, bias, t.cfg.PriorCount, m.Player.SubjectiveScore(t.cfg.PriorMean))
			if ok {
				node.Children = append(node.Children, childID)
				next = childID
			} else {
				next = cur // arena exhausted; degrade by not advancing the path
			}
		}

		t.replay.PlayLegal(m)
		sampler.MovePlayed(m)
		cur = next
	}

	t.syncedMoves = len(moves)
	t.activeRoot = cur
	t.pruneIllegalAt(cur, board)
}

// pruneIllegalAt removes every child of id that board no longer considers
// really legal (spec §4.3's superko pruning at sync_root).
func (t *SearchTree) pruneIllegalAt(id NodeID, board Board) {
	node := t.arena.get(id)
	kept := node.Children[:0]
	for _, cid := range node.Children {
		c := t.arena.get(cid)
		if board.IsReallyLegal(Move{Player: c.Player, Vertex: c.V}) {
			kept = append(kept, cid)
		} else {
			t.arena.freeSubtree(cid)
		}
	}
	node.Children = kept
}

// firstMoverOf recovers who moved first from a (possibly empty) move
// history, falling back to fallback when the history is empty.
func firstMoverOf(moves []Move, fallback Player) Player {
	if len(moves) == 0 {
		return fallback
	}
	return moves[0].Player
}
