package mcts

// NodeID is a handle into a SearchTree's arena. NoNode (-1) is never a
// valid handle; the zero value names the arena's slot 0, which always
// holds the tree's genesis root and is never freed.
type NodeID int32

// NoNode is the invalid/absent NodeID.
const NoNode NodeID = -1

// Node is one vertex of the search tree (spec §3). Player is the player
// who just moved to reach this node -- i.e. the owner of the move at this
// node, not the side to move here (that is Player.Other()). V is the
// vertex played, or Any at the tree's genesis root.
//
// Priors on Stat and RaveStat must be initialised (by the caller, at
// creation) so their means read as Player.SubjectiveScore(priorMean): the
// prior is the only place subjective framing is applied, per spec §4.1's
// design note -- scores otherwise flow through the tree in the absolute,
// Black-positive convention.
type Node struct {
	Player   Player
	V        Vertex
	Stat     Statistic
	RaveStat Statistic
	Bias     float64 // rollout-policy probability of V at creation time; immutable after that.

	// hasAllLegalChildren[pl] is true once Node has been expanded for pl:
	// Children then contains one entry per vertex that was legal for pl at
	// expansion time (possibly minus vertices later pruned for superko).
	hasAllLegalChildren [2]bool

	Children []NodeID
}

func (n *Node) HasAllLegalChildren(pl Player) bool {
	return n.hasAllLegalChildren[pl]
}

// arena owns the storage for every Node in a SearchTree. Per spec §4.2/§9,
// nodes are allocated from a pool and addressed by handle (NodeID) rather
// than by pointer, so backward traversal never needs a parent pointer --
// the playout's trace (a stack of NodeIDs) is what lets Search walk back up.
//
// maxNodes bounds arena growth (spec §5's mcts_max_nodes): once reached,
// alloc returns (NoNode, false) and callers must degrade to a no-op
// expansion rather than erroring.
type arena struct {
	// nodes[i] holds the Node for NodeID(i). Each entry is its own heap
	// allocation, reused in place across free/alloc cycles: growing the
	// outer slice (on append) never invalidates a *Node obtained earlier
	// from get(), which matters because Search holds onto *Node values
	// across calls that may themselves allocate (e.g. expand during
	// descent).
	nodes    []*Node
	freeList []NodeID
	maxNodes int
	inUse    int
}

func newArena(maxNodes int) *arena {
	return &arena{
		nodes:    make([]*Node, 0, min(maxNodes, 4096)),
		maxNodes: maxNodes,
	}
}

// reset empties the arena entirely; the caller is responsible for
// allocating a fresh root afterwards.
func (a *arena) reset() {
	a.nodes = a.nodes[:0]
	a.freeList = a.freeList[:0]
	a.inUse = 0
}

func (a *arena) get(id NodeID) *Node {
	return a.nodes[id]
}

// alloc reserves a new Node slot and returns its handle. ok is false when
// the arena is at capacity (mcts_max_nodes); the node is left unallocated
// and the caller must treat expansion as a no-op (spec §5, §7).
func (a *arena) alloc(player Player, v Vertex, bias float64, priorCount, priorMean float64) (NodeID, bool) {
	if a.inUse >= a.maxNodes {
		return NoNode, false
	}

	var id NodeID
	var node *Node
	if n := len(a.freeList); n > 0 {
		id = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		node = a.nodes[id]
	} else {
		if len(a.nodes) >= a.maxNodes {
			return NoNode, false
		}
		node = &Node{}
		a.nodes = append(a.nodes, node)
		id = NodeID(len(a.nodes) - 1)
	}

	a.inUse++
	*node = Node{
		Player: player,
		V:      v,
		Bias:   bias,
	}
	node.Stat.Reset(priorCount, priorMean)
	node.RaveStat.Reset(priorCount, priorMean)
	return id, true
}

// free returns a single slot to the arena without touching its children.
// Callers that want to release a whole branch should use freeSubtree.
func (a *arena) free(id NodeID) {
	*a.nodes[id] = Node{}
	a.freeList = append(a.freeList, id)
	a.inUse--
}

// freeSubtree recursively releases id and every one of its descendants
// back to the arena (spec §4.2's free_subtree).
func (a *arena) freeSubtree(id NodeID) {
	if id == NoNode {
		return
	}
	node := a.get(id)
	for _, child := range node.Children {
		a.freeSubtree(child)
	}
	a.free(id)
}

// InUse reports how many nodes are currently allocated.
func (a *arena) InUse() int {
	return a.inUse
}
