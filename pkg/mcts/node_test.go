package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocGrowsAndTracksInUse(t *testing.T) {
	a := newArena(16)
	id1, ok := a.alloc(Black, Vertex(0), 0.5, 1, 0)
	require.True(t, ok)
	id2, ok := a.alloc(White, Vertex(1), 0.5, 1, 0)
	require.True(t, ok)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, a.InUse())
	assert.Equal(t, Black, a.get(id1).Player)
	assert.Equal(t, White, a.get(id2).Player)
}

func TestArenaAllocFailsAtCapacity(t *testing.T) {
	a := newArena(1)
	_, ok := a.alloc(Black, Vertex(0), 0, 1, 0)
	require.True(t, ok)

	_, ok = a.alloc(White, Vertex(1), 0, 1, 0)
	assert.False(t, ok, "arena at capacity must refuse further allocation")
}

func TestArenaFreeRecyclesSlot(t *testing.T) {
	a := newArena(1)
	id, ok := a.alloc(Black, Vertex(0), 0, 1, 0)
	require.True(t, ok)

	a.free(id)
	assert.Equal(t, 0, a.InUse())

	id2, ok := a.alloc(White, Vertex(2), 0, 1, 0)
	require.True(t, ok, "freeing the only slot must make room for a new allocation")
	assert.Equal(t, id, id2, "free slots are recycled by index")
}

func TestArenaFreeSubtreeReleasesWholeBranch(t *testing.T) {
	a := newArena(16)
	root, _ := a.alloc(Black, Any, 0, 1, 0)
	child1, _ := a.alloc(White, Vertex(0), 0, 1, 0)
	child2, _ := a.alloc(White, Vertex(1), 0, 1, 0)
	grandchild, _ := a.alloc(Black, Vertex(2), 0, 1, 0)

	a.get(child1).Children = []NodeID{grandchild}
	a.get(root).Children = []NodeID{child1, child2}

	assert.Equal(t, 4, a.InUse())
	a.freeSubtree(root)
	assert.Equal(t, 0, a.InUse())
}

func TestArenaFreeSubtreeNoNodeIsNoop(t *testing.T) {
	a := newArena(4)
	a.freeSubtree(NoNode)
	assert.Equal(t, 0, a.InUse())
}

func TestArenaNodePointersSurviveFurtherAllocation(t *testing.T) {
	// Regression test: arena.nodes holds *Node, not Node, so growing the
	// backing slice must never invalidate a pointer obtained earlier.
	a := newArena(8192)
	first, ok := a.alloc(Black, Vertex(0), 0, 1, 0)
	require.True(t, ok)
	held := a.get(first)
	held.Stat.Update(1)

	for i := 0; i < 4100; i++ {
		a.alloc(White, Vertex(i+1), 0, 1, 0)
	}

	assert.Equal(t, 2.0, held.Stat.UpdateCount(), "held *Node must still reflect the original allocation's state")
	assert.Same(t, held, a.get(first))
}

func TestArenaResetEmptiesPool(t *testing.T) {
	a := newArena(16)
	a.alloc(Black, Vertex(0), 0, 1, 0)
	a.alloc(White, Vertex(1), 0, 1, 0)
	a.reset()
	assert.Equal(t, 0, a.InUse())

	id, ok := a.alloc(Black, Any, 0, 1, 0)
	require.True(t, ok)
	assert.Equal(t, NodeID(0), id)
}
