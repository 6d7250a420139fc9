package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.MCTSMaxNodes = 1024
	cfg.GenmovePlayoutCount = 8
	cfg.PriorCount = 1
	cfg.MatureUpdateThreshold = 0
	cfg.ExploreRate = 0.2
	cfg.RaveEnabled = true
	cfg.StatWeight = 1
	cfg.RaveWeight = 1
	return cfg
}

func TestBestRaveChildPrefersHigherMean(t *testing.T) {
	cfg := testConfig()
	cfg.RaveEnabled = false
	board := newFakeBoard(4, White)
	tree := NewSearchTree(cfg, func() Board { return newFakeBoard(4, White) })
	sampler := newFakeSampler(0.5, Black)

	root := tree.ActRoot()
	ok := tree.expand(root, White, board, sampler)
	require.True(t, ok)

	parent := tree.Node(root)
	require.NotEmpty(t, parent.Children)

	// Skew one child's mean sharply upward so it must win regardless of
	// the explore/bias terms, which are equal across freshly-expanded
	// siblings.
	// Scores are absolute, Black-positive; White wants a mean near -1.
	favored := parent.Children[0]
	for i := 0; i < 20; i++ {
		tree.Node(favored).Stat.Update(-1)
	}
	parent.Stat.Update(-1)

	best := tree.BestRaveChild(root, White)
	assert.Equal(t, favored, best)
}

func TestExpandGivesEveryChildTheExpandingPlayer(t *testing.T) {
	cfg := testConfig()
	board := newFakeBoard(2, Black)
	tree := NewSearchTree(cfg, func() Board { return newFakeBoard(2, Black) })
	sampler := newFakeSampler(0.5, Black)

	root := tree.ActRoot()
	tree.expand(root, Black, board, sampler)

	parent := tree.Node(root)
	for _, cid := range parent.Children {
		assert.Equal(t, Black, tree.Node(cid).Player)
	}
}

func TestMostExploredChildBreaksTiesByFirstSeen(t *testing.T) {
	cfg := testConfig()
	board := newFakeBoard(3, White)
	tree := NewSearchTree(cfg, func() Board { return newFakeBoard(3, White) })
	sampler := newFakeSampler(0.5, Black)

	root := tree.ActRoot()
	tree.expand(root, White, board, sampler)
	parent := tree.Node(root)
	require.NotEmpty(t, parent.Children)

	first := parent.Children[0]
	best := tree.MostExploredChild(root, White)
	assert.Equal(t, first, best, "with equal priors every child ties on UpdateCount; first-seen should win")
}

func TestMostExploredChildFollowsVisitCount(t *testing.T) {
	cfg := testConfig()
	board := newFakeBoard(3, White)
	tree := NewSearchTree(cfg, func() Board { return newFakeBoard(3, White) })
	sampler := newFakeSampler(0.5, Black)

	root := tree.ActRoot()
	tree.expand(root, White, board, sampler)
	parent := tree.Node(root)
	require.Len(t, parent.Children, 4) // 3 vertices + pass

	heavy := parent.Children[len(parent.Children)-1]
	tree.Node(heavy).Stat.Update(1)
	tree.Node(heavy).Stat.Update(1)
	tree.Node(heavy).Stat.Update(1)

	best := tree.MostExploredChild(root, White)
	assert.Equal(t, heavy, best)
}
