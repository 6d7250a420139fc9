package mcts

import (
	"fmt"
	"io"
	"sort"
)

// ShowTree walks the active root and writes one line per node, indented by
// depth, to w (spec §4.4). Children are visited in decreasing UpdateCount,
// truncated to maxChildren and skipped below minVisits; maxChildren shrinks
// by one per depth level down to a floor of 1. It is read-only.
//
// internal/gtp renders a coloured variant of this for MCTS.show; this
// version stays plain-text so it is also useful from tests and cmd/perft-
// adjacent tooling.
func (t *SearchTree) ShowTree(w io.Writer, minVisits int, maxChildren int) {
	t.showNode(w, t.activeRoot, 0, minVisits, maxChildren)
}

func (t *SearchTree) showNode(w io.Writer, id NodeID, depth, minVisits, maxChildren int) {
	node := t.arena.get(id)
	mixed := node.Stat.Mean()
	if t.cfg.RaveEnabled {
		mixed = Mix(&node.Stat, t.cfg.StatWeight, &node.RaveStat, t.cfg.RaveWeight)
	}

	fmt.Fprintf(w, "%*s%s %-5s n=%-8.0f q=%-+7.3f rave_n=%-8.0f rave_q=%-+7.3f bias=%-5.3f mixed=%-+7.3f\n",
		depth*2, "",
		node.Player, node.V,
		node.Stat.UpdateCount(), node.Stat.Mean(),
		node.RaveStat.UpdateCount(), node.RaveStat.Mean(),
		node.Bias, mixed,
	)

	children := make([]NodeID, len(node.Children))
	copy(children, node.Children)
	sort.SliceStable(children, func(i, j int) bool {
		return t.arena.get(children[i]).Stat.UpdateCount() > t.arena.get(children[j]).Stat.UpdateCount()
	})

	budget := maxChildren - 1
	if budget < 1 {
		budget = 1
	}

	shown := 0
	for _, cid := range children {
		if shown >= maxChildren {
			break
		}
		c := t.arena.get(cid)
		if int(c.Stat.UpdateCount()) < minVisits {
			continue
		}
		t.showNode(w, cid, depth+1, minVisits, budget)
		shown++
	}
}
