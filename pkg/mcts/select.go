package mcts

import "math"

// BestRaveChild picks, among parent's children owned by pl, the one
// maximising urgency (spec §4.3):
//
//	urgency(child) =
//	    pl.SubjectiveScore(Mix(stat, statWeight, rave, raveWeight).Mean())
//	  + exploreRate * sqrt(ln(parent.UpdateCount()) / child.UpdateCount())
//	  + progressiveBias * child.Bias / child.UpdateCount()
//
// When cfg.RaveEnabled is false the first term degenerates to
// pl.SubjectiveScore(child.Stat.Mean()). Ties are broken by first-seen
// order; there is always at least one child of a fully-expanded node
// (Pass is always legal), so selection is total over such nodes.
func (t *SearchTree) BestRaveChild(parentID NodeID, pl Player) NodeID {
	parent := t.arena.get(parentID)
	lnParent := math.Log(parent.Stat.UpdateCount())

	best := NoNode
	bestUrgency := math.Inf(-1)

	for _, cid := range parent.Children {
		c := t.arena.get(cid)
		if c.Player != pl {
			continue
		}

		urgency := t.urgency(c, pl, lnParent)
		if urgency > bestUrgency {
			bestUrgency = urgency
			best = cid
		}
	}

	return best
}

func (t *SearchTree) urgency(c *Node, pl Player, lnParentCount float64) float64 {
	var valueMean float64
	if t.cfg.RaveEnabled {
		valueMean = Mix(&c.Stat, t.cfg.StatWeight, &c.RaveStat, t.cfg.RaveWeight)
	} else {
		valueMean = c.Stat.Mean()
	}

	n := c.Stat.UpdateCount()
	urgency := pl.SubjectiveScore(valueMean)
	urgency += t.cfg.ExploreRate * math.Sqrt(lnParentCount/n)
	urgency += t.cfg.ProgressiveBias * c.Bias / n
	return urgency
}

// MostExploredChild returns the child of parent owned by pl with the
// largest UpdateCount, ties broken by first-seen order (spec §4.3's
// most_explored vs best-mean). Never NoNode for a node that has at least
// one child owned by pl (Pass is always legal, so a fully-expanded node
// always qualifies).
func (t *SearchTree) MostExploredChild(parentID NodeID, pl Player) NodeID {
	parent := t.arena.get(parentID)

	best := NoNode
	bestCount := math.Inf(-1)

	for _, cid := range parent.Children {
		c := t.arena.get(cid)
		if c.Player != pl {
			continue
		}
		if n := c.Stat.UpdateCount(); n > bestCount {
			bestCount = n
			best = cid
		}
	}

	return best
}
