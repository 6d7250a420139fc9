package mcts

import "math"

// Statistic is a commutative accumulator of scalar outcomes with a
// Bayesian-style prior: prior_count samples of value prior_mean are folded
// in as if they had actually been observed. It is the leaf dependency of
// the core (spec §4.1).
//
// The teacher's NodeStats (pkg/mcts/stats.go in the original library) kept
// sum/count behind sync/atomic for tree-parallel search; per the
// single-threaded cooperative model (spec §5) that synchronization is
// unnecessary here, so Statistic is a plain value type.
type Statistic struct {
	sum   float64
	count float64
}

// NewStatistic returns a Statistic reset with the given prior.
func NewStatistic(priorCount, priorMean float64) Statistic {
	var s Statistic
	s.Reset(priorCount, priorMean)
	return s
}

// Reset forces count = priorCount and sum = priorCount * priorMeanSubjective,
// discarding all prior updates. priorMeanSubjective must already be framed
// in the convention the caller wants mean() to read in (see Node's doc on
// subjective framing of priors).
func (s *Statistic) Reset(priorCount, priorMeanSubjective float64) {
	s.count = priorCount
	s.sum = priorCount * priorMeanSubjective
}

// Update folds a single observed outcome x (absolute, Black-positive
// convention) into the accumulator.
func (s *Statistic) Update(x float64) {
	s.count++
	s.sum += x
}

// Mean returns sum/count. Total because count >= prior_count > 0 by
// construction (Statistic invariant, spec §3).
func (s *Statistic) Mean() float64 {
	return s.sum / s.count
}

// UpdateCount returns the number of updates folded in, including the prior.
func (s *Statistic) UpdateCount() float64 {
	return s.count
}

// UCB combines exploitation (Mean) with an exploration bonus. Callers pass
// exploreCoeff = explore_rate * ln(parent.UpdateCount()).
func (s *Statistic) UCB(exploreCoeff float64) float64 {
	return s.Mean() + math.Sqrt(exploreCoeff/s.count)
}

// Mix returns the precision-weighted blend of two statistics' means:
// (wa*mean(a) + wb*mean(b)) / (wa+wb). It is read-only and does not need to
// be storable; it is used to compute RAVE-mixed urgencies (spec §4.3).
func Mix(a *Statistic, wa float64, b *Statistic, wb float64) float64 {
	return (wa*a.Mean() + wb*b.Mean()) / (wa + wb)
}
