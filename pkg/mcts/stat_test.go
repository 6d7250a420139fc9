package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticPrior(t *testing.T) {
	s := NewStatistic(10, 0.5)
	assert.Equal(t, 10.0, s.UpdateCount())
	assert.Equal(t, 0.5, s.Mean())
}

func TestStatisticUpdate(t *testing.T) {
	s := NewStatistic(2, 0)
	s.Update(1)
	s.Update(1)
	assert.Equal(t, 4.0, s.UpdateCount())
	assert.Equal(t, 0.5, s.Mean())
}

func TestStatisticReset(t *testing.T) {
	s := NewStatistic(1, 1)
	s.Update(-1)
	s.Update(-1)
	s.Reset(5, -1)
	assert.Equal(t, 5.0, s.UpdateCount())
	assert.Equal(t, -1.0, s.Mean())
}

func TestMixWeightsTowardLargerWeight(t *testing.T) {
	a := NewStatistic(1, 1)
	b := NewStatistic(1, -1)

	assert.InDelta(t, 1.0, Mix(&a, 1000, &b, 1), 1e-9)
	assert.InDelta(t, -1.0, Mix(&a, 1, &b, 1000), 1e-9)
	assert.InDelta(t, 0.0, Mix(&a, 1, &b, 1), 1e-9)
}

func TestStatisticUCBIncreasesWithExploreCoeff(t *testing.T) {
	s := NewStatistic(4, 0)
	low := s.UCB(1)
	high := s.UCB(10)
	assert.Greater(t, high, low)
}
