// Package bench adapts the teacher's versus-arena self-play harness
// (pkg/bench/versus_arena.go in the original go-mcts library) into a
// single-threaded comparison tool for two mcts.Config variants playing
// each other on an internal/goboard board -- e.g. RAVE enabled vs
// disabled, or two explore-rate settings.
//
// The teacher's version is a goroutine-pool arena with per-worker
// atomics (sync/atomic counters, a context.Context cancellation, cloned
// trees per thread). Per spec §5's single-threaded cooperative model that
// concurrency has no home here: a Arena plays its games sequentially on
// the calling goroutine, which also sidesteps the teacher's need to clone
// each MCTS instance per worker.
package bench

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"github.com/tsumego/mctsgo/internal/goboard"
	"github.com/tsumego/mctsgo/internal/sampler"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

// MatchResult mirrors the teacher's VersusMatchResult, renamed to this
// package's domain.
type MatchResult int

const (
	FirstWin  MatchResult = 1
	SecondWin MatchResult = -1
	Draw      MatchResult = 0
)

// Stats accumulates outcomes across a run, matching the teacher's
// VersusArenaStats minus the atomics -- single actor, no races.
type Stats struct {
	FirstWins, SecondWins int
	FirstName, SecondName string
	WinRateHistory        []float64 // first player's cumulative win rate, one entry per finished game
}

func (s *Stats) Total() int { return s.FirstWins + s.SecondWins }

func (s *Stats) record(result MatchResult) {
	switch result {
	case FirstWin:
		s.FirstWins++
	case SecondWin:
		s.SecondWins++
	}
	s.WinRateHistory = append(s.WinRateHistory, float64(s.FirstWins)/float64(s.Total()))
}

// Arena plays nGames games between two Config variants on a fresh board
// of the given size each game, alternating who moves first (the
// teacher's "switched" bookkeeping in versus_arena.go's worker loop).
type Arena struct {
	size   int
	komi   float64
	seed   int64
	cfgA   *mcts.Config
	cfgB   *mcts.Config
	nameA  string
	nameB  string
}

// NewArena builds a comparison between cfgA and cfgB.
func NewArena(size int, komi float64, nameA string, cfgA *mcts.Config, nameB string, cfgB *mcts.Config, seed int64) *Arena {
	return &Arena{size: size, komi: komi, seed: seed, cfgA: cfgA, cfgB: cfgB, nameA: nameA, nameB: nameB}
}

// Run plays nGames games and returns the accumulated Stats.
func (a *Arena) Run(nGames int) *Stats {
	stats := &Stats{FirstName: a.nameA, SecondName: a.nameB}

	for i := 0; i < nGames; i++ {
		aIsFirst := i%2 == 0
		result := a.playGame(aIsFirst)

		switch {
		case result == Draw:
			// Chinese-rules Go has no draws for odd-komi boards; kept for
			// parity with the teacher's three-way result type.
		case (result == FirstWin) == aIsFirst:
			stats.record(FirstWin)
		default:
			stats.record(SecondWin)
		}

		log.Info().Int("game", i+1).Int("first_wins", stats.FirstWins).Int("second_wins", stats.SecondWins).Msg("bench game finished")
	}

	return stats
}

func (a *Arena) playGame(aIsFirst bool) MatchResult {
	board := goboard.NewBoard(a.size, a.komi)
	newBoard := func() mcts.Board { return goboard.NewScratchBoard(a.size, a.komi) }

	cfgFirst, cfgSecond := a.cfgA, a.cfgB
	if !aIsFirst {
		cfgFirst, cfgSecond = a.cfgB, a.cfgA
	}

	policyFirst := sampler.NewPat3Sampler(a.seed, nil)
	searchFirst := mcts.NewSearch(cfgFirst, board, policyFirst, newBoard)
	policyFirst.SetProbeBoard(searchFirst.Scratch().(*goboard.Board))

	policySecond := sampler.NewPat3Sampler(a.seed+1, nil)
	searchSecond := mcts.NewSearch(cfgSecond, board, policySecond, newBoard)
	policySecond.SetProbeBoard(searchSecond.Scratch().(*goboard.Board))

	toMove := mcts.Black
	for !board.BothPlayersPassed() {
		var v mcts.Vertex
		if toMove == mcts.Black {
			v = searchFirst.GenMove(toMove)
		} else {
			v = searchSecond.GenMove(toMove)
		}
		if v == mcts.Resign {
			if toMove == mcts.Black {
				return SecondWin
			}
			return FirstWin
		}
		toMove = toMove.Other()
	}

	if board.TTWinner() == mcts.Black {
		return FirstWin
	}
	return SecondWin
}

// Plot renders stats.WinRateHistory as an HTML line chart to path,
// grounded on CodeStranger-Fred-info7375's policy_run_plot.go (go-echarts
// charts.NewLine + components.Page, adapted from its "serve over HTTP"
// ending to simply writing the file, since this is a one-shot CLI tool
// rather than a long-lived plotting server).
func Plot(stats *Stats, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s vs %s", stats.FirstName, stats.SecondName)}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)

	steps := make([]string, len(stats.WinRateHistory))
	items := make([]opts.LineData, len(stats.WinRateHistory))
	for i, rate := range stats.WinRateHistory {
		steps[i] = fmt.Sprintf("%d", i+1)
		items[i] = opts.LineData{Value: rate}
	}
	line.SetXAxis(steps).AddSeries(stats.FirstName+" win rate", items)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(io.MultiWriter(f))
}
