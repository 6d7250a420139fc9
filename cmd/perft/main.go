// Command perft is a brute-force legal-move counter shipped alongside
// the engine (spec.md §1's "perft", explicitly not part of the MCTS
// core). It counts legal game trees to a fixed depth, the same sanity
// check chess engines run against known node counts.
//
// Per SPEC_FULL.md's resolution of spec §9's open question, this
// implementation includes the pass branch at every depth, matching
// internal/goboard's own move enumerator (Board.Vertices always appends
// mcts.Pass) rather than special-casing it away.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsumego/mctsgo/internal/goboard"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

func perft(b *goboard.Board, player mcts.Player, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var total uint64
	for _, v := range b.Vertices() {
		if v != mcts.Pass && !b.IsLegal(player, v) {
			continue
		}
		child := b.Clone()
		if !child.PlayLegal(mcts.Move{Player: player, Vertex: v}) {
			continue
		}
		total += perft(child, player.Other(), depth-1)
	}
	return total
}

func main() {
	size := flag.Int("size", 5, "board size (NxN)")
	komi := flag.Float64("komi", 0, "komi")
	depth := flag.Int("depth", 3, "search depth (plies)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	board := goboard.NewBoard(*size, *komi)

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n := perft(board, mcts.Black, d)
		elapsed := time.Since(start)
		log.Info().Int("depth", d).Uint64("nodes", n).Dur("elapsed", elapsed).Msg("perft")
		fmt.Printf("depth %d: %d nodes (%s)\n", d, n, elapsed)
	}
}
