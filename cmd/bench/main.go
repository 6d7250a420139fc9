// Command bench runs self-play games between two MCTS configurations and
// reports which one wins more often (SPEC_FULL.md's supplemented
// self-play benchmark, adapted from the teacher's pkg/bench arena).
//
// The default comparison is RAVE enabled vs disabled, since Config.RaveEnabled
// is the one knob spec.md's search formula names explicitly (§4.2's urgency
// term). -games controls how many games are played; -plot writes an HTML
// win-rate chart if set.
package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsumego/mctsgo/internal/bench"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

func main() {
	size := flag.Int("size", 9, "board size (NxN)")
	komi := flag.Float64("komi", 7.5, "komi")
	games := flag.Int("games", 20, "number of games to play")
	seed := flag.Int64("seed", 1, "rollout RNG seed")
	plot := flag.String("plot", "", "path to write an HTML win-rate chart (optional)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	withRave := mcts.DefaultConfig()
	withoutRave := mcts.DefaultConfig()
	withoutRave.RaveEnabled = false

	arena := bench.NewArena(*size, *komi, "rave", withRave, "no-rave", withoutRave, *seed)
	stats := arena.Run(*games)

	fmt.Printf("%s: %d wins, %s: %d wins (of %d games)\n", stats.FirstName, stats.FirstWins, stats.SecondName, stats.SecondWins, stats.Total())

	if *plot != "" {
		if err := bench.Plot(stats, *plot); err != nil {
			log.Fatal().Err(err).Msg("failed to render chart")
		}
		log.Info().Str("path", *plot).Msg("wrote win-rate chart")
	}
}
