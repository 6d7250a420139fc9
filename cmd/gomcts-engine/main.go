// Command gomcts-engine runs the text-protocol Go-playing MCTS engine
// (spec.md §6's "engine-command interpreter") over stdin/stdout.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsumego/mctsgo/internal/goboard"
	"github.com/tsumego/mctsgo/internal/gtp"
	"github.com/tsumego/mctsgo/internal/sampler"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

func main() {
	size := flag.Int("size", 9, "board size (NxN)")
	komi := flag.Float64("komi", 7.5, "komi")
	seed := flag.Int64("seed", 1, "rollout RNG seed")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := mcts.DefaultConfig()
	board := goboard.NewBoard(*size, *komi)
	policy := sampler.NewPat3Sampler(*seed, nil)

	newBoard := func() mcts.Board { return goboard.NewScratchBoard(*size, *komi) }
	search := mcts.NewSearch(cfg, board, policy, newBoard)
	policy.SetProbeBoard(search.Scratch().(*goboard.Board))

	log.Info().Int("size", *size).Float64("komi", *komi).Msg("gomcts-engine ready")

	engine := gtp.New(*size, *komi, cfg, search, board)
	if err := engine.Serve(os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("gtp session ended abnormally")
	}
}
