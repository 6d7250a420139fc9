// Package gtp is the text-protocol adapter spec.md §6 calls "the
// engine-command interpreter": a line-oriented command/reply loop that
// registers genmove, MCTS.show, parameter get/set, and the handful of GTP
// staples (boardsize, clear_board, play, komi, quit, list_commands)
// needed to drive them from a terminal or another program's stdin/stdout
// pipe.
//
// Grounded loosely on christopherWilliams98-risk-agent's agent_server.go
// (one handler per command, registered by name, returning either a
// result or an error the transport renders) but adapted from that
// repo's JSON-over-HTTP shape to GTP's `=`/`?`-prefixed line replies,
// since spec §9's "Engine-command glue" note puts parameter registration
// and analysis dumps in this adapter layer, not the core.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsumego/mctsgo/internal/goboard"
	"github.com/tsumego/mctsgo/pkg/mcts"
)

// Handler processes one command's argument words and returns the reply
// body (without the leading "= "/"? " status) or an error.
type Handler func(args []string) (string, error)

// Param is a registered float-valued engine parameter (spec §6: "explore
// rate, playout_count, #_updates_to_promote, print_min_visit, plus RAVE
// and bias coefficients"). get/set close over the Config field they back.
type Param struct {
	Get func() float64
	Set func(float64)
}

// Engine owns one running game: the real board, the search, and the
// registered command/parameter tables. Commands mutate no core state
// except through these tables, per spec §9.
type Engine struct {
	cfg     *mcts.Config
	board   *goboard.Board
	search  *mcts.Search
	size    int
	colored bool

	commands map[string]Handler
	params   map[string]*Param

	log zerolog.Logger
}

// New builds an Engine for a size*size board around the given board and
// search, registering the standard command/parameter tables.
func New(size int, komi float64, cfg *mcts.Config, search *mcts.Search, board *goboard.Board) *Engine {
	e := &Engine{
		cfg:      cfg,
		board:    board,
		search:   search,
		size:     size,
		colored:  true,
		commands: make(map[string]Handler),
		params:   make(map[string]*Param),
		log:      log.With().Str("component", "gtp.engine").Logger(),
	}
	e.registerCommands()
	e.registerParams()
	return e
}

func (e *Engine) registerParams() {
	e.params["explore_rate"] = &Param{
		Get: func() float64 { return e.cfg.ExploreRate },
		Set: func(v float64) { e.cfg.ExploreRate = v },
	}
	e.params["playout_count"] = &Param{
		Get: func() float64 { return float64(e.cfg.GenmovePlayoutCount) },
		Set: func(v float64) { e.cfg.GenmovePlayoutCount = int(v) },
	}
	e.params["updates_to_promote"] = &Param{
		Get: func() float64 { return e.cfg.MatureUpdateThreshold },
		Set: func(v float64) { e.cfg.MatureUpdateThreshold = v },
	}
	e.params["print_min_visit"] = &Param{
		Get: func() float64 { return float64(e.cfg.PrintMinVisit) },
		Set: func(v float64) { e.cfg.PrintMinVisit = int(v) },
	}
	e.params["rave_weight"] = &Param{
		Get: func() float64 { return e.cfg.RaveWeight },
		Set: func(v float64) { e.cfg.RaveWeight = v },
	}
	e.params["stat_weight"] = &Param{
		Get: func() float64 { return e.cfg.StatWeight },
		Set: func(v float64) { e.cfg.StatWeight = v },
	}
	e.params["progressive_bias"] = &Param{
		Get: func() float64 { return e.cfg.ProgressiveBias },
		Set: func(v float64) { e.cfg.ProgressiveBias = v },
	}
	e.params["resign_mean"] = &Param{
		Get: func() float64 { return e.cfg.ResignMean },
		Set: func(v float64) { e.cfg.ResignMean = v },
	}
}

func (e *Engine) registerCommands() {
	e.commands["genmove"] = e.cmdGenmove
	e.commands["play"] = e.cmdPlay
	e.commands["boardsize"] = e.cmdBoardsize
	e.commands["clear_board"] = e.cmdClearBoard
	e.commands["komi"] = e.cmdKomi
	e.commands["MCTS.show"] = e.cmdMCTSShow
	e.commands["param_get"] = e.cmdParamGet
	e.commands["param_set"] = e.cmdParamSet
	e.commands["list_commands"] = e.cmdListCommands
	e.commands["protocol_version"] = constHandler("2")
	e.commands["name"] = constHandler("mctsgo")
}

func constHandler(s string) Handler {
	return func(args []string) (string, error) { return s, nil }
}

func parsePlayer(s string) (mcts.Player, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return mcts.Black, nil
	case "w", "white":
		return mcts.White, nil
	}
	return mcts.Black, errors.Errorf("unknown player %q", s)
}

func (e *Engine) vertexFromText(s string) (mcts.Vertex, error) {
	if strings.EqualFold(s, "pass") {
		return mcts.Pass, nil
	}
	if len(s) < 2 {
		return mcts.Any, errors.Errorf("malformed vertex %q", s)
	}
	col := strings.ToUpper(s[:1])[0]
	if col >= 'I' {
		col-- // GTP's column letters skip 'I'
	}
	c := int(col - 'A')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return mcts.Any, errors.Wrapf(err, "malformed vertex %q", s)
	}
	r := e.size - row
	if c < 0 || c >= e.size || r < 0 || r >= e.size {
		return mcts.Any, errors.Errorf("vertex %q out of bounds", s)
	}
	return mcts.Vertex(r*e.size + c), nil
}

func (e *Engine) vertexToText(v mcts.Vertex) string {
	if v == mcts.Pass {
		return "pass"
	}
	if v == mcts.Resign {
		return "resign"
	}
	r := int(v) / e.size
	c := int(v) % e.size
	col := byte('A' + c)
	if col >= 'I' {
		col++
	}
	return fmt.Sprintf("%c%d", col, e.size-r)
}

func (e *Engine) cmdGenmove(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: genmove <player>")
	}
	p, err := parsePlayer(args[0])
	if err != nil {
		return "", err
	}
	v := e.search.GenMove(p)
	return e.vertexToText(v), nil
}

func (e *Engine) cmdPlay(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: play <player> <vertex>")
	}
	p, err := parsePlayer(args[0])
	if err != nil {
		return "", err
	}
	v, err := e.vertexFromText(args[1])
	if err != nil {
		return "", err
	}
	if !e.board.PlayLegal(mcts.Move{Player: p, Vertex: v}) {
		return "", errors.Errorf("illegal move: %s %s", args[0], args[1])
	}
	return "", nil
}

func (e *Engine) cmdBoardsize(args []string) (string, error) {
	return "", errors.New("boardsize cannot be changed after startup; restart the engine")
}

func (e *Engine) cmdClearBoard(args []string) (string, error) {
	*e.board = *goboard.NewBoard(e.size, e.board.Komi())
	return "", nil
}

func (e *Engine) cmdKomi(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: komi <value>")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", errors.Wrap(err, "malformed komi")
	}
	e.board.SetKomi(v)
	return "", nil
}

func (e *Engine) cmdMCTSShow(args []string) (string, error) {
	minVisits := e.cfg.PrintMinVisit
	maxChildren := 8
	if len(args) >= 1 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			minVisits = n
		}
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			maxChildren = n
		}
	}

	var plain strings.Builder
	e.search.Tree().ShowTree(&plain, minVisits, maxChildren)
	if !e.colored {
		return plain.String(), nil
	}
	return colorizeShow(plain.String()), nil
}

// colorizeShow colours each line that starts with a player tag (everything
// after its indent) with aurora --
// CodeStranger-Fred-info7375's main.go uses logrusorgru/aurora the same
// way, for coloured terminal analysis output.
func colorizeShow(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		if strings.HasPrefix(trimmed, "B ") {
			lines[i] = indent + aurora.Black(trimmed).BgWhite().String()
		} else if strings.HasPrefix(trimmed, "W ") {
			lines[i] = indent + aurora.White(trimmed).String()
		}
	}
	return strings.Join(lines, "\n")
}

func (e *Engine) cmdParamGet(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: param_get <name>")
	}
	p, ok := e.params[args[0]]
	if !ok {
		return "", errors.Errorf("unknown parameter %q", args[0])
	}
	return strconv.FormatFloat(p.Get(), 'g', -1, 64), nil
}

func (e *Engine) cmdParamSet(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: param_set <name> <value>")
	}
	p, ok := e.params[args[0]]
	if !ok {
		return "", errors.Errorf("unknown parameter %q", args[0])
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", errors.Wrapf(err, "malformed value for %q", args[0])
	}
	p.Set(v)
	return "", nil
}

func (e *Engine) cmdListCommands(args []string) (string, error) {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}

// Serve reads one command per line from r and writes GTP-style `=`/`?`
// replies to w until EOF or a "quit" command, matching spec §7's rule
// that a malformed user command surfaces as a syntax-error reply without
// touching tree state.
func (e *Engine) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		name, args := fields[0], fields[1:]

		if name == "quit" {
			fmt.Fprintln(w, "= ")
			return nil
		}

		handler, ok := e.commands[name]
		if !ok {
			fmt.Fprintf(w, "? unknown command: %s\n\n", name)
			continue
		}

		reply, err := handler(args)
		if err != nil {
			e.log.Warn().Err(err).Str("command", name).Msg("command failed")
			fmt.Fprintf(w, "? %s\n\n", err)
			continue
		}
		if reply == "" {
			fmt.Fprintln(w, "= ")
		} else {
			fmt.Fprintf(w, "= %s\n", reply)
		}
		fmt.Fprintln(w)
	}
	return errors.Wrap(scanner.Err(), "gtp: reading command stream")
}
