// Package goboard is the external Board collaborator spec.md §6 assumes
// but treats as out of the MCTS core: legality (including positional
// superko), play, pass/score, and move history.
//
// It is grounded on traveller42-michi-go's michi.go, adapted from that
// program's single mutable string-board-with-colour-flip representation
// (board always printed from "X to play"'s perspective, captures done via
// string replace + floodfill) to an explicit, in-place-mutated byte slice
// indexed by absolute Black/White colour, because mcts.Board's contract
// takes an explicit Player argument rather than assuming "the side to
// move is always X" (SPEC_FULL.md §3).
package goboard

import (
	"github.com/tsumego/mctsgo/pkg/mcts"
)

type cell byte

const (
	cellBorder cell = ' '
	cellEmpty  cell = '.'
	cellBlack  cell = 'B'
	cellWhite  cell = 'W'
)

func colorOf(p mcts.Player) cell {
	if p == mcts.Black {
		return cellBlack
	}
	return cellWhite
}

// Board is a square Go board of size*size points, padded with a one-cell
// border on every side so neighbour offsets (±1, ±stride) never need
// bounds checks -- the same trick michi.go's (N+1)*(N+2) padded string
// plays, generalised to two dimensions of border instead of one.
type Board struct {
	size   int
	stride int // size + 2
	cells  []cell

	komi float64

	toPlay      mcts.Player
	simpleKo    mcts.Vertex // forbidden recapture point, mcts.Any if none
	lastVertex  mcts.Vertex
	last2Vertex mcts.Vertex
	passStreak  int

	moves []mcts.Move

	captured [2]int // indexed by Player

	history *positionHistory // nil on scratch boards that never need superko checks
}

// NewBoard returns an empty board ready for Black to play first.
func NewBoard(size int, komi float64) *Board {
	stride := size + 2
	b := &Board{
		size:        size,
		stride:      stride,
		cells:       make([]cell, stride*stride),
		komi:        komi,
		toPlay:      mcts.Black,
		simpleKo:    mcts.Any,
		lastVertex:  mcts.Any,
		last2Vertex: mcts.Any,
		history:     newPositionHistory(),
	}
	for r := 0; r < stride; r++ {
		for c := 0; c < stride; c++ {
			idx := r*stride + c
			if r == 0 || c == 0 || r == stride-1 || c == stride-1 {
				b.cells[idx] = cellBorder
			} else {
				b.cells[idx] = cellEmpty
			}
		}
	}
	b.history.record(b.positionKey())
	return b
}

// NewScratchBoard returns an empty board with no superko history tracking,
// for use as Search's per-playout scratch board (spec §4.3 step 1): a
// playout never needs to detect superko against its own short rollout,
// only against the pseudo/real-legality checks already folded into the
// tree by SyncRoot.
func NewScratchBoard(size int, komi float64) *Board {
	b := NewBoard(size, komi)
	b.history = nil
	return b
}

func (b *Board) neighbors(c int) [4]int {
	return [4]int{c - 1, c + 1, c - b.stride, c + b.stride}
}

func (b *Board) diagNeighbors(c int) [4]int {
	s := b.stride
	return [4]int{c - s - 1, c - s + 1, c + s - 1, c + s + 1}
}

func (b *Board) vertexToCell(v mcts.Vertex) int {
	r := int(v) / b.size
	c := int(v) % b.size
	return (r+1)*b.stride + (c + 1)
}

func (b *Board) cellToVertex(c int) mcts.Vertex {
	r := c/b.stride - 1
	col := c%b.stride - 1
	return mcts.Vertex(r*b.size + col)
}

// Size implements mcts.Board.
func (b *Board) Size() int { return b.size * b.size }

// ActPlayer implements mcts.Board.
func (b *Board) ActPlayer() mcts.Player { return b.toPlay }

// SetActPlayer implements mcts.Board.
func (b *Board) SetActPlayer(p mcts.Player) { b.toPlay = p }

// Moves implements mcts.Board.
func (b *Board) Moves() []mcts.Move { return b.moves }

// Vertices implements mcts.Board, enumerating every empty interior point
// plus Pass (spec §4.3's expansion domain).
func (b *Board) Vertices() []mcts.Vertex {
	out := make([]mcts.Vertex, 0, b.size*b.size+1)
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			idx := (r+1)*b.stride + (c + 1)
			if b.cells[idx] == cellEmpty {
				out = append(out, mcts.Vertex(r*b.size+c))
			}
		}
	}
	out = append(out, mcts.Pass)
	return out
}

// BothPlayersPassed implements mcts.Board.
func (b *Board) BothPlayersPassed() bool {
	return b.passStreak >= 2
}

// CopyFrom implements mcts.Board. dst and src must share size/komi.
func (b *Board) CopyFrom(src mcts.Board) {
	o := src.(*Board)
	copy(b.cells, o.cells)
	b.toPlay = o.toPlay
	b.simpleKo = o.simpleKo
	b.lastVertex = o.lastVertex
	b.last2Vertex = o.last2Vertex
	b.passStreak = o.passStreak
	b.captured = o.captured
	b.moves = append(b.moves[:0], o.moves...)
	// history is deliberately not copied: the scratch board that CopyFrom
	// is used to (re)populate never needs superko state of its own (see
	// NewScratchBoard).
}

// IsPseudoLegal implements mcts.Board: a cheap precheck used during tree
// descent, before the (more expensive) PlayLegal commit. It rejects only
// what's free to reject -- occupied points and the simple-ko point --
// leaving suicide and superko to PlayLegal/IsLegal.
func (b *Board) IsPseudoLegal(p mcts.Player, v mcts.Vertex) bool {
	if v == mcts.Pass {
		return true
	}
	if v == mcts.Any || v == mcts.Resign || int(v) < 0 || int(v) >= b.size*b.size {
		return false
	}
	if v == b.simpleKo {
		return false
	}
	return b.cells[b.vertexToCell(v)] == cellEmpty
}

// IsLegal implements mcts.Board: full legality, including suicide and
// positional superko, by simulating the move on a scratch copy.
func (b *Board) IsLegal(p mcts.Player, v mcts.Vertex) bool {
	if v == mcts.Pass {
		return true
	}
	if !b.IsPseudoLegal(p, v) {
		return false
	}

	sim := b.clone()
	ok, _ := sim.play(p, v)
	if !ok {
		return false
	}

	if b.history == nil {
		return true
	}
	return !b.history.seen(sim.positionKey())
}

// IsReallyLegal implements mcts.Board, re-checking a previously-created
// child's move against the live board (spec §4.3's illegal-child pruning
// at sync_root).
func (b *Board) IsReallyLegal(m mcts.Move) bool {
	return b.IsLegal(m.Player, m.Vertex)
}

// PlayLegal implements mcts.Board. It re-derives legality itself (rather
// than trusting the caller) so it can report ok=false the way spec §7
// expects when a move the tree believed legal turns out not to be.
func (b *Board) PlayLegal(m mcts.Move) bool {
	if m.Vertex == mcts.Pass {
		b.toPlay = m.Player.Other()
		b.last2Vertex = b.lastVertex
		b.lastVertex = mcts.Pass
		b.simpleKo = mcts.Any
		b.passStreak++
		b.moves = append(b.moves, m)
		if b.history != nil {
			b.history.record(b.positionKey())
		}
		return true
	}

	if !b.IsPseudoLegal(m.Player, m.Vertex) {
		return false
	}

	sim := b.clone()
	ok, _ := sim.play(m.Player, m.Vertex)
	if !ok {
		return false
	}
	if b.history != nil && b.history.seen(sim.positionKey()) {
		return false
	}

	moves := b.moves // clone() leaves sim.moves empty
	*b = *sim
	b.passStreak = 0
	b.moves = append(moves, m)
	if b.history != nil {
		b.history.record(b.positionKey())
	}
	return true
}

// Clone returns an independent deep copy of b, including its own superko
// history, for callers that need to branch the game tree themselves
// (cmd/perft's brute-force move counter).
func (b *Board) Clone() *Board {
	c := b.clone()
	c.moves = append([]mcts.Move(nil), b.moves...)
	if b.history != nil {
		h := newPositionHistory()
		for k, n := range b.history.seenHashes {
			h.seenHashes[k] = n
		}
		c.history = h
	}
	return c
}

// clone returns a deep-enough copy of b to simulate a move without
// mutating b itself. history is shared by reference since play() never
// touches it -- only PlayLegal/the caller of clone records into it.
func (b *Board) clone() *Board {
	c := &Board{
		size:        b.size,
		stride:      b.stride,
		cells:       append([]cell(nil), b.cells...),
		komi:        b.komi,
		toPlay:      b.toPlay,
		simpleKo:    b.simpleKo,
		lastVertex:  b.lastVertex,
		last2Vertex: b.last2Vertex,
		passStreak:  b.passStreak,
		captured:    b.captured,
		history:     b.history,
	}
	return c
}

// play commits p's stone at v on b directly (no legality re-check beyond
// suicide), performing captures and updating ko state. It mutates b and
// is only ever called on a scratch clone by IsLegal/PlayLegal.
func (b *Board) play(p mcts.Player, v mcts.Vertex) (ok bool, captured int) {
	c := b.vertexToCell(v)
	mine := colorOf(p)
	theirs := colorOf(p.Other())

	enemyEye := b.isEyeish(c) == theirs

	b.cells[c] = mine

	singleCaptureAt := -1
	for _, d := range b.neighbors(c) {
		if b.cells[d] != theirs {
			continue
		}
		group, liberties := b.floodGroup(d)
		if liberties > 0 {
			continue
		}
		for _, g := range group {
			b.cells[g] = cellEmpty
		}
		captured += len(group)
		if len(group) == 1 {
			singleCaptureAt = group[0]
		}
	}

	if enemyEye && captured == 1 && singleCaptureAt != -1 {
		b.simpleKo = b.cellToVertex(singleCaptureAt)
	} else {
		b.simpleKo = mcts.Any
	}

	if _, liberties := b.floodGroup(c); liberties == 0 {
		b.cells[c] = cellEmpty // undo: suicide
		return false, 0
	}

	b.captured[p] += captured
	b.toPlay = p.Other()
	b.last2Vertex = b.lastVertex
	b.lastVertex = v
	return true, captured
}

// isEyeish reports the colour c is a single-colour-diamond of, or
// cellEmpty if c touches an empty point or two different colours
// (michi.go's is_eyeish, ported from the colour-flip string convention to
// explicit colours).
func (b *Board) isEyeish(c int) cell {
	var eyeColor cell
	for _, d := range b.neighbors(c) {
		n := b.cells[d]
		if n == cellBorder {
			continue
		}
		if n == cellEmpty {
			return cellEmpty
		}
		if eyeColor == 0 {
			eyeColor = n
		} else if n != eyeColor {
			return cellEmpty
		}
	}
	return eyeColor
}

// isEye is isEyeish plus the diagonal false-eye check (michi.go's is_eye).
func (b *Board) isEye(c int) cell {
	eyeColor := b.isEyeish(c)
	if eyeColor == cellEmpty {
		return cellEmpty
	}

	falseColor := cellBlack
	if eyeColor == cellBlack {
		falseColor = cellWhite
	}

	falseCount := 0
	for _, d := range b.diagNeighbors(c) {
		switch b.cells[d] {
		case cellBorder:
			falseCount++
		case falseColor:
			falseCount++
		}
	}
	if falseCount >= 2 {
		return cellEmpty
	}
	return eyeColor
}

// floodGroup returns every cell in c's maximal same-colour connected group
// and the number of liberties (empty neighbours) that group has, via the
// iterative flood-fill michi.go's floodfill uses (ported from the
// replace-with-'#' string trick to an explicit visited set, since this
// board mutates cells in place for captures and can't borrow the '#'
// sentinel on a live colour plane).
func (b *Board) floodGroup(start int) (group []int, liberties int) {
	color := b.cells[start]
	visited := make(map[int]bool)
	fringe := []int{start}
	visited[start] = true

	for len(fringe) > 0 {
		c := fringe[len(fringe)-1]
		fringe = fringe[:len(fringe)-1]
		group = append(group, c)

		for _, d := range b.neighbors(c) {
			switch b.cells[d] {
			case color:
				if !visited[d] {
					visited[d] = true
					fringe = append(fringe, d)
				}
			case cellEmpty:
				if !visited[d] {
					visited[d] = true
					liberties++
				}
			}
		}
	}
	return group, liberties
}

// TTWinner implements mcts.Board, scoring the current (assumed-final)
// position under Chinese rules via territory flood-fill (michi.go's
// score): every maximal empty region touching only one colour becomes
// that colour's territory; regions touching both (seki) count for
// neither.
func (b *Board) TTWinner() mcts.Player {
	territory := append([]cell(nil), b.cells...)
	visited := make(map[int]bool)

	blackPoints, whitePoints := 0, 0
	for idx, c := range territory {
		if c == cellBlack {
			blackPoints++
		} else if c == cellWhite {
			whitePoints++
		} else if c == cellEmpty && !visited[idx] {
			region, touchesBlack, touchesWhite := b.floodRegion(idx, visited)
			switch {
			case touchesBlack && !touchesWhite:
				blackPoints += len(region)
			case touchesWhite && !touchesBlack:
				whitePoints += len(region)
			}
		}
	}

	score := float64(blackPoints-whitePoints) - b.komi
	if score >= 0 {
		return mcts.Black
	}
	return mcts.White
}

func (b *Board) floodRegion(start int, visited map[int]bool) (region []int, touchesBlack, touchesWhite bool) {
	fringe := []int{start}
	visited[start] = true
	for len(fringe) > 0 {
		c := fringe[len(fringe)-1]
		fringe = fringe[:len(fringe)-1]
		region = append(region, c)
		for _, d := range b.neighbors(c) {
			switch b.cells[d] {
			case cellEmpty:
				if !visited[d] {
					visited[d] = true
					fringe = append(fringe, d)
				}
			case cellBlack:
				touchesBlack = true
			case cellWhite:
				touchesWhite = true
			}
		}
	}
	return region, touchesBlack, touchesWhite
}

// Score returns the signed Chinese-rules score (+ve favours Black);
// TTWinner derives its verdict from the same computation.
func (b *Board) Score() float64 {
	visited := make(map[int]bool)
	blackPoints, whitePoints := 0, 0
	for idx, c := range b.cells {
		switch c {
		case cellBlack:
			blackPoints++
		case cellWhite:
			whitePoints++
		case cellEmpty:
			if !visited[idx] {
				region, touchesBlack, touchesWhite := b.floodRegion(idx, visited)
				switch {
				case touchesBlack && !touchesWhite:
					blackPoints += len(region)
				case touchesWhite && !touchesBlack:
					whitePoints += len(region)
				}
			}
		}
	}
	return float64(blackPoints-whitePoints) - b.komi
}

// SimpleKo exposes the current simple-ko forbidden vertex, mcts.Any if
// none, chiefly for tests.
func (b *Board) SimpleKo() mcts.Vertex { return b.simpleKo }

// SetKomi updates the komi used by Score/TTWinner. It does not retroactively
// change any already-recorded superko history.
func (b *Board) SetKomi(komi float64) { b.komi = komi }

// Komi returns the board's current komi.
func (b *Board) Komi() float64 { return b.komi }

// Pattern3x3 reads the 8 points surrounding v (row-major, centre excluded:
// NW,N,NE,W,E,SW,S,SE) relative to mover, for internal/sampler's Pat3
// policy (SPEC_FULL's supplemented feature grounded on michi.go's
// pat3src table). Each byte is 'X' (mover's stone), 'O' (opponent's),
// '.' (empty) or ' ' (off board). v itself is assumed empty; callers that
// care should check that separately.
func (b *Board) Pattern3x3(v mcts.Vertex, mover mcts.Player) [8]byte {
	c := b.vertexToCell(v)
	s := b.stride
	offsets := [8]int{-s - 1, -s, -s + 1, -1, 1, s - 1, s, s + 1}

	mine := colorOf(mover)
	theirs := colorOf(mover.Other())

	var out [8]byte
	for i, off := range offsets {
		switch b.cells[c+off] {
		case mine:
			out[i] = 'X'
		case theirs:
			out[i] = 'O'
		case cellEmpty:
			out[i] = '.'
		default:
			out[i] = ' '
		}
	}
	return out
}

// IsCapturingMove reports whether playing at v as p would remove at least
// one opposing stone (michi.go's PRIOR_CAPTURE_ONE/_MANY heuristic,
// consumed by internal/sampler's capture bias).
func (b *Board) IsCapturingMove(p mcts.Player, v mcts.Vertex) bool {
	c := b.vertexToCell(v)
	theirs := colorOf(p.Other())
	for _, d := range b.neighbors(c) {
		if b.cells[d] != theirs {
			continue
		}
		if _, liberties := b.floodGroup(d); liberties == 1 {
			// v is that group's only liberty iff v is itself empty and
			// adjacent, which holds here since callers only probe empty v.
			return true
		}
	}
	return false
}
