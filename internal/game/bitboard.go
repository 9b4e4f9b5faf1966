package game

import (
	"math/bits"

	"courtchess/internal/shared"
)

// Bitboard represents a set of board squares, one bit per square in
// row-major order.
type Bitboard uint16

const boardMask Bitboard = 1<<(shared.BoardSize*shared.BoardSize) - 1

func BB(p Position) Bitboard {
	if !p.OnBoard() {
		return 0
	}
	return 1 << p.Index()
}

func (b Bitboard) Empty() bool { return b&boardMask == 0 }

func (b Bitboard) Count() int { return bits.OnesCount16(uint16(b & boardMask)) }

func (b Bitboard) PopLSB() (Position, Bitboard) {
	b &= boardMask
	if b == 0 {
		return OffBoard, 0
	}
	idx := bits.TrailingZeros16(uint16(b))
	return positionAt(idx), b &^ (1 << idx)
}

func (b Bitboard) Has(p Position) bool { return b&BB(p) != 0 }

func (b Bitboard) Add(p Position) Bitboard { return b | BB(p) }

func (b Bitboard) Remove(p Position) Bitboard { return b &^ BB(p) }

func (b Bitboard) Iter(fn func(Position)) {
	bb := b & boardMask
	for bb != 0 {
		p, rest := bb.PopLSB()
		fn(p)
		bb = rest
	}
}

// Positions lists the squares in the set in row-major order.
func (b Bitboard) Positions() []Position {
	out := make([]Position, 0, b.Count())
	b.Iter(func(p Position) { out = append(out, p) })
	return out
}

func positionAt(idx int) Position {
	return Position{Row: idx / shared.BoardSize, Col: idx % shared.BoardSize}
}
