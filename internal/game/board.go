package game

import "courtchess/internal/shared"

// Board is the 3×3 grid. A nil cell is empty.
type Board [shared.BoardSize][shared.BoardSize]*Piece

// Lookup is the read-only view of a board handed to move generators.
type Lookup func(Position) *Piece

func (b *Board) At(p Position) *Piece {
	if !p.OnBoard() {
		return nil
	}
	return b[p.Row][p.Col]
}

func (b *Board) Lookup() Lookup { return b.At }

func (b *Board) set(p Position, pc *Piece) {
	if !p.OnBoard() {
		return
	}
	b[p.Row][p.Col] = pc
}

// Clone returns a deep copy; no piece pointer is shared with b.
func (b Board) Clone() Board {
	var out Board
	for r := range b {
		for c := range b[r] {
			out[r][c] = b[r][c].Clone()
		}
	}
	return out
}

// Pieces returns the pieces of one color in row-major order.
func (b *Board) Pieces(color Color) []*Piece {
	out := make([]*Piece, 0, shared.BoardSize)
	for r := range b {
		for c := range b[r] {
			if pc := b[r][c]; pc != nil && pc.Owner == color {
				out = append(out, pc)
			}
		}
	}
	return out
}

func (b *Board) Count(color Color) int { return b.Occupancy(color).Count() }

func (b *Board) Total() int { return b.Count(Light) + b.Count(Dark) }

// Occupancy returns the squares holding pieces of the given color.
func (b *Board) Occupancy(color Color) Bitboard {
	var bb Bitboard
	for r := range b {
		for c := range b[r] {
			if pc := b[r][c]; pc != nil && pc.Owner == color {
				bb = bb.Add(Pos(r, c))
			}
		}
	}
	return bb
}

func clonePieces(src []*Piece) []*Piece {
	out := make([]*Piece, len(src))
	for i, pc := range src {
		out[i] = pc.Clone()
	}
	return out
}
