package game

import "courtchess/internal/shared"

// Generator computes the on-board destinations of a piece standing on from.
// The board is only reachable through look; last is the previous history
// entry, or nil at the start of the game.
type Generator func(pc *Piece, from Position, look Lookup, last *Move) Bitboard

var generators = [...]Generator{
	Rook:   rookMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Queen:  queenMoves,
	Pawn:   pawnMoves,
}

// MovesFor returns the generator for a piece type.
func MovesFor(pt PieceType) Generator {
	if int(pt) >= len(generators) {
		return func(*Piece, Position, Lookup, *Move) Bitboard { return 0 }
	}
	return generators[pt]
}

// Generate returns every on-board destination for pc.
func Generate(pc *Piece, from Position, look Lookup, last *Move) Bitboard {
	if pc == nil || !from.OnBoard() {
		return 0
	}
	return MovesFor(pc.Type)(pc, from, look, last)
}

func rookMoves(pc *Piece, from Position, look Lookup, _ *Move) Bitboard {
	return slidingMoves(pc, from, look, shared.Orthogonal[:])
}

func bishopMoves(pc *Piece, from Position, look Lookup, _ *Move) Bitboard {
	return slidingMoves(pc, from, look, shared.Diagonal[:])
}

func queenMoves(pc *Piece, from Position, look Lookup, last *Move) Bitboard {
	return rookMoves(pc, from, look, last) | bishopMoves(pc, from, look, last)
}

func slidingMoves(pc *Piece, from Position, look Lookup, directions []shared.Delta) Bitboard {
	var moves Bitboard
	for _, d := range directions {
		for _, sq := range shared.Ray(from.Row, from.Col, d) {
			target := Pos(sq[0], sq[1])
			occupant := look(target)
			if occupant == nil {
				moves = moves.Add(target)
				continue
			}
			if occupant.Owner != pc.Owner {
				moves = moves.Add(target)
			}
			break
		}
	}
	return moves
}

func knightMoves(pc *Piece, from Position, look Lookup, _ *Move) Bitboard {
	var moves Bitboard
	for _, d := range shared.KnightJumps {
		target := Pos(from.Row+d.DR, from.Col+d.DC)
		if !target.OnBoard() {
			continue
		}
		if occupant := look(target); occupant == nil || occupant.Owner != pc.Owner {
			moves = moves.Add(target)
		}
	}
	return moves
}

func pawnMoves(pc *Piece, from Position, look Lookup, last *Move) Bitboard {
	var moves Bitboard
	dir := pc.Owner.Forward()

	single := Pos(from.Row+dir, from.Col)
	if single.OnBoard() && look(single) == nil {
		moves = moves.Add(single)
		if pc.MoveCount == 0 {
			double := Pos(from.Row+2*dir, from.Col)
			if double.OnBoard() && look(double) == nil {
				moves = moves.Add(double)
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		target := Pos(from.Row+dir, from.Col+dc)
		if !target.OnBoard() {
			continue
		}
		if victim := look(target); victim != nil && victim.Owner != pc.Owner {
			moves = moves.Add(target)
		}
	}

	if _, dest, ok := enPassant(pc, from, look, last); ok {
		moves = moves.Add(dest)
	}
	return moves
}

// enPassant reports the en passant capture available to pc, if any: the
// square of the pawn to remove and the destination the capturer lands on.
// Only a double step made on the immediately preceding turn qualifies.
func enPassant(pc *Piece, from Position, look Lookup, last *Move) (victimSq, dest Position, ok bool) {
	if pc == nil || pc.Type != Pawn || last == nil || !last.isDoubleStep() {
		return OffBoard, OffBoard, false
	}
	if last.Piece.Owner == pc.Owner {
		return OffBoard, OffBoard, false
	}
	if last.To.Row != from.Row || shared.Abs(last.To.Col-from.Col) != 1 {
		return OffBoard, OffBoard, false
	}
	victim := look(last.To)
	if victim == nil || victim.Type != Pawn || victim.Owner == pc.Owner || victim.ID != last.Piece.ID {
		return OffBoard, OffBoard, false
	}
	dest = Pos(from.Row+pc.Owner.Forward(), last.To.Col)
	if !dest.OnBoard() || look(dest) != nil {
		return OffBoard, OffBoard, false
	}
	return last.To, dest, true
}
