package game

import (
	"fmt"

	"courtchess/internal/shared"
)

// Verdict is the outcome of validating a move.
type Verdict struct {
	Valid  bool
	Reason string
}

func allow() Verdict { return Verdict{Valid: true} }

func reject(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a move for the player to move. to may be OffBoard for a
// scoring exit.
func Validate(from, to Position, pc *Piece, look Lookup, player Color, last *Move) Verdict {
	if !from.OnBoard() {
		return reject("origin %s is not a board square", from)
	}
	if pc == nil {
		return reject("no piece at %s", from)
	}
	if pc.Owner != player {
		return reject("not your turn: %s to move, %s %s at %s", player, pc.Owner, pc.Type, from)
	}
	if to == OffBoard {
		return validateExit(pc, from, look)
	}
	if !to.OnBoard() {
		return reject("destination %s is not a board square", to)
	}
	if to == from {
		return reject("%s at %s must move", pc.Type, from)
	}
	if occupant := look(to); occupant != nil && occupant.Owner == pc.Owner {
		return reject("%s cannot capture own %s at %s", pc.Type, occupant.Type, to)
	}
	if Generate(pc, from, look, last).Has(to) {
		return allow()
	}
	if blocker, ok := firstBlocker(pc, from, to, look); ok {
		return reject("%s path from %s to %s is blocked at %s", pc.Type, from, to, blocker)
	}
	return reject("illegal %s move from %s to %s", pc.Type, from, to)
}

// firstBlocker finds the occupied square interrupting a slider's line, if the
// move is geometrically one the piece could make on an empty board.
func firstBlocker(pc *Piece, from, to Position, look Lookup) (Position, bool) {
	dr := to.Row - from.Row
	dc := to.Col - from.Col
	straight := dr == 0 || dc == 0
	diagonal := shared.Abs(dr) == shared.Abs(dc)
	switch pc.Type {
	case Rook:
		if !straight {
			return OffBoard, false
		}
	case Bishop:
		if !diagonal {
			return OffBoard, false
		}
	case Queen:
		if !straight && !diagonal {
			return OffBoard, false
		}
	case Pawn:
		if dc != 0 || dr != 2*pc.Owner.Forward() {
			return OffBoard, false
		}
	default:
		return OffBoard, false
	}
	for _, sq := range shared.Line(from.Row, from.Col, to.Row, to.Col) {
		p := Pos(sq[0], sq[1])
		if look(p) != nil {
			return p, true
		}
	}
	return OffBoard, false
}

func validateExit(pc *Piece, from Position, look Lookup) Verdict {
	switch pc.Type {
	case Rook:
		if ok, reason := rookCanExit(pc, from, look); !ok {
			return reject("%s", reason)
		}
	case Knight:
		if !knightCanExit(pc, from) {
			return reject("knight at %s cannot jump past the %s edge", from, pc.Owner.Opposite())
		}
	case Bishop:
		if ok, reason := bishopCanExit(pc, from, look); !ok {
			return reject("%s", reason)
		}
	case Queen:
		rookOK, rookReason := rookCanExit(pc, from, look)
		bishopOK, bishopReason := bishopCanExit(pc, from, look)
		if !rookOK && !bishopOK {
			return reject("queen cannot leave the board: %s; %s", rookReason, bishopReason)
		}
	case Pawn:
		return reject("pawns cannot move off the board: promotion is not implemented")
	default:
		return reject("unknown piece type %s", pc.Type)
	}
	return allow()
}

// CanExit reports whether pc may leave the board from its square.
func CanExit(pc *Piece, from Position, look Lookup) bool {
	if pc == nil || !from.OnBoard() {
		return false
	}
	return validateExit(pc, from, look).Valid
}

// rookCanExit requires a clear file toward the opponent's edge.
func rookCanExit(pc *Piece, from Position, look Lookup) (bool, string) {
	for _, sq := range shared.Ray(from.Row, from.Col, shared.Delta{DR: pc.Owner.Forward()}) {
		p := Pos(sq[0], sq[1])
		if look(p) != nil {
			return false, fmt.Sprintf("%s path from %s to the %s edge is blocked at %s", pc.Type, from, pc.Owner.Opposite(), p)
		}
	}
	return true, ""
}

// knightCanExit checks whether any jump lands beyond the opponent's edge. Only
// the landing row matters.
func knightCanExit(pc *Piece, from Position) bool {
	for _, d := range shared.KnightJumps {
		row := from.Row + d.DR
		if pc.Owner == Light && row < 0 {
			return true
		}
		if pc.Owner == Dark && row >= shared.BoardSize {
			return true
		}
	}
	return false
}

// bishopCanExit allows an exit from the opponent's home row, or along a clear
// forward diagonal whose last square is on the middle column. Diagonals that
// run out through a corner do not score.
func bishopCanExit(pc *Piece, from Position, look Lookup) (bool, string) {
	goal := pc.Owner.GoalRow()
	if from.Row == goal {
		return true, ""
	}
	reason := fmt.Sprintf("%s at %s has no diagonal to the %s edge", pc.Type, from, pc.Owner.Opposite())
	for _, dc := range []int{-1, 1} {
		ray := shared.Ray(from.Row, from.Col, shared.Delta{DR: pc.Owner.Forward(), DC: dc})
		if len(ray) == 0 {
			continue
		}
		blocked := false
		for _, sq := range ray {
			p := Pos(sq[0], sq[1])
			if look(p) != nil {
				blocked = true
				reason = fmt.Sprintf("%s diagonal from %s is blocked at %s", pc.Type, from, p)
				break
			}
		}
		if blocked {
			continue
		}
		exit := Pos(ray[len(ray)-1][0], ray[len(ray)-1][1])
		if exit.Row != goal {
			continue
		}
		if exit.Col == shared.MiddleCol {
			return true, ""
		}
		reason = fmt.Sprintf("%s diagonal from %s exits through corner %s; bishops leave only through the middle column", pc.Type, from, exit)
	}
	return false, reason
}
