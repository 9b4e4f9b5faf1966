package game

import "courtchess/internal/shared"

// Move is one recorded turn. Piece is the mover as it stood before the move;
// Captured is the removed opponent piece, if any. To is OffBoard for a
// scoring exit. Entries are never modified after they are appended.
type Move struct {
	From      Position `json:"from"`
	To        Position `json:"to"`
	Piece     Piece    `json:"piece"`
	Captured  *Piece   `json:"captured"`
	Timestamp int64    `json:"timestamp"`
}

func (m Move) OffBoard() bool { return !m.To.OnBoard() }

func (m Move) Clone() Move {
	clone := m
	clone.Captured = m.Captured.Clone()
	return clone
}

// isDoubleStep reports whether m was a pawn advancing two rows.
func (m Move) isDoubleStep() bool {
	if m.Piece.Type != Pawn || !m.From.OnBoard() || !m.To.OnBoard() {
		return false
	}
	return m.From.Col == m.To.Col && shared.Abs(m.To.Row-m.From.Row) == 2
}

func cloneHistory(src []Move) []Move {
	out := make([]Move, len(src))
	for i, m := range src {
		out[i] = m.Clone()
	}
	return out
}

func lastMove(history []Move) *Move {
	if len(history) == 0 {
		return nil
	}
	m := history[len(history)-1]
	return &m
}
