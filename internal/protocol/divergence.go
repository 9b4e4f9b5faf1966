package protocol

import (
	"fmt"

	"courtchess/internal/game"
)

// Check runs the pre-send consistency checks on a state. It needs nothing from
// the opponent: a failure means the local copy is already untrustworthy and
// must be replaced by a fresh full_state rather than shared.
func Check(s game.GameState) error {
	var problems []error
	if s.CurrentTurn != len(s.MoveHistory) {
		problems = append(problems, fmt.Errorf("%w: turn %d, %d moves recorded", ErrTurnMismatch, s.CurrentTurn, len(s.MoveHistory)))
	}
	switch n := s.PieceCount(); {
	case n > s.InitialPieces:
		problems = append(problems, fmt.Errorf("%w: %d pieces, game started with %d", ErrPieceOverflow, n, s.InitialPieces))
	case n < s.InitialPieces:
		problems = append(problems, fmt.Errorf("%w: %d pieces, game started with %d", ErrPieceMissing, n, s.InitialPieces))
	}
	if dup, ok := duplicatePiece(s); ok {
		problems = append(problems, fmt.Errorf("%w: piece %q appears more than once", ErrPieceOverflow, dup))
	}
	if len(problems) == 0 {
		return nil
	}
	return &DivergenceError{Problems: problems}
}

func duplicatePiece(s game.GameState) (string, bool) {
	seen := make(map[string]struct{}, game.MaxPieces)
	visit := func(pc *game.Piece) (string, bool) {
		if pc == nil {
			return "", false
		}
		if _, ok := seen[pc.ID]; ok {
			return pc.ID, true
		}
		seen[pc.ID] = struct{}{}
		return "", false
	}
	for _, color := range []game.Color{game.Light, game.Dark} {
		for _, pc := range s.Board.Pieces(color) {
			if id, dup := visit(pc); dup {
				return id, true
			}
		}
	}
	for _, set := range [][]*game.Piece{s.LightCourt, s.DarkCourt, s.CapturedLight, s.CapturedDark} {
		for _, pc := range set {
			if id, dup := visit(pc); dup {
				return id, true
			}
		}
	}
	return "", false
}
