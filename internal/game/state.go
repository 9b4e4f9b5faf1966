package game

import "time"

// GameState is the aggregate root exchanged between peers. Treat it as a
// value: Apply and the other transitions return a fresh copy and never touch
// their input.
type GameState struct {
	Version       int      `json:"version"`
	GameID        string   `json:"gameId"`
	Board         Board    `json:"board"`
	LightCourt    []*Piece `json:"lightCourt"`
	DarkCourt     []*Piece `json:"darkCourt"`
	CapturedLight []*Piece `json:"capturedLight"`
	CapturedDark  []*Piece `json:"capturedDark"`
	InitialPieces int      `json:"initialPieces"`
	CurrentTurn   int      `json:"currentTurn"`
	CurrentPlayer Color    `json:"currentPlayer"`
	LightPlayer   *Player  `json:"lightPlayer"`
	DarkPlayer    *Player  `json:"darkPlayer"`
	Status        Status   `json:"status"`
	Winner        Winner   `json:"winner"`
	MoveHistory   []Move   `json:"moveHistory"`
	Checksum      string   `json:"checksum"`
}

// Clone returns a deep copy sharing no pointers or slices with s.
func (s GameState) Clone() GameState {
	out := s
	out.Board = s.Board.Clone()
	out.LightCourt = clonePieces(s.LightCourt)
	out.DarkCourt = clonePieces(s.DarkCourt)
	out.CapturedLight = clonePieces(s.CapturedLight)
	out.CapturedDark = clonePieces(s.CapturedDark)
	out.LightPlayer = clonePlayer(s.LightPlayer)
	out.DarkPlayer = clonePlayer(s.DarkPlayer)
	out.MoveHistory = cloneHistory(s.MoveHistory)
	return out
}

// Court returns the pieces a color has scored.
func (s *GameState) Court(c Color) []*Piece {
	if c == Light {
		return s.LightCourt
	}
	return s.DarkCourt
}

// Captured returns the pieces of a color removed without scoring.
func (s *GameState) Captured(c Color) []*Piece {
	if c == Light {
		return s.CapturedLight
	}
	return s.CapturedDark
}

// Player returns the seat for a color, or nil if nobody has joined it.
func (s *GameState) Player(c Color) *Player {
	if c == Light {
		return s.LightPlayer
	}
	return s.DarkPlayer
}

// PieceCount is the number of pieces across board, courts and captured sets.
// Pieces only change location, so it always equals InitialPieces.
func (s *GameState) PieceCount() int {
	return s.Board.Total() + len(s.LightCourt) + len(s.DarkCourt) + len(s.CapturedLight) + len(s.CapturedDark)
}

// LastMove returns the most recent history entry, or nil.
func (s *GameState) LastMove() *Move { return lastMove(s.MoveHistory) }

// Verify recomputes the checksum and compares it with the recorded one.
func (s *GameState) Verify() bool {
	return s.Checksum != "" && s.Checksum == Checksum(s.GameID, s.CurrentTurn, s.Board)
}

// ValidMoves lists legal destinations for the piece on from. OffBoard is
// appended last when the piece may score from there. Empty squares and
// pieces of the player not on move yield an empty slice.
func (s *GameState) ValidMoves(from Position) []Position {
	pc := s.Board.At(from)
	if pc == nil || pc.Owner != s.CurrentPlayer || s.Status != StatusActive {
		return []Position{}
	}
	look := s.Board.Lookup()
	out := Generate(pc, from, look, s.LastMove()).Positions()
	if CanExit(pc, from, look) {
		out = append(out, OffBoard)
	}
	return out
}

// hasLegalMove reports whether color has any on-board or off-board move.
func (s *GameState) hasLegalMove(color Color) bool {
	look := s.Board.Lookup()
	last := s.LastMove()
	for _, pc := range s.Board.Pieces(color) {
		from := pc.Position
		if !Generate(pc, from, look, last).Empty() {
			return true
		}
		if CanExit(pc, from, look) {
			return true
		}
	}
	return false
}

// Apply validates and performs a move for the player on turn, returning the
// resulting state. s is never modified; on error the returned state is the
// zero value and the caller keeps s.
func Apply(s GameState, from, to Position, at time.Time) (GameState, error) {
	if s.Status != StatusActive {
		return GameState{}, &MoveError{From: from, To: to, Reason: ErrGameOver.Error()}
	}
	look := s.Board.Lookup()
	pc := s.Board.At(from)
	verdict := Validate(from, to, pc, look, s.CurrentPlayer, s.LastMove())
	if !verdict.Valid {
		return GameState{}, &MoveError{From: from, To: to, Reason: verdict.Reason}
	}

	next := s.Clone()
	mover := next.Board.At(from)
	record := Move{From: from, To: to, Piece: *mover.Clone(), Timestamp: at.UnixMilli()}

	var victim *Piece
	victimSq := to
	if to.OnBoard() {
		victim = next.Board.At(to)
		if victim == nil && mover.Type == Pawn {
			if epSq, dest, ok := enPassant(mover, from, look, s.LastMove()); ok && dest == to {
				victimSq = epSq
				victim = next.Board.At(epSq)
			}
		}
	}

	next.Board.set(from, nil)
	if victim != nil {
		record.Captured = victim.Clone()
		next.Board.set(victimSq, nil)
		victim.Position = OffBoard
		// Captured pieces go to their own owner's set, not the capturer's.
		if victim.Owner == Light {
			next.CapturedLight = append(next.CapturedLight, victim)
		} else {
			next.CapturedDark = append(next.CapturedDark, victim)
		}
	}

	mover.MoveCount++
	if to.OnBoard() {
		mover.Position = to
		next.Board.set(to, mover)
	} else {
		mover.Position = OffBoard
		if mover.Owner == Light {
			next.LightCourt = append(next.LightCourt, mover)
		} else {
			next.DarkCourt = append(next.DarkCourt, mover)
		}
	}

	next.MoveHistory = append(next.MoveHistory, record)
	next.CurrentTurn++
	next.CurrentPlayer = next.CurrentPlayer.Opposite()
	next.Checksum = Checksum(next.GameID, next.CurrentTurn, next.Board)

	if result := Evaluate(next); result.GameOver {
		next.Status = StatusFinished
		next.Winner = result.Winner
	}
	return next, nil
}

// Join seats a player on the empty side of the board. Seats never change the
// turn or the checksum.
func Join(s GameState, color Color, p Player) (GameState, error) {
	if existing := s.Player(color); existing != nil && existing.ID != p.ID {
		return GameState{}, ErrSeatTaken
	}
	next := s.Clone()
	seat := p
	if color == Light {
		next.LightPlayer = &seat
	} else {
		next.DarkPlayer = &seat
	}
	return next, nil
}
