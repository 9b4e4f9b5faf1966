package game

import (
	"testing"
	"time"
)

const (
	testGameID  = "00000000-0000-4000-8000-000000000001"
	testLightID = "00000000-0000-4000-8000-0000000000a1"
	testDarkID  = "00000000-0000-4000-8000-0000000000d1"
)

var testClock = time.UnixMilli(1_700_000_000_000)

type placement struct {
	id    string
	pt    PieceType
	owner Color
	row   int
	col   int
}

func newTestGame(t *testing.T) GameState {
	t.Helper()
	s, err := NewGame(Config{
		GameID: testGameID,
		Light:  &Player{Name: "Ada", ID: testLightID},
		Dark:   &Player{Name: "Grace", ID: testDarkID},
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return s
}

// customState replaces the opening board with the given pieces.
func customState(t *testing.T, toMove Color, pieces ...placement) GameState {
	t.Helper()
	s := newTestGame(t)
	s.Board = Board{}
	for _, p := range pieces {
		pos := Pos(p.row, p.col)
		if s.Board.At(pos) != nil {
			t.Fatalf("two pieces placed on %s", pos)
		}
		s.Board.set(pos, &Piece{ID: p.id, Type: p.pt, Owner: p.owner, Position: pos})
	}
	s.CurrentPlayer = toMove
	s.Checksum = Checksum(s.GameID, s.CurrentTurn, s.Board)
	return s
}

func mustApply(t *testing.T, s GameState, from, to Position) GameState {
	t.Helper()
	next, err := Apply(s, from, to, testClock)
	if err != nil {
		t.Fatalf("apply %s -> %s: %v", from, to, err)
	}
	return next
}

func offPieces(n int, owner Color, pt PieceType) []*Piece {
	out := make([]*Piece, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Piece{
			ID:       owner.String() + "-" + pt.String() + "-off-" + string(rune('a'+i)),
			Type:     pt,
			Owner:    owner,
			Position: OffBoard,
		})
	}
	return out
}

func containsPos(list []Position, want Position) bool {
	for _, p := range list {
		if p == want {
			return true
		}
	}
	return false
}
