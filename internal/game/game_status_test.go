package game

import "testing"

func TestEvaluate(t *testing.T) {
	elimination := customState(t, Light,
		placement{"dark-rook-1", Rook, Dark, 0, 0},
		placement{"dark-knight-1", Knight, Dark, 0, 1},
	)
	elimination.DarkCourt = offPieces(1, Dark, Bishop)
	elimination.CapturedLight = offPieces(3, Light, Knight)

	draw := customState(t, Dark, placement{"dark-rook-1", Rook, Dark, 1, 1})
	draw.LightCourt = offPieces(1, Light, Rook)

	cleared := customState(t, Light)
	cleared.LightCourt = offPieces(2, Light, Rook)
	cleared.DarkCourt = offPieces(1, Dark, Rook)

	stalemate := customState(t, Light,
		placement{"light-pawn-1", Pawn, Light, 1, 0},
		placement{"dark-rook-1", Rook, Dark, 0, 0},
	)

	tests := []struct {
		name  string
		state GameState
		want  Result
	}{
		{
			name:  "InProgress",
			state: newTestGame(t),
			want:  Result{Reason: ReasonInProgress},
		},
		{
			name:  "EliminationAddsSurvivorsToCourt",
			state: elimination,
			want:  Result{GameOver: true, Winner: WinnerDark, Score: Score{Light: 0, Dark: 3}, Reason: ReasonElimination},
		},
		{
			name:  "EqualScoresDraw",
			state: draw,
			want:  Result{GameOver: true, Winner: WinnerDraw, Score: Score{Light: 1, Dark: 1}, Reason: ReasonElimination},
		},
		{
			name:  "BoardCleared",
			state: cleared,
			want:  Result{GameOver: true, Winner: WinnerLight, Score: Score{Light: 2, Dark: 1}, Reason: ReasonBoardCleared},
		},
		{
			name:  "StalemateHasNoWinner",
			state: stalemate,
			want:  Result{GameOver: true, Winner: NoWinner, Reason: ReasonStalemate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.state); got != tt.want {
				t.Fatalf("Evaluate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCapturingLastPieceEndsGame(t *testing.T) {
	s := customState(t, Dark,
		placement{"light-rook-1", Rook, Light, 1, 0},
		placement{"dark-rook-1", Rook, Dark, 0, 0},
		placement{"dark-knight-1", Knight, Dark, 0, 2},
	)

	next := mustApply(t, s, Pos(0, 0), Pos(1, 0))

	if next.Status != StatusFinished || next.Winner != WinnerDark {
		t.Fatalf("expected dark to win, got %s/%q", next.Status, next.Winner)
	}
	if got := Evaluate(next).Score; got != (Score{Light: 0, Dark: 2}) {
		t.Fatalf("unexpected score %+v", got)
	}
	if _, err := Apply(next, Pos(1, 0), Pos(2, 0), testClock); err == nil {
		t.Fatalf("moves after the end should be rejected")
	}
}

func TestScoringLastPieceCanWin(t *testing.T) {
	s := customState(t, Light,
		placement{"light-rook-1", Rook, Light, 1, 0},
		placement{"dark-bishop-1", Bishop, Dark, 0, 2},
	)
	s.LightCourt = offPieces(2, Light, Knight)

	next := mustApply(t, s, Pos(1, 0), OffBoard)

	res := Evaluate(next)
	if next.Status != StatusFinished || next.Winner != WinnerLight {
		t.Fatalf("expected light to win, got %s/%q", next.Status, next.Winner)
	}
	if res.Score != (Score{Light: 3, Dark: 1}) {
		t.Fatalf("unexpected score %+v", res.Score)
	}
}

func TestMoveIntoStalemate(t *testing.T) {
	s := customState(t, Dark,
		placement{"light-pawn-1", Pawn, Light, 1, 0},
		placement{"dark-rook-1", Rook, Dark, 0, 2},
	)

	next := mustApply(t, s, Pos(0, 2), Pos(0, 0))

	if next.Status != StatusFinished || next.Winner != NoWinner {
		t.Fatalf("expected a finished game without winner, got %s/%q", next.Status, next.Winner)
	}
	if Evaluate(next).Reason != ReasonStalemate {
		t.Fatalf("expected stalemate, got %s", Evaluate(next).Reason)
	}
}
