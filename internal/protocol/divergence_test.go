package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtchess/internal/game"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *game.GameState)
		want   error
	}{
		{
			name:   "TurnAheadOfHistory",
			mutate: func(s *game.GameState) { s.CurrentTurn = 5 },
			want:   ErrTurnMismatch,
		},
		{
			name:   "HistoryAheadOfTurn",
			mutate: func(s *game.GameState) { s.MoveHistory = append(s.MoveHistory, s.MoveHistory[0]) },
			want:   ErrTurnMismatch,
		},
		{
			name: "TooManyPieces",
			mutate: func(s *game.GameState) {
				s.LightCourt = append(s.LightCourt, &game.Piece{ID: "light-queen-1", Type: game.Queen, Owner: game.Light, Position: game.OffBoard})
			},
			want: ErrPieceOverflow,
		},
		{
			name: "DuplicatedPiece",
			mutate: func(s *game.GameState) {
				dup := s.CapturedDark[0].Clone()
				s.DarkCourt = append(s.DarkCourt, dup)
				s.Board[0][2] = nil
			},
			want: ErrPieceOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := opening(t, 3)
			require.NoError(t, Check(s))

			tt.mutate(&s)
			err := Check(s)
			require.ErrorIs(t, err, ErrDivergence)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), Recovery)

			var de *DivergenceError
			require.True(t, errors.As(err, &de))
			assert.NotEmpty(t, de.Problems)
		})
	}
}

func TestCheckUsesStartingAllotment(t *testing.T) {
	s, err := game.NewGame(game.Config{
		GameID:      testGameID,
		Light:       &game.Player{Name: "Ada", ID: testLightID},
		LightLineup: game.Lineup{game.Rook, game.Knight},
		DarkLineup:  game.Lineup{game.Rook, game.Knight},
	})
	require.NoError(t, err)
	require.Equal(t, 4, s.InitialPieces)
	require.NoError(t, Check(s))

	grown := s.Clone()
	grown.LightCourt = append(grown.LightCourt, &game.Piece{ID: "light-queen-1", Type: game.Queen, Owner: game.Light, Position: game.OffBoard})
	assert.LessOrEqual(t, grown.PieceCount(), game.MaxPieces)
	require.ErrorIs(t, Check(grown), ErrPieceOverflow)

	shrunk := s.Clone()
	shrunk.Board[2][1] = nil
	err = Check(shrunk)
	require.ErrorIs(t, err, ErrPieceMissing)
	assert.Contains(t, err.Error(), "3 pieces, game started with 4")

	enc, err := EncodeFullState(grown, "Ada")
	assert.Empty(t, enc)
	require.ErrorIs(t, err, ErrDivergence)
}

func TestEncodeFullStateRefusesDivergedState(t *testing.T) {
	s := opening(t, 2)
	s.CurrentTurn = 1

	enc, err := EncodeFullState(s, "Ada")
	assert.Empty(t, enc)
	require.ErrorIs(t, err, ErrTurnMismatch)
}
