package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtchess/internal/game"
)

func TestAcceptNextTurn(t *testing.T) {
	local := opening(t, 1)
	peer := opening(t, 2)

	got, err := Accept(&local, encodeState(t, peer))
	require.NoError(t, err)
	assert.Equal(t, peer, got)
}

func TestAcceptWithoutLocalState(t *testing.T) {
	peer := opening(t, 3)
	got, err := Accept(nil, encodeState(t, peer))
	require.NoError(t, err)
	assert.Equal(t, peer, got)
}

func TestAcceptRefusals(t *testing.T) {
	tests := []struct {
		name  string
		local game.GameState
		peer  game.GameState
		want  error
	}{
		{"SameTurn", opening(t, 2), opening(t, 2), ErrStalePayload},
		{"OlderTurn", opening(t, 3), opening(t, 1), ErrStalePayload},
		{"SkippedTurn", opening(t, 1), opening(t, 3), ErrTurnGap},
		{"OtherGame", newState(t, otherGameID), opening(t, 1), ErrGameMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := tt.local
			before := local.Clone()
			_, err := Accept(&local, encodeState(t, tt.peer))
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, local, "local state must be left alone")
		})
	}
}

func TestAcceptVerifiesUndecodedPayloads(t *testing.T) {
	local := opening(t, 1)
	peer := opening(t, 2)
	peer.Checksum = "0"

	_, err := Accept(&local, &Payload{Type: TypeFullState, GameState: &peer})
	require.ErrorIs(t, err, ErrChecksumMismatch)

	diverged := opening(t, 2)
	diverged.MoveHistory = diverged.MoveHistory[:1]
	_, err = Accept(&local, &Payload{Type: TypeFullState, GameState: &diverged})
	require.ErrorIs(t, err, ErrDivergence)
}

func TestResync(t *testing.T) {
	tests := []struct {
		name    string
		local   game.GameState
		peer    game.GameState
		wantErr error
	}{
		{"JumpsAhead", opening(t, 1), opening(t, 3), nil},
		{"SameTurnReplaces", opening(t, 2), opening(t, 2), nil},
		{"NeverBackwards", opening(t, 3), opening(t, 1), ErrStalePayload},
		{"OtherGame", newState(t, otherGameID), opening(t, 2), ErrGameMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resync(&tt.local, encodeState(t, tt.peer))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.peer, got)
		})
	}
}

func TestResyncNeedsFullState(t *testing.T) {
	local := opening(t, 1)
	d, ok := Delta(opening(t, 2))
	require.True(t, ok)
	_, err := Resync(&local, &d)
	require.ErrorIs(t, err, ErrSchema)
}

func TestApplyDelta(t *testing.T) {
	local := opening(t, 1)
	peer := opening(t, 2)
	d, ok := Delta(peer)
	require.True(t, ok)

	enc, err := Encode(d)
	require.NoError(t, err)
	p, err := Decode(enc)
	require.NoError(t, err)

	got, err := Accept(&local, p)
	require.NoError(t, err)
	assert.Equal(t, peer, got)
}

func TestApplyDeltaRefusals(t *testing.T) {
	local := opening(t, 1)
	peer := opening(t, 2)

	t.Run("NoLocalState", func(t *testing.T) {
		d, _ := Delta(peer)
		_, err := Accept(nil, &d)
		require.ErrorIs(t, err, ErrNoLocalState)
	})

	t.Run("ChecksumDisagrees", func(t *testing.T) {
		d, _ := Delta(peer)
		d.Checksum = "zzz"
		_, err := ApplyDelta(local, &d)
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("IllegalMove", func(t *testing.T) {
		d, _ := Delta(peer)
		d.Move.To = game.Pos(1, 1)
		_, err := ApplyDelta(local, &d)
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("WrongTurn", func(t *testing.T) {
		d, _ := Delta(opening(t, 3))
		_, err := ApplyDelta(local, &d)
		require.ErrorIs(t, err, ErrTurnGap)
	})

	t.Run("NotADelta", func(t *testing.T) {
		full := FullState(peer, "")
		_, err := ApplyDelta(local, &full)
		require.ErrorIs(t, err, ErrSchema)
	})
}

func TestAcceptKeepsLocallyKnownSeats(t *testing.T) {
	local := opening(t, 1)
	peer := opening(t, 2)
	peer.DarkPlayer = nil

	got, err := Accept(&local, encodeState(t, peer))
	require.NoError(t, err)
	require.NotNil(t, got.DarkPlayer)
	assert.Equal(t, testDarkID, got.DarkPlayer.ID)
	assert.Equal(t, peer.Checksum, got.Checksum)
}
