package protocol

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"courtchess/internal/game"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestFullStateRoundTrip(t *testing.T) {
	s := opening(t, 3)

	enc, err := EncodeFullState(s, "Ada")
	require.NoError(t, err)
	assert.Regexp(t, urlSafe, enc)

	p, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, TypeFullState, p.Type)
	assert.Equal(t, "Ada", p.PlayerName)
	require.NotNil(t, p.GameState)
	assert.Equal(t, s, *p.GameState)
	assert.Equal(t, 3, p.TargetTurn())
}

func TestDecodeEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n\t"} {
		p, err := Decode(in)
		assert.Nil(t, p)
		require.ErrorIs(t, err, ErrEmptyPayload)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, KindEmpty, de.Kind)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := map[string]string{
		"NotBase64":  "!!not a payload!!",
		"NotJSON":    mustCompress(t, "plain text"),
		"Truncated":  mustCompress(t, `{"type":"full_state","gameState":{`),
		"EmptyInput": mustCompress(t, ""),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := Decode(in)
			assert.Nil(t, p)
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestDecodeSchema(t *testing.T) {
	t.Run("WrongTypes", func(t *testing.T) {
		p, err := Decode(mustCompress(t, `{"type":"full_state","gameState":{"version":"one"}}`))
		assert.Nil(t, p)
		require.ErrorIs(t, err, ErrSchema)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := Decode(rawPayload(t, map[string]any{"type": "handshake"}))
		require.ErrorIs(t, err, ErrSchema)
		assert.Contains(t, err.Error(), `unknown payload type "handshake"`)
	})

	t.Run("ListsEveryViolation", func(t *testing.T) {
		s := newState(t, testGameID)
		s.GameID = "nope"
		s.CurrentTurn = -1
		s.Status = "paused"
		p, err := Decode(rawPayload(t, Payload{Type: TypeFullState, GameState: &s}))
		assert.Nil(t, p)
		require.ErrorIs(t, err, ErrSchema)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Len(t, multierr.Errors(de.Cause), 3)
	})
}

func TestDecodeChecksumMismatch(t *testing.T) {
	s := opening(t, 1)
	// Slide the light bishop to [1,1] without refreshing the checksum.
	pc := s.Board[2][2]
	s.Board[2][2] = nil
	pc.Position = game.Pos(1, 1)
	s.Board[1][1] = pc

	enc, err := Encode(FullState(s, ""))
	require.NoError(t, err)

	p, err := Decode(enc)
	assert.Nil(t, p)
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.NotErrorIs(t, err, ErrSchema)
}

func TestEncodeRefusesInvalidPayload(t *testing.T) {
	s := newState(t, testGameID)
	s.LightPlayer = nil
	_, err := Encode(FullState(s, ""))
	require.ErrorIs(t, err, ErrSchema)

	_, err = Encode(Payload{Type: TypeFullState})
	require.ErrorIs(t, err, ErrSchema)
}

func TestDeltaRoundTrip(t *testing.T) {
	s := opening(t, 2)
	d, ok := Delta(s)
	require.True(t, ok)
	assert.Equal(t, 2, d.TargetTurn())

	enc, err := Encode(d)
	require.NoError(t, err)
	assert.Regexp(t, urlSafe, enc)

	p, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, TypeDelta, p.Type)
	require.NotNil(t, p.Move)
	assert.Equal(t, *s.LastMove(), *p.Move)
	assert.Equal(t, s.Checksum, p.Checksum)

	_, ok = Delta(newState(t, testGameID))
	assert.False(t, ok, "no delta before the first move")
}

func mustCompress(t *testing.T, text string) string {
	t.Helper()
	out, err := compress([]byte(text))
	require.NoError(t, err)
	return out
}
