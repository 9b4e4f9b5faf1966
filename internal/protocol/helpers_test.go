package protocol

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courtchess/internal/game"
)

const (
	testGameID  = "00000000-0000-4000-8000-000000000001"
	otherGameID = "00000000-0000-4000-8000-000000000002"
	testLightID = "00000000-0000-4000-8000-0000000000a1"
	testDarkID  = "00000000-0000-4000-8000-0000000000d1"
)

var testClock = time.UnixMilli(1_700_000_000_000)

func newState(t *testing.T, gameID string) game.GameState {
	t.Helper()
	s, err := game.NewGame(game.Config{
		GameID: gameID,
		Light:  &game.Player{Name: "Ada", ID: testLightID},
		Dark:   &game.Player{Name: "Grace", ID: testDarkID},
	})
	require.NoError(t, err)
	return s
}

// opening plays up to n moves of a fixed line from the opening position.
func opening(t *testing.T, n int) game.GameState {
	t.Helper()
	line := [][2]game.Position{
		{game.Pos(2, 0), game.Pos(1, 0)},
		{game.Pos(0, 1), game.Pos(2, 0)},
		{game.Pos(1, 0), game.Pos(0, 0)},
	}
	require.LessOrEqual(t, n, len(line))
	s := newState(t, testGameID)
	for _, mv := range line[:n] {
		next, err := game.Apply(s, mv[0], mv[1], testClock)
		require.NoError(t, err)
		s = next
	}
	return s
}

// rawPayload compresses arbitrary JSON so tests can feed Decode values
// Encode would refuse to produce.
func rawPayload(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	out, err := compress(data)
	require.NoError(t, err)
	return out
}

func encodeState(t *testing.T, s game.GameState) *Payload {
	t.Helper()
	enc, err := EncodeFullState(s, "Ada")
	require.NoError(t, err)
	p, err := Decode(enc)
	require.NoError(t, err)
	return p
}
