// Package protocol is the peer synchronization layer: payload shapes, the
// compressed URL-fragment codec, schema validation at the boundary, divergence
// checks and the turn-ordering rules for adopting a peer's state.
package protocol

import "courtchess/internal/game"

type PayloadType string

const (
	TypeFullState PayloadType = "full_state"
	// TypeDelta is the legacy incremental shape. Decoders still accept it;
	// EncodeFullState is what senders use.
	TypeDelta PayloadType = "delta"
)

// Payload is the unit carried in a URL fragment. A full_state payload sets
// GameState and optionally PlayerName; a delta sets Move, Turn and Checksum.
type Payload struct {
	Type       PayloadType     `json:"type"`
	GameState  *game.GameState `json:"gameState,omitempty"`
	PlayerName string          `json:"playerName,omitempty"`
	Move       *game.Move      `json:"move,omitempty"`
	Turn       int             `json:"turn,omitempty"`
	Checksum   string          `json:"checksum,omitempty"`
}

// FullState builds a full_state payload around a copy of s.
func FullState(s game.GameState, playerName string) Payload {
	clone := s.Clone()
	return Payload{Type: TypeFullState, GameState: &clone, PlayerName: playerName}
}

// Delta builds a delta payload for the last move of s.
func Delta(s game.GameState) (Payload, bool) {
	last := s.LastMove()
	if last == nil {
		return Payload{}, false
	}
	m := last.Clone()
	return Payload{Type: TypeDelta, Move: &m, Turn: s.CurrentTurn, Checksum: s.Checksum}, true
}

// TargetTurn returns the turn the payload brings the receiver to.
func (p *Payload) TargetTurn() int {
	if p.Type == TypeFullState && p.GameState != nil {
		return p.GameState.CurrentTurn
	}
	return p.Turn
}
