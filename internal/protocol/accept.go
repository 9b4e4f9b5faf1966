package protocol

import (
	"fmt"
	"time"

	"courtchess/internal/game"
)

// Accept adopts a decoded payload on top of the local state. local is nil
// when this peer has no game yet, in which case only a full_state can be
// adopted. Otherwise the payload must belong to the same game and advance it
// by exactly one turn.
func Accept(local *game.GameState, p *Payload) (game.GameState, error) {
	if p == nil {
		return game.GameState{}, &DecodeError{Kind: KindEmpty}
	}
	if p.Type == TypeDelta {
		if local == nil {
			return game.GameState{}, ErrNoLocalState
		}
		return ApplyDelta(*local, p)
	}
	if err := ValidatePayload(p); err != nil {
		return game.GameState{}, &DecodeError{Kind: KindSchema, Cause: err}
	}
	incoming := p.GameState
	if err := Check(*incoming); err != nil {
		return game.GameState{}, err
	}
	if !incoming.Verify() {
		return game.GameState{}, &DecodeError{Kind: KindChecksum}
	}
	if local == nil {
		return incoming.Clone(), nil
	}
	if err := expectNext(*local, incoming.GameID, incoming.CurrentTurn); err != nil {
		return game.GameState{}, err
	}
	return keepSeats(*local, *incoming), nil
}

// Resync adopts a full_state for the same game at the local turn or later.
// It is the recovery path after a divergence or a missed link, and never
// moves the local game backwards.
func Resync(local *game.GameState, p *Payload) (game.GameState, error) {
	if p == nil || p.Type != TypeFullState {
		return game.GameState{}, fmt.Errorf("%w: resync needs a full_state payload", ErrSchema)
	}
	if local == nil {
		return Accept(nil, p)
	}
	incoming := p.GameState
	if incoming == nil {
		return game.GameState{}, fmt.Errorf("%w: full_state payload has no gameState", ErrSchema)
	}
	if incoming.GameID != local.GameID {
		return game.GameState{}, fmt.Errorf("%w: local %s, payload %s", ErrGameMismatch, local.GameID, incoming.GameID)
	}
	if incoming.CurrentTurn < local.CurrentTurn {
		return game.GameState{}, fmt.Errorf("%w: local turn %d, payload turn %d", ErrStalePayload, local.CurrentTurn, incoming.CurrentTurn)
	}
	next, err := Accept(nil, p)
	if err != nil {
		return game.GameState{}, err
	}
	return keepSeats(*local, next), nil
}

// ApplyDelta replays a delta's move with the rules engine and confirms the
// result against the checksum the sender computed.
func ApplyDelta(local game.GameState, p *Payload) (game.GameState, error) {
	if err := ValidatePayload(p); err != nil {
		return game.GameState{}, &DecodeError{Kind: KindSchema, Cause: err}
	}
	if p.Type != TypeDelta {
		return game.GameState{}, fmt.Errorf("%w: expected a delta payload, got %q", ErrSchema, p.Type)
	}
	if err := expectNext(local, local.GameID, p.Turn); err != nil {
		return game.GameState{}, err
	}
	next, err := game.Apply(local, p.Move.From, p.Move.To, time.UnixMilli(p.Move.Timestamp))
	if err != nil {
		return game.GameState{}, fmt.Errorf("replay delta: %w", err)
	}
	if next.Checksum != p.Checksum {
		return game.GameState{}, &DecodeError{
			Kind:  KindChecksum,
			Cause: fmt.Errorf("delta carries %q, replay produced %q", p.Checksum, next.Checksum),
		}
	}
	return next, nil
}

// keepSeats fills seats the sender has not heard about yet from local. A
// player who joined by link is unknown to the other side until their first
// move reaches it.
func keepSeats(local, incoming game.GameState) game.GameState {
	next := incoming.Clone()
	for _, c := range []game.Color{game.Light, game.Dark} {
		if next.Player(c) != nil {
			continue
		}
		if seat := local.Player(c); seat != nil {
			if joined, err := game.Join(next, c, *seat); err == nil {
				next = joined
			}
		}
	}
	return next
}

func expectNext(local game.GameState, gameID string, turn int) error {
	if gameID != local.GameID {
		return fmt.Errorf("%w: local %s, payload %s", ErrGameMismatch, local.GameID, gameID)
	}
	want := local.CurrentTurn + 1
	switch {
	case turn < want:
		return fmt.Errorf("%w: expected turn %d, payload turn %d", ErrStalePayload, want, turn)
	case turn > want:
		return fmt.Errorf("%w: expected turn %d, payload turn %d", ErrTurnGap, want, turn)
	}
	return nil
}
