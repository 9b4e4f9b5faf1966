// Package game implements the court chess rules engine: the 3×3 board model,
// move generation and validation, captures and off-board scoring, victory
// evaluation and state checksums.
package game

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Engine holds the local player's current GameState and replaces it with a
// new value on every accepted move. It is not safe for concurrent use.
type Engine struct {
	state GameState
	now   func() time.Time
	log   *zap.Logger
}

type Option func(*Engine)

// WithLogger routes move logging to l.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides the time source used for move timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine wraps an existing state.
func NewEngine(s GameState, opts ...Option) *Engine {
	e := &Engine{
		state: s.Clone(),
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartEngine creates a new game from cfg and wraps it.
func StartEngine(cfg Config, opts ...Option) (*Engine, error) {
	s, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	e := NewEngine(s, opts...)
	e.log.Debug("new game",
		zap.String("game_id", s.GameID),
		zap.Int("pieces", s.PieceCount()),
	)
	return e, nil
}

// State returns a copy of the current state.
func (e *Engine) State() GameState { return e.state.Clone() }

// MakeMove applies a move for the player on turn. On error the engine state is
// unchanged.
func (e *Engine) MakeMove(from, to Position) error {
	next, err := Apply(e.state, from, to, e.now())
	if err != nil {
		e.log.Debug("move rejected",
			zap.String("game_id", e.state.GameID),
			zap.Int("turn", e.state.CurrentTurn),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Error(err),
		)
		return err
	}
	e.state = next
	last := next.LastMove()
	fields := []zap.Field{
		zap.String("game_id", next.GameID),
		zap.Int("turn", next.CurrentTurn),
		zap.String("piece", last.Piece.ID),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("checksum", next.Checksum),
	}
	if last.Captured != nil {
		fields = append(fields, zap.String("captured", last.Captured.ID))
	}
	e.log.Debug("move applied", fields...)
	if next.Status == StatusFinished {
		e.log.Info("game finished",
			zap.String("game_id", next.GameID),
			zap.String("winner", string(next.Winner)),
		)
	}
	return nil
}

// ValidMoves lists the legal destinations for the piece on from.
func (e *Engine) ValidMoves(from Position) []Position { return e.state.ValidMoves(from) }

// CheckGameEnd evaluates the current state.
func (e *Engine) CheckGameEnd() Result { return Evaluate(e.state) }

// Join seats p on color.
func (e *Engine) Join(color Color, p Player) error {
	next, err := Join(e.state, color, p)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// Restore replaces the current state, e.g. after accepting a peer payload.
func (e *Engine) Restore(s GameState) { e.state = s.Clone() }

func (e *Engine) MarshalJSON() ([]byte, error) { return json.Marshal(e.state) }

// EngineFromJSON rebuilds an engine from the output of MarshalJSON.
func EngineFromJSON(data []byte, opts ...Option) (*Engine, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode engine state: %w", err)
	}
	return NewEngine(s, opts...), nil
}
