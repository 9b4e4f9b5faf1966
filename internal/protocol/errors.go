package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload     = errors.New("empty payload")
	ErrCorrupt          = errors.New("corrupt payload")
	ErrSchema           = errors.New("payload failed schema validation")
	ErrChecksumMismatch = errors.New("checksum mismatch")

	ErrGameMismatch = errors.New("payload belongs to a different game")
	ErrStalePayload = errors.New("payload is not newer than the local state")
	ErrTurnGap      = errors.New("payload skips turns")
	ErrNoLocalState = errors.New("delta payload needs a local game state")

	ErrDivergence    = errors.New("local state diverged")
	ErrTurnMismatch  = errors.New("turn does not match move history length")
	ErrPieceOverflow = errors.New("piece count exceeds the initial allotment")
	ErrPieceMissing  = errors.New("piece count is below the initial allotment")
)

// Kind classifies why a payload was refused.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindCorrupt
	KindSchema
	KindChecksum
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCorrupt:
		return "corrupt"
	case KindSchema:
		return "schema"
	case KindChecksum:
		return "checksum"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindEmpty:
		return ErrEmptyPayload
	case KindSchema:
		return ErrSchema
	case KindChecksum:
		return ErrChecksumMismatch
	default:
		return ErrCorrupt
	}
}

// DecodeError is returned by Decode. A checksum failure means the payload
// was well formed but cannot be trusted; the fix is to ask the sender for a
// fresh full_state.
type DecodeError struct {
	Kind  Kind
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause == nil {
		return "decode payload: " + e.Kind.sentinel().Error()
	}
	return fmt.Sprintf("decode payload: %s: %v", e.Kind.sentinel(), e.Cause)
}

func (e *DecodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Cause}
}

// Recovery is the action suggested to the user when local state cannot be
// trusted.
const Recovery = "request a fresh full_state from your opponent"

// DivergenceError blocks a payload from being emitted or adopted.
type DivergenceError struct {
	Problems []error
}

func (e *DivergenceError) Error() string {
	msg := ErrDivergence.Error()
	for _, p := range e.Problems {
		msg += "; " + p.Error()
	}
	return msg + "; " + Recovery
}

func (e *DivergenceError) Unwrap() []error {
	return append([]error{ErrDivergence}, e.Problems...)
}
