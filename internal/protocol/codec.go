package protocol

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"courtchess/internal/game"
)

// maxDecodedBytes caps the inflated size of a payload.
const maxDecodedBytes = 1 << 20

// fragment uses the URL-safe base64 alphabet without padding, so encoded
// payloads only contain [A-Za-z0-9_-].
var fragment = base64.RawURLEncoding

// EncodeFullState emits the payload the sender shares after a move. It refuses
// to emit a state that fails the divergence checks.
func EncodeFullState(s game.GameState, playerName string) (string, error) {
	if err := Check(s); err != nil {
		return "", err
	}
	return Encode(FullState(s, playerName))
}

// Encode validates p, serializes it to JSON and compresses it into a URL
// fragment safe string.
func Encode(p Payload) (string, error) {
	if err := ValidatePayload(&p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSchema, err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return compress(data)
}

// Decode reverses Encode. It never returns a payload together with an error:
// on any failure the caller gets nil and a *DecodeError.
func Decode(s string) (*Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &DecodeError{Kind: KindEmpty}
	}
	data, err := decompress(s)
	if err != nil {
		return nil, &DecodeError{Kind: KindCorrupt, Cause: err}
	}
	if !json.Valid(data) {
		return nil, &DecodeError{Kind: KindCorrupt, Cause: errors.New("inflated payload is not JSON")}
	}
	if err := ValidateShape(data); err != nil {
		return nil, &DecodeError{Kind: KindSchema, Cause: err}
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &DecodeError{Kind: KindSchema, Cause: err}
	}
	if err := ValidatePayload(&p); err != nil {
		return nil, &DecodeError{Kind: KindSchema, Cause: err}
	}
	if p.Type == TypeFullState {
		want := game.Checksum(p.GameState.GameID, p.GameState.CurrentTurn, p.GameState.Board)
		if want != p.GameState.Checksum {
			return nil, &DecodeError{
				Kind:  KindChecksum,
				Cause: fmt.Errorf("payload carries %q, board recomputes to %q", p.GameState.Checksum, want),
			}
		}
	}
	return &p, nil
}

func compress(data []byte) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("compress payload: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress payload: %w", err)
	}
	return fragment.EncodeToString(buf.Bytes()), nil
}

func decompress(s string) ([]byte, error) {
	raw, err := fragment.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not a payload string: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxDecodedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if len(data) > maxDecodedBytes {
		return nil, fmt.Errorf("inflated payload exceeds %d bytes", maxDecodedBytes)
	}
	if len(data) == 0 {
		return nil, errors.New("inflated payload is empty")
	}
	return data, nil
}
