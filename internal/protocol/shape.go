package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"courtchess/internal/shared"
)

// field is one key an encoded object must carry.
type field struct {
	name     string
	nullable bool
}

var (
	stateFields = []field{
		{name: "version"},
		{name: "gameId"},
		{name: "board"},
		{name: "lightCourt"},
		{name: "darkCourt"},
		{name: "capturedLight"},
		{name: "capturedDark"},
		{name: "initialPieces"},
		{name: "currentTurn"},
		{name: "currentPlayer"},
		{name: "lightPlayer"},
		{name: "darkPlayer", nullable: true},
		{name: "status"},
		{name: "winner", nullable: true},
		{name: "moveHistory"},
		{name: "checksum"},
	}
	pieceFields = []field{
		{name: "id"},
		{name: "type"},
		{name: "owner"},
		{name: "position", nullable: true},
		{name: "moveCount"},
	}
	moveFields = []field{
		{name: "from"},
		{name: "to", nullable: true},
		{name: "piece"},
		{name: "captured", nullable: true},
		{name: "timestamp"},
	}
	playerFields = []field{
		{name: "name"},
		{name: "id"},
	}
)

// ValidateShape checks the encoded JSON of a payload before it is decoded
// into Go values, where a missing key would silently become a zero value.
func ValidateShape(data []byte) error {
	doc, err := object("payload", data, []field{{name: "type"}})
	if err != nil {
		return err
	}
	var typ PayloadType
	if err := json.Unmarshal(doc["type"], &typ); err != nil {
		return errors.New("payload.type must be a string")
	}
	switch typ {
	case TypeFullState:
		raw, ok := doc["gameState"]
		if !ok || isNull(raw) {
			return errors.New("full_state payload has no gameState")
		}
		return stateShape("gameState", raw)
	case TypeDelta:
		var err error
		for _, key := range []string{"move", "turn", "checksum"} {
			if raw, ok := doc[key]; !ok || isNull(raw) {
				err = multierr.Append(err, fmt.Errorf("payload.%s is missing", key))
			}
		}
		if raw, ok := doc["move"]; ok && !isNull(raw) {
			err = multierr.Append(err, moveShape("move", raw))
		}
		return err
	}
	// Unknown types are reported by ValidatePayload.
	return nil
}

// ValidateStateShape checks the encoded JSON of a GameState.
func ValidateStateShape(data []byte) error {
	return stateShape("gameState", data)
}

func stateShape(path string, raw json.RawMessage) error {
	doc, err := object(path, raw, stateFields)
	if doc == nil {
		return err
	}
	if b, ok := doc["board"]; ok && !isNull(b) {
		err = multierr.Append(err, boardShape(path+".board", b))
	}
	for _, name := range []string{"lightCourt", "darkCourt", "capturedLight", "capturedDark"} {
		err = multierr.Append(err, listShape(path+"."+name, doc[name], pieceShape))
	}
	err = multierr.Append(err, listShape(path+".moveHistory", doc["moveHistory"], moveShape))
	for _, name := range []string{"lightPlayer", "darkPlayer"} {
		if p, ok := doc[name]; ok && !isNull(p) {
			_, perr := object(path+"."+name, p, playerFields)
			err = multierr.Append(err, perr)
		}
	}
	return err
}

func boardShape(path string, raw json.RawMessage) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("%s must be a list of rows", path)
	}
	if len(rows) != shared.BoardSize {
		return fmt.Errorf("%s has %d rows, want %d", path, len(rows), shared.BoardSize)
	}
	var err error
	for r, row := range rows {
		var cells []json.RawMessage
		if uerr := json.Unmarshal(row, &cells); uerr != nil || isNull(row) {
			err = multierr.Append(err, fmt.Errorf("%s[%d] must be a list of cells", path, r))
			continue
		}
		if len(cells) != shared.BoardSize {
			err = multierr.Append(err, fmt.Errorf("%s[%d] has %d cells, want %d", path, r, len(cells), shared.BoardSize))
			continue
		}
		for c, cell := range cells {
			if !isNull(cell) {
				err = multierr.Append(err, pieceShape(fmt.Sprintf("%s[%d][%d]", path, r, c), cell))
			}
		}
	}
	return err
}

func listShape(path string, raw json.RawMessage, elem func(string, json.RawMessage) error) error {
	if raw == nil || isNull(raw) {
		// Reported by object.
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%s must be a list", path)
	}
	var err error
	for i, item := range items {
		err = multierr.Append(err, elem(fmt.Sprintf("%s[%d]", path, i), item))
	}
	return err
}

func pieceShape(path string, raw json.RawMessage) error {
	_, err := object(path, raw, pieceFields)
	return err
}

func moveShape(path string, raw json.RawMessage) error {
	doc, err := object(path, raw, moveFields)
	if doc == nil {
		return err
	}
	if pc, ok := doc["piece"]; ok && !isNull(pc) {
		err = multierr.Append(err, pieceShape(path+".piece", pc))
	}
	if pc, ok := doc["captured"]; ok && !isNull(pc) {
		err = multierr.Append(err, pieceShape(path+".captured", pc))
	}
	return err
}

// object decodes raw as a JSON object and reports every required key that is
// absent, or null when it may not be. The map is nil only when raw is not an
// object at all.
func object(path string, raw json.RawMessage, fields []field) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%s must be an object", path)
	}
	var err error
	for _, f := range fields {
		v, ok := doc[f.name]
		switch {
		case !ok:
			err = multierr.Append(err, fmt.Errorf("%s.%s is missing", path, f.name))
		case !f.nullable && isNull(v):
			err = multierr.Append(err, fmt.Errorf("%s.%s is null", path, f.name))
		}
	}
	return doc, err
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
