package protocol

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"courtchess/internal/game"
	"courtchess/internal/shared"
)

const (
	minNameLen = 2
	maxNameLen = 20
)

// ValidatePayload checks the shape of a decoded payload. Every violation is
// reported; use multierr.Errors to list them individually.
func ValidatePayload(p *Payload) error {
	if p == nil {
		return errors.New("payload is missing")
	}
	var err error
	switch p.Type {
	case TypeFullState:
		if p.GameState == nil {
			return errors.New("full_state payload has no gameState")
		}
		if p.PlayerName != "" {
			err = multierr.Append(err, validateName("playerName", p.PlayerName))
		}
		err = multierr.Append(err, ValidateState(p.GameState))
	case TypeDelta:
		if p.Move == nil {
			err = multierr.Append(err, errors.New("delta payload has no move"))
		} else {
			err = multierr.Append(err, validateMove("move", *p.Move))
		}
		if p.Turn < 1 {
			err = multierr.Append(err, fmt.Errorf("delta turn %d must be at least 1", p.Turn))
		}
		err = multierr.Append(err, validateChecksum("checksum", p.Checksum))
	default:
		return fmt.Errorf("unknown payload type %q", p.Type)
	}
	return err
}

// ValidateName checks a display name against the payload rules.
func ValidateName(name string) error { return validateName("name", name) }

// ValidateState checks a GameState received from a peer or read from storage.
// It checks shape only; turn/history agreement and piece totals belong to
// Check, and the checksum is verified by Decode.
func ValidateState(s *game.GameState) error {
	if s == nil {
		return errors.New("gameState is missing")
	}
	var err error
	if s.Version < 1 || s.Version > game.SchemaVersion {
		err = multierr.Append(err, fmt.Errorf("version %d is not supported", s.Version))
	}
	if _, perr := uuid.Parse(s.GameID); perr != nil {
		err = multierr.Append(err, fmt.Errorf("gameId %q is not a UUID", s.GameID))
	}

	seen := make(map[string]string)
	track := func(path string, pc *game.Piece) {
		if prev, ok := seen[pc.ID]; ok {
			err = multierr.Append(err, fmt.Errorf("%s: piece id %q already used at %s", path, pc.ID, prev))
			return
		}
		seen[pc.ID] = path
	}

	for r := 0; r < shared.BoardSize; r++ {
		for c := 0; c < shared.BoardSize; c++ {
			pc := s.Board[r][c]
			if pc == nil {
				continue
			}
			path := fmt.Sprintf("board[%d][%d]", r, c)
			err = multierr.Append(err, validatePiece(path, pc))
			if pc.Position != game.Pos(r, c) {
				err = multierr.Append(err, fmt.Errorf("%s: piece position %s does not match its square", path, pc.Position))
			}
			track(path, pc)
		}
	}

	collections := []struct {
		name   string
		pieces []*game.Piece
		owner  game.Color
	}{
		{"lightCourt", s.LightCourt, game.Light},
		{"darkCourt", s.DarkCourt, game.Dark},
		{"capturedLight", s.CapturedLight, game.Light},
		{"capturedDark", s.CapturedDark, game.Dark},
	}
	for _, coll := range collections {
		if coll.pieces == nil {
			err = multierr.Append(err, fmt.Errorf("%s must be a list", coll.name))
			continue
		}
		for i, pc := range coll.pieces {
			path := fmt.Sprintf("%s[%d]", coll.name, i)
			if pc == nil {
				err = multierr.Append(err, fmt.Errorf("%s: piece is null", path))
				continue
			}
			err = multierr.Append(err, validatePiece(path, pc))
			if pc.Owner != coll.owner {
				err = multierr.Append(err, fmt.Errorf("%s: %s piece in the %s collection", path, pc.Owner, coll.owner))
			}
			if pc.Position.OnBoard() {
				err = multierr.Append(err, fmt.Errorf("%s: off-board piece has position %s", path, pc.Position))
			}
			track(path, pc)
		}
	}

	if s.InitialPieces < 2 || s.InitialPieces > game.MaxPieces {
		err = multierr.Append(err, fmt.Errorf("initialPieces %d must be between 2 and %d", s.InitialPieces, game.MaxPieces))
	}
	if s.CurrentTurn < 0 {
		err = multierr.Append(err, fmt.Errorf("currentTurn %d is negative", s.CurrentTurn))
	}
	if s.CurrentPlayer != game.Light && s.CurrentPlayer != game.Dark {
		err = multierr.Append(err, fmt.Errorf("currentPlayer %d is not a color", s.CurrentPlayer))
	}
	if s.LightPlayer == nil {
		err = multierr.Append(err, errors.New("lightPlayer is missing"))
	} else {
		err = multierr.Append(err, validatePlayer("lightPlayer", s.LightPlayer))
	}
	if s.DarkPlayer != nil {
		err = multierr.Append(err, validatePlayer("darkPlayer", s.DarkPlayer))
	}

	switch s.Status {
	case game.StatusActive:
		if s.Winner != game.NoWinner {
			err = multierr.Append(err, fmt.Errorf("active game has winner %q", s.Winner))
		}
	case game.StatusFinished:
	default:
		err = multierr.Append(err, fmt.Errorf("status %q is not known", s.Status))
	}
	if !s.Winner.Valid() {
		err = multierr.Append(err, fmt.Errorf("winner %q is not known", s.Winner))
	}

	if s.MoveHistory == nil {
		err = multierr.Append(err, errors.New("moveHistory must be a list"))
	}
	for i, m := range s.MoveHistory {
		err = multierr.Append(err, validateMove(fmt.Sprintf("moveHistory[%d]", i), m))
	}
	err = multierr.Append(err, validateChecksum("checksum", s.Checksum))
	return err
}

func validatePiece(path string, pc *game.Piece) error {
	var err error
	if pc.ID == "" {
		err = multierr.Append(err, fmt.Errorf("%s: piece id is empty", path))
	}
	if pc.Type > game.Pawn {
		err = multierr.Append(err, fmt.Errorf("%s: piece type %d is not known", path, pc.Type))
	}
	if pc.Owner != game.Light && pc.Owner != game.Dark {
		err = multierr.Append(err, fmt.Errorf("%s: owner %d is not a color", path, pc.Owner))
	}
	if pc.MoveCount < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: moveCount %d is negative", path, pc.MoveCount))
	}
	return err
}

func validateMove(path string, m game.Move) error {
	var err error
	if !m.From.OnBoard() {
		err = multierr.Append(err, fmt.Errorf("%s: from must be a board square", path))
	}
	if m.To != game.OffBoard && !m.To.OnBoard() {
		err = multierr.Append(err, fmt.Errorf("%s: to %s is not a board square", path, m.To))
	}
	err = multierr.Append(err, validatePiece(path+".piece", &m.Piece))
	if m.Captured != nil {
		err = multierr.Append(err, validatePiece(path+".captured", m.Captured))
		if m.Captured.Owner == m.Piece.Owner {
			err = multierr.Append(err, fmt.Errorf("%s: captured piece belongs to the mover", path))
		}
	}
	if m.Timestamp < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: timestamp %d is negative", path, m.Timestamp))
	}
	return err
}

func validatePlayer(path string, p *game.Player) error {
	err := validateName(path+".name", p.Name)
	if _, perr := uuid.Parse(p.ID); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%s.id %q is not a UUID", path, p.ID))
	}
	return err
}

func validateName(path, name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return fmt.Errorf("%s must be %d to %d characters, got %d", path, minNameLen, maxNameLen, n)
	}
	return nil
}

func validateChecksum(path, sum string) error {
	if sum == "" {
		return fmt.Errorf("%s is empty", path)
	}
	for _, ch := range sum {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'z') {
			return fmt.Errorf("%s %q is not base-36", path, sum)
		}
	}
	return nil
}
