package game

import (
	"fmt"

	"github.com/google/uuid"

	"courtchess/internal/shared"
)

// SchemaVersion is the GameState layout version carried in every payload.
const SchemaVersion = 1

// MaxPieces bounds the pieces in one game: a lineup fills at most a side's
// back row.
const MaxPieces = 2 * shared.BoardSize

// DefaultLineup is the base three-piece selection for each side.
var DefaultLineup = Lineup{Rook, Knight, Bishop}

// Lineup is the piece selection for one side, placed on its back row in
// column order.
type Lineup []PieceType

func (l Lineup) validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: lineup is empty", ErrInvalidConfig)
	}
	if len(l) > shared.BoardSize {
		return fmt.Errorf("%w: lineup has %d pieces, at most %d fit on a back row", ErrInvalidConfig, len(l), shared.BoardSize)
	}
	for _, pt := range l {
		if pt > Pawn {
			return fmt.Errorf("%w: unknown piece type %d", ErrInvalidConfig, pt)
		}
	}
	return nil
}

// ParseLineup reads a lineup written as piece letters, e.g. "RNB".
func ParseLineup(s string) (Lineup, error) {
	out := make(Lineup, 0, len(s))
	for _, ch := range s {
		pt, ok := ParsePieceType(string(ch))
		if !ok {
			return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidConfig, ch)
		}
		out = append(out, pt)
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Config describes a new game.
type Config struct {
	GameID string
	Light  *Player
	Dark   *Player
	// Lineups per side; a nil entry falls back to DefaultLineup.
	LightLineup Lineup
	DarkLineup  Lineup
}

// NewGame builds the opening state: both lineups on their back rows, empty
// courts and history, light to move.
func NewGame(cfg Config) (GameState, error) {
	gameID := cfg.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	} else if _, err := uuid.Parse(gameID); err != nil {
		return GameState{}, fmt.Errorf("%w: game id %q: %v", ErrInvalidConfig, gameID, err)
	}

	lineups := [2]Lineup{cfg.LightLineup, cfg.DarkLineup}
	for i := range lineups {
		if lineups[i] == nil {
			lineups[i] = DefaultLineup
		}
		if err := lineups[i].validate(); err != nil {
			return GameState{}, err
		}
	}

	s := GameState{
		Version:       SchemaVersion,
		GameID:        gameID,
		LightCourt:    []*Piece{},
		DarkCourt:     []*Piece{},
		CapturedLight: []*Piece{},
		CapturedDark:  []*Piece{},
		CurrentPlayer: Light,
		LightPlayer:   clonePlayer(cfg.Light),
		DarkPlayer:    clonePlayer(cfg.Dark),
		Status:        StatusActive,
		MoveHistory:   []Move{},
	}
	for _, color := range []Color{Light, Dark} {
		counts := make(map[PieceType]int)
		for col, pt := range lineups[color.Index()] {
			counts[pt]++
			pos := Pos(color.HomeRow(), col)
			s.Board.set(pos, &Piece{
				ID:       fmt.Sprintf("%s-%s-%d", color, pt, counts[pt]),
				Type:     pt,
				Owner:    color,
				Position: pos,
			})
		}
	}
	s.InitialPieces = s.PieceCount()
	s.Checksum = Checksum(s.GameID, s.CurrentTurn, s.Board)
	return s, nil
}

func clonePlayer(p *Player) *Player {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
