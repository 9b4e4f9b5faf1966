package game

import (
	"encoding/json"
	"fmt"

	"courtchess/internal/shared"
)

type Color uint8

const (
	Light Color = iota
	Dark
)

func (c Color) Opposite() Color {
	if c == Light {
		return Dark
	}
	return Light
}

func (c Color) Index() int { return int(c) }

func (c Color) String() string {
	if c == Light {
		return "light"
	}
	return "dark"
}

// Forward is the row step a pawn of this color advances by.
func (c Color) Forward() int {
	if c == Light {
		return -1
	}
	return 1
}

// HomeRow is the back row the color starts on.
func (c Color) HomeRow() int {
	if c == Light {
		return shared.BoardSize - 1
	}
	return 0
}

// GoalRow is the opponent's back row, the edge this color scores through.
func (c Color) GoalRow() int { return c.Opposite().HomeRow() }

func ParseColor(s string) (Color, bool) {
	switch s {
	case "light":
		return Light, true
	case "dark":
		return Dark, true
	default:
		return 0, false
	}
}

func (c Color) MarshalText() ([]byte, error) {
	if c != Light && c != Dark {
		return nil, fmt.Errorf("invalid color %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", text)
	}
	*c = parsed
	return nil
}

type PieceType uint8

const (
	Rook PieceType = iota
	Knight
	Bishop
	Queen
	Pawn
)

// AllPieceTypes lists every piece type in declaration order.
var AllPieceTypes = []PieceType{Rook, Knight, Bishop, Queen, Pawn}

func (p PieceType) String() string {
	switch p {
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case Pawn:
		return "pawn"
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

// Letter is the single-letter notation used by text renderers.
func (p PieceType) Letter() string {
	switch p {
	case Rook:
		return "R"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Queen:
		return "Q"
	case Pawn:
		return "P"
	default:
		return "?"
	}
}

func ParsePieceType(s string) (PieceType, bool) {
	switch s {
	case "rook", "r", "R":
		return Rook, true
	case "knight", "n", "N":
		return Knight, true
	case "bishop", "b", "B":
		return Bishop, true
	case "queen", "q", "Q":
		return Queen, true
	case "pawn", "p", "P":
		return Pawn, true
	default:
		return 0, false
	}
}

func (p PieceType) MarshalText() ([]byte, error) {
	if p > Pawn {
		return nil, fmt.Errorf("invalid piece type %d", p)
	}
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	s := string(text)
	for _, pt := range AllPieceTypes {
		if pt.String() == s {
			*p = pt
			return nil
		}
	}
	return fmt.Errorf("invalid piece type %q", s)
}

// Position addresses a board square. OffBoard marks a piece that has left
// play; whether it scored or was captured depends on which collection holds it.
type Position struct {
	Row int
	Col int
}

var OffBoard = Position{Row: -1, Col: -1}

func Pos(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) OnBoard() bool { return shared.InBounds(p.Row, p.Col) }

func (p Position) Index() int { return p.Row*shared.BoardSize + p.Col }

func (p Position) String() string {
	if !p.OnBoard() {
		return "off-board"
	}
	return fmt.Sprintf("[%d,%d]", p.Row, p.Col)
}

func (p Position) MarshalJSON() ([]byte, error) {
	if !p.OnBoard() {
		return []byte("null"), nil
	}
	return json.Marshal([2]int{p.Row, p.Col})
}

func (p *Position) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = OffBoard
		return nil
	}
	var pair [2]int
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	if !shared.InBounds(pair[0], pair[1]) {
		return fmt.Errorf("position [%d,%d] outside the board", pair[0], pair[1])
	}
	*p = Position{Row: pair[0], Col: pair[1]}
	return nil
}

// Piece represents a single piece, on the board or in a court or captured set.
type Piece struct {
	ID        string    `json:"id"`
	Type      PieceType `json:"type"`
	Owner     Color     `json:"owner"`
	Position  Position  `json:"position"`
	MoveCount int       `json:"moveCount"`
}

func (pc *Piece) Clone() *Piece {
	if pc == nil {
		return nil
	}
	clone := *pc
	return &clone
}

// Player identifies one of the two people in a game.
type Player struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Winner is the recorded outcome of a finished game. The zero value means no
// winner, which covers games in progress and stalemates.
type Winner string

const (
	NoWinner    Winner = ""
	WinnerLight Winner = "light"
	WinnerDark  Winner = "dark"
	WinnerDraw  Winner = "draw"
)

func winnerOf(c Color) Winner {
	if c == Light {
		return WinnerLight
	}
	return WinnerDark
}

func (w Winner) MarshalJSON() ([]byte, error) {
	if w == NoWinner {
		return []byte("null"), nil
	}
	return json.Marshal(string(w))
}

func (w *Winner) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*w = NoWinner
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("winner: %w", err)
	}
	*w = Winner(s)
	return nil
}

// Valid reports whether w is one of the known outcomes.
func (w Winner) Valid() bool {
	switch w {
	case NoWinner, WinnerLight, WinnerDark, WinnerDraw:
		return true
	default:
		return false
	}
}
