package main

import (
	"fmt"
	"io"
	"strings"

	"courtchess/internal/game"
	"courtchess/internal/shared"
)

// render prints the board with light pieces in upper case and dark pieces in
// lower case, followed by the courts, captured sets and game status.
func render(w io.Writer, s game.GameState) {
	fmt.Fprintf(w, "game %s  turn %d  checksum %s\n\n", s.GameID, s.CurrentTurn, s.Checksum)
	fmt.Fprint(w, "   ")
	for c := 0; c < shared.BoardSize; c++ {
		fmt.Fprintf(w, " %d", c)
	}
	fmt.Fprintln(w)
	for r := 0; r < shared.BoardSize; r++ {
		fmt.Fprintf(w, " %d ", r)
		for c := 0; c < shared.BoardSize; c++ {
			fmt.Fprintf(w, " %s", glyph(s.Board.At(game.Pos(r, c))))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	for _, c := range []game.Color{game.Light, game.Dark} {
		fmt.Fprintf(w, "%-5s %-20s court: %-8s captured: %s\n",
			c, seatName(s.Player(c)), glyphs(s.Court(c)), glyphs(s.Captured(c)))
	}

	res := game.Evaluate(s)
	if s.Status == game.StatusActive {
		fmt.Fprintf(w, "\n%s to move\n", s.CurrentPlayer)
		return
	}
	switch res.Winner {
	case game.WinnerLight, game.WinnerDark:
		fmt.Fprintf(w, "\n%s wins %d:%d (%s)\n", res.Winner, res.Score.Light, res.Score.Dark, res.Reason)
	case game.WinnerDraw:
		fmt.Fprintf(w, "\ndraw %d:%d (%s)\n", res.Score.Light, res.Score.Dark, res.Reason)
	default:
		fmt.Fprintf(w, "\ngame over, no winner (%s)\n", res.Reason)
	}
}

func glyph(pc *game.Piece) string {
	if pc == nil {
		return "."
	}
	if pc.Owner == game.Dark {
		return strings.ToLower(pc.Type.Letter())
	}
	return pc.Type.Letter()
}

func glyphs(pieces []*game.Piece) string {
	if len(pieces) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, pc := range pieces {
		b.WriteString(glyph(pc))
	}
	return b.String()
}

func seatName(p *game.Player) string {
	if p == nil {
		return "(open seat)"
	}
	return p.Name
}
