package game

// Reason explains how Evaluate reached its outcome.
type Reason string

const (
	ReasonInProgress   Reason = "in_progress"
	ReasonElimination  Reason = "elimination"
	ReasonBoardCleared Reason = "board_cleared"
	ReasonStalemate    Reason = "stalemate"
)

// Score is the final tally per side. Captured pieces never count.
type Score struct {
	Light int `json:"light"`
	Dark  int `json:"dark"`
}

// Result is the outcome of evaluating a state.
type Result struct {
	GameOver bool   `json:"gameOver"`
	Winner   Winner `json:"winner"`
	Score    Score  `json:"score"`
	Reason   Reason `json:"reason"`
}

// Evaluate decides whether s is finished. A side with no pieces left on the
// board ends the game: it keeps its court, and the other side adds its
// remaining on-board pieces to its court. A player to move with no legal
// move ends the game as a stalemate with no winner, which is distinct from a
// drawn score.
func Evaluate(s GameState) Result {
	lightOn := s.Board.Count(Light)
	darkOn := s.Board.Count(Dark)
	score := Score{Light: len(s.LightCourt), Dark: len(s.DarkCourt)}

	switch {
	case lightOn == 0 && darkOn == 0:
		return Result{GameOver: true, Winner: compare(score), Score: score, Reason: ReasonBoardCleared}
	case lightOn == 0:
		score.Dark += darkOn
		return Result{GameOver: true, Winner: compare(score), Score: score, Reason: ReasonElimination}
	case darkOn == 0:
		score.Light += lightOn
		return Result{GameOver: true, Winner: compare(score), Score: score, Reason: ReasonElimination}
	}

	if !s.hasLegalMove(s.CurrentPlayer) {
		return Result{GameOver: true, Winner: NoWinner, Score: score, Reason: ReasonStalemate}
	}
	return Result{Score: score, Reason: ReasonInProgress}
}

func compare(score Score) Winner {
	switch {
	case score.Light > score.Dark:
		return WinnerLight
	case score.Dark > score.Light:
		return WinnerDark
	default:
		return WinnerDraw
	}
}
