// Package shared holds board geometry used by the rules engine.
package shared

// BoardSize is the edge length of the square board.
const BoardSize = 3

// MiddleCol is the only column a bishop may exit the board through.
const MiddleCol = BoardSize / 2

// Delta is a single row/column step.
type Delta struct {
	DR int
	DC int
}

var (
	Orthogonal = [...]Delta{
		{DR: 1, DC: 0},
		{DR: -1, DC: 0},
		{DR: 0, DC: 1},
		{DR: 0, DC: -1},
	}
	Diagonal = [...]Delta{
		{DR: 1, DC: 1},
		{DR: 1, DC: -1},
		{DR: -1, DC: 1},
		{DR: -1, DC: -1},
	}
	KnightJumps = [...]Delta{
		{DR: 2, DC: 1},
		{DR: 1, DC: 2},
		{DR: -1, DC: 2},
		{DR: -2, DC: 1},
		{DR: -2, DC: -1},
		{DR: -1, DC: -2},
		{DR: 1, DC: -2},
		{DR: 2, DC: -1},
	}
)

// InBounds reports whether row and col address a board square.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Ray returns the squares visited walking from (row, col) in direction d,
// excluding the origin, until the walk leaves the board.
func Ray(row, col int, d Delta) [][2]int {
	squares := make([][2]int, 0, BoardSize-1)
	r, c := row+d.DR, col+d.DC
	for InBounds(r, c) {
		squares = append(squares, [2]int{r, c})
		r += d.DR
		c += d.DC
	}
	return squares
}

// Line returns the squares strictly between two aligned squares, or nil when
// they do not share a rank, file or diagonal.
func Line(fromRow, fromCol, toRow, toCol int) [][2]int {
	dr := toRow - fromRow
	dc := toCol - fromCol
	stepR := Normalize(dr)
	stepC := Normalize(dc)

	aligned := false
	switch {
	case dr == 0 && dc != 0:
		aligned = true
	case dc == 0 && dr != 0:
		aligned = true
	case Abs(dr) == Abs(dc) && dr != 0:
		aligned = true
	}
	if !aligned {
		return nil
	}

	distance := max(Abs(dr), Abs(dc)) - 1
	if distance <= 0 {
		return nil
	}
	squares := make([][2]int, 0, distance)
	r, c := fromRow, fromCol
	for i := 0; i < distance; i++ {
		r += stepR
		c += stepC
		squares = append(squares, [2]int{r, c})
	}
	return squares
}

func Normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
