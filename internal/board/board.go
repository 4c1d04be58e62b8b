package board

import (
	"fmt"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// WinLines are the eight winning triples: three rows, three columns and two
// diagonals, as indices into a row-major board.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major: row r, column c maps to index 3*r+c.
// The zero value is an empty board; a new round always starts from one, there
// is no reset operation.
type Board [9]string

// New returns an empty board with X to move.
func New() Board {
	return Board{}
}

// Turn returns the mark that moves next, derived from the mark counts.
// PlayerX always opens and moves strictly alternate, so X is to move exactly
// when both sides have placed the same number of marks. Turn is never stored
// separately, which rules out the board and the reported turn disagreeing.
func (that Board) Turn() string {
	xCount, oCount := that.countMarks()
	if xCount == oCount {
		return PlayerX
	}

	return PlayerO
}

// Evaluate returns the winning mark if any line is complete, PlayerTie when
// the board is full with no winner, and EmptyCell while the game is open.
// The result is recomputed from the cells on every call, never cached.
func (that Board) Evaluate() string {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range that {
		if cell == EmptyCell {
			return EmptyCell
		}
	}

	return PlayerTie
}

// IsFinished reports whether the board is terminal.
func (that Board) IsFinished() bool {
	return that.Evaluate() != EmptyCell
}

// EmptyIndices returns the free cells in ascending order.
func (that Board) EmptyIndices() []int {
	indices := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			indices = append(indices, i)
		}
	}

	return indices
}

// Apply places mark on cell and returns the resulting board, leaving the
// receiver untouched. It fails with apperror.ErrGameAlreadyOver on a terminal
// board and with apperror.ErrInvalidMove on an out-of-range index, an
// occupied cell, or a move made out of turn.
func (that Board) Apply(cell int, mark string) (Board, error) {
	if that.IsFinished() {
		return that, apperror.ErrGameAlreadyOver
	}

	if cell < 0 || cell >= len(that) {
		return that, fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, cell)
	}

	if that[cell] != EmptyCell {
		return that, fmt.Errorf("%w: cell %d is occupied", apperror.ErrInvalidMove, cell)
	}

	if mark != that.Turn() {
		return that, fmt.Errorf("%w: it is not %q's turn", apperror.ErrInvalidMove, mark)
	}

	that[cell] = mark

	return that, nil
}

// IsWellFormed reports whether the board could have been reached by legal
// alternating play: only known marks on the cells, and X leading O by zero
// or one placed marks.
func (that Board) IsWellFormed() bool {
	for _, cell := range that {
		if cell != EmptyCell && cell != PlayerX && cell != PlayerO {
			return false
		}
	}

	xCount, oCount := that.countMarks()

	return xCount == oCount || xCount == oCount+1
}

// Opponent returns the other mark.
func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}

func (that Board) countMarks() (xCount, oCount int) {
	for _, cell := range that {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		}
	}

	return xCount, oCount
}
