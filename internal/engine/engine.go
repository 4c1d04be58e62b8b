// Package engine selects moves by exhaustive search. The 3x3 game tree is
// small enough that plain minimax to terminal depth finishes in well under a
// millisecond, so there is no pruning and no memoization.
package engine

import (
	"fmt"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
	"github.com/rocketscienceinc/perfectplay-backend/internal/board"
)

// BestMove returns the optimal cell for mark on a non-terminal board,
// assuming optimal counter-play. It guarantees at least a draw and wins
// whenever a win is forced. Ties between equally good moves are broken
// toward the lowest index so play is reproducible.
//
// It fails with apperror.ErrPreconditionViolated when the board is terminal
// or was not reached by legal play, or when it is not mark's turn; a
// malformed board must surface here instead of producing a plausible-looking
// but wrong move.
func BestMove(b board.Board, mark string) (int, error) {
	if !b.IsWellFormed() {
		return 0, fmt.Errorf("%w: board not reachable by legal play", apperror.ErrPreconditionViolated)
	}

	if b.IsFinished() {
		return 0, fmt.Errorf("%w: board is terminal", apperror.ErrPreconditionViolated)
	}

	if mark != b.Turn() {
		return 0, fmt.Errorf("%w: it is not %q's turn", apperror.ErrPreconditionViolated, mark)
	}

	bestCell := -1
	bestScore := minScore - 1

	for _, cell := range b.EmptyIndices() {
		next := b
		next[cell] = mark

		if moveScore := score(next, mark); moveScore > bestScore {
			bestCell = cell
			bestScore = moveScore
		}
	}

	return bestCell, nil
}

const (
	winScore  = 1
	drawScore = 0
	lossScore = -1

	minScore = lossScore
	maxScore = winScore
)

// score runs minimax from the perspective of the maximizing mark. Whose turn
// it is comes from the board itself rather than a flag passed down the
// recursion, so the maximizing/minimizing alternation can never drift from
// the actual position.
func score(b board.Board, maximizing string) int {
	outcome := b.Evaluate()
	switch {
	case outcome == maximizing:
		return winScore
	case outcome == board.PlayerTie:
		return drawScore
	case outcome != board.EmptyCell:
		return lossScore
	}

	turn := b.Turn()

	best := minScore - 1
	if turn != maximizing {
		best = maxScore + 1
	}

	for _, cell := range b.EmptyIndices() {
		next := b
		next[cell] = turn

		childScore := score(next, maximizing)

		if turn == maximizing && childScore > best {
			best = childScore
		}

		if turn != maximizing && childScore < best {
			best = childScore
		}
	}

	return best
}
