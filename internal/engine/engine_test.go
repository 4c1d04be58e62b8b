package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
	"github.com/rocketscienceinc/perfectplay-backend/internal/board"
)

func TestBestMove_TakesAnImmediateWin(t *testing.T) {
	// Given: X has two in the top row and O has two in the middle row
	b := board.Board{
		board.PlayerX, board.PlayerX, board.EmptyCell,
		board.PlayerO, board.PlayerO, board.EmptyCell,
		board.EmptyCell, board.EmptyCell, board.EmptyCell,
	}

	// When: X asks for its best move
	cell, err := BestMove(b, board.PlayerX)

	// Then: X completes the top row instead of blocking
	require.NoError(t, err)
	assert.Equal(t, 2, cell)
}

func TestBestMove_BlocksAForcedLoss(t *testing.T) {
	// Given: O must answer a double threat through cells 6 and 8
	b := board.Board{
		board.PlayerX, board.PlayerO, board.PlayerX,
		board.PlayerO, board.PlayerX, board.PlayerO,
		board.EmptyCell, board.EmptyCell, board.EmptyCell,
	}

	// When: O asks for its best move
	cell, err := BestMove(b, board.PlayerO)

	// Then: O blocks on one of the threatened cells, not cell 7
	require.NoError(t, err)
	assert.Contains(t, []int{6, 8}, cell)
}

func TestBestMove_BlocksASingleThreat(t *testing.T) {
	// Given: X threatens the top row and O has no win of its own
	b := board.Board{
		board.PlayerX, board.PlayerX, board.EmptyCell,
		board.EmptyCell, board.PlayerO, board.EmptyCell,
		board.EmptyCell, board.EmptyCell, board.EmptyCell,
	}

	// When: O asks for its best move
	cell, err := BestMove(b, board.PlayerO)

	// Then: O must block cell 2
	require.NoError(t, err)
	assert.Equal(t, 2, cell)
}

func TestBestMove_OpeningIsDeterministic(t *testing.T) {
	// Given: an empty board, where every opening scores a draw under
	// perfect play and the tie-break picks the lowest index
	b := board.New()

	// When: asking for the opening move repeatedly
	first, err := BestMove(b, board.PlayerX)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		cell, err := BestMove(b, board.PlayerX)
		require.NoError(t, err)

		// Then: the engine always picks the same cell
		assert.Equal(t, first, cell)
	}

	assert.Equal(t, 0, first)
}

func TestBestMove_PreconditionViolations(t *testing.T) {
	t.Run("Fails on a won board", func(t *testing.T) {
		// Given: a board X already won
		b := board.Board{
			board.PlayerX, board.PlayerX, board.PlayerX,
			board.PlayerO, board.PlayerO, board.EmptyCell,
			board.EmptyCell, board.EmptyCell, board.EmptyCell,
		}

		// When: asking for a move anyway
		_, err := BestMove(b, board.PlayerO)

		// Then: the precondition violation surfaces
		require.ErrorIs(t, err, apperror.ErrPreconditionViolated)
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		// Given: a drawn board
		b := board.Board{
			board.PlayerX, board.PlayerO, board.PlayerX,
			board.PlayerX, board.PlayerO, board.PlayerO,
			board.PlayerO, board.PlayerX, board.PlayerX,
		}

		// When: asking for a move anyway
		_, err := BestMove(b, board.PlayerX)

		// Then: the precondition violation surfaces
		require.ErrorIs(t, err, apperror.ErrPreconditionViolated)
	})

	t.Run("Fails when it is not the caller's turn", func(t *testing.T) {
		// Given: an empty board where X opens
		b := board.New()

		// When: O asks for the opening move
		_, err := BestMove(b, board.PlayerO)

		// Then: the precondition violation surfaces
		require.ErrorIs(t, err, apperror.ErrPreconditionViolated)
	})

	t.Run("Fails on a board not reachable by legal play", func(t *testing.T) {
		// Given: a board where X placed two marks in a row
		b := board.Board{board.PlayerX, board.PlayerX}

		// When: asking for a move
		_, err := BestMove(b, board.PlayerO)

		// Then: the malformed board surfaces instead of a guessed move
		require.ErrorIs(t, err, apperror.ErrPreconditionViolated)
	})
}

// TestBestMove_NeverLoses plays the engine against every possible opponent
// line, from both sides, and requires that the opponent never wins. With the
// engine moving second this also covers the empty-board scenario: no X
// sequence beats a perfect O, and vice versa.
func TestBestMove_NeverLoses(t *testing.T) {
	for _, engineMark := range []string{board.PlayerX, board.PlayerO} {
		opponent := board.Opponent(engineMark)

		var play func(b board.Board)
		play = func(b board.Board) {
			outcome := b.Evaluate()
			if outcome != board.EmptyCell {
				require.NotEqual(t, opponent, outcome, "opponent forced a win on %v", b)
				return
			}

			if b.Turn() == engineMark {
				cell, err := BestMove(b, engineMark)
				require.NoError(t, err)

				next, err := b.Apply(cell, engineMark)
				require.NoError(t, err)

				play(next)
				return
			}

			for _, cell := range b.EmptyIndices() {
				next, err := b.Apply(cell, opponent)
				require.NoError(t, err)

				play(next)
			}
		}

		play(board.New())
	}
}

func TestBestMove_WinsWhenAWinIsForced(t *testing.T) {
	// Given: X holds a corner and the center; blocking O's column threat at
	// cell 2 creates a double threat, so the win is forced
	b := board.Board{
		board.PlayerX, board.EmptyCell, board.EmptyCell,
		board.EmptyCell, board.PlayerX, board.PlayerO,
		board.EmptyCell, board.EmptyCell, board.PlayerO,
	}
	require.Equal(t, board.PlayerX, b.Turn())

	// When: playing the position out with the engine on both sides
	current := b
	for !current.IsFinished() {
		turn := current.Turn()

		cell, err := BestMove(current, turn)
		require.NoError(t, err)

		current, err = current.Apply(cell, turn)
		require.NoError(t, err)
	}

	// Then: X converts the forced win even against perfect defense
	assert.Equal(t, board.PlayerX, current.Evaluate())
}
