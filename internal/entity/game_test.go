package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
	"github.com/rocketscienceinc/perfectplay-backend/internal/board"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it reports finished
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// Then: it reports ongoing
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		// Given: a game with StatusWaiting
		game := &Game{Status: StatusWaiting}

		// Then: it reports waiting
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameAlreadyOver when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameAlreadyOver)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown status")
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Applies a legal move and derives the next turn", func(t *testing.T) {
		// Given: an ongoing game on an empty board
		game := NewGame("1", PrivateType)
		game.Status = StatusOngoing

		// When: X plays cell 4
		err := game.MakeTurn(board.PlayerX, 4)

		// Then: the board holds the mark and the derived turn flips to O
		require.NoError(t, err)
		assert.Equal(t, board.PlayerX, game.Board[4])
		assert.Equal(t, board.PlayerO, game.Turn)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Rejects a move before the game has started", func(t *testing.T) {
		// Given: a game still waiting for an opponent
		game := NewGame("1", PublicType)

		// When: X tries to move
		err := game.MakeTurn(board.PlayerX, 0)

		// Then: the round has not started yet
		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Rejects a move out of turn and keeps state intact", func(t *testing.T) {
		// Given: an ongoing game where X is to move
		game := NewGame("1", PrivateType)
		game.Status = StatusOngoing

		// When: O tries to open
		err := game.MakeTurn(board.PlayerO, 0)

		// Then: the move fails and the board stays empty
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, board.New(), game.Board)
		assert.Equal(t, board.PlayerX, game.Turn)
	})

	t.Run("Finishes the game when a line is completed", func(t *testing.T) {
		// Given: X about to complete the top row
		game := NewGame("1", PrivateType)
		game.Status = StatusOngoing
		game.Board = board.Board{
			board.PlayerX, board.PlayerX, board.EmptyCell,
			board.PlayerO, board.PlayerO, board.EmptyCell,
			board.EmptyCell, board.EmptyCell, board.EmptyCell,
		}

		// When: X plays cell 2
		err := game.MakeTurn(board.PlayerX, 2)

		// Then: the game is finished with X as winner and no turn left
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, board.PlayerX, game.Winner)
		assert.Empty(t, game.Turn)
	})

	t.Run("Rejects further moves after the game is over", func(t *testing.T) {
		// Given: a finished game
		game := NewGame("1", PrivateType)
		game.Status = StatusOngoing
		game.Board = board.Board{
			board.PlayerX, board.PlayerX, board.PlayerX,
			board.PlayerO, board.PlayerO, board.EmptyCell,
			board.EmptyCell, board.EmptyCell, board.EmptyCell,
		}
		game.SyncState()
		require.True(t, game.IsFinished())

		// When: O tries to keep playing
		err := game.MakeTurn(board.PlayerO, 5)

		// Then: the move fails with ErrGameAlreadyOver
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
	})

	t.Run("Finishes with a tie on a full board", func(t *testing.T) {
		// Given: a board one move away from a draw, X to move
		game := NewGame("1", PrivateType)
		game.Status = StatusOngoing
		game.Board = board.Board{
			board.PlayerX, board.PlayerO, board.PlayerX,
			board.PlayerX, board.PlayerO, board.PlayerO,
			board.PlayerO, board.PlayerX, board.EmptyCell,
		}

		// When: X fills the last cell
		err := game.MakeTurn(board.PlayerX, 8)

		// Then: the game ends in a tie
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, board.PlayerTie, game.Winner)
	})
}

func TestPlayer_RecordOutcome(t *testing.T) {
	t.Run("Counts a win for the winner's mark", func(t *testing.T) {
		player := &Player{ID: "p1", Mark: board.PlayerX}

		player.RecordOutcome(board.PlayerX)

		assert.Equal(t, Stats{Wins: 1}, player.Stats)
	})

	t.Run("Counts a loss for the other mark", func(t *testing.T) {
		player := &Player{ID: "p1", Mark: board.PlayerO}

		player.RecordOutcome(board.PlayerX)

		assert.Equal(t, Stats{Losses: 1}, player.Stats)
	})

	t.Run("Counts a draw for both marks", func(t *testing.T) {
		player := &Player{ID: "p1", Mark: board.PlayerX}

		player.RecordOutcome(board.PlayerTie)

		assert.Equal(t, Stats{Draws: 1}, player.Stats)
	})

	t.Run("Accumulates across rounds", func(t *testing.T) {
		player := &Player{ID: "p1", Mark: board.PlayerX}

		player.RecordOutcome(board.PlayerX)
		player.RecordOutcome(board.PlayerO)
		player.RecordOutcome(board.PlayerTie)

		assert.Equal(t, Stats{Wins: 1, Losses: 1, Draws: 1}, player.Stats)
	})
}

func TestPlayer_Bot(t *testing.T) {
	t.Run("NewBotPlayer is recognized as a bot", func(t *testing.T) {
		bot := NewBotPlayer("42")

		assert.True(t, bot.IsBot())
		assert.Equal(t, "42", bot.GameID)
	})

	t.Run("Human players are not bots", func(t *testing.T) {
		player := &Player{ID: "session-abc"}

		assert.False(t, player.IsBot())
	})

	t.Run("BotPlayer finds the bot among the participants", func(t *testing.T) {
		game := NewGame("42", WithBotType)
		human := &Player{ID: "session-abc"}
		bot := NewBotPlayer("42")
		game.Players = []*Player{human, bot}

		assert.Equal(t, bot, game.BotPlayer())
	})

	t.Run("BotPlayer returns nil for human-only games", func(t *testing.T) {
		game := NewGame("42", PrivateType)
		game.Players = []*Player{{ID: "a"}, {ID: "b"}}

		assert.Nil(t, game.BotPlayer())
	})
}
