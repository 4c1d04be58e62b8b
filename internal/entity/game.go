package entity

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
	"github.com/rocketscienceinc/perfectplay-backend/internal/board"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

// Game is one round from an empty board to a terminal outcome. Winner, status
// and turn are always refreshed from the board through SyncState; none of
// them is ever toggled independently of the cells.
type Game struct {
	ID      string      `json:"id"`
	Board   board.Board `json:"board"`
	Winner  string      `json:"winner"`
	Status  string      `json:"status"`
	Turn    string      `json:"player_turn"`
	Players []*Player   `json:"players,omitempty"`
	Type    string      `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Board:  board.New(),
		Turn:   board.PlayerX,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// MakeTurn applies the player's move to the board and refreshes the derived
// state. The board itself rejects occupied cells, out-of-range indices,
// moves out of turn, and moves on a finished round.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsWaiting() {
		return apperror.ErrGameIsNotStarted
	}

	next, err := that.Board.Apply(cell, playerMark)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = next
	that.SyncState()

	return nil
}

// SyncState recomputes winner, status and turn from the board.
func (that *Game) SyncState() {
	switch outcome := that.Board.Evaluate(); outcome {
	case board.PlayerX, board.PlayerO, board.PlayerTie:
		that.Winner = outcome
		that.Status = StatusFinished
		that.Turn = ""
	default:
		that.Status = StatusOngoing
		that.Turn = that.Board.Turn()
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameAlreadyOver
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrNoActiveGames, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// BotPlayer returns the bot participant, or nil for human-only games.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return board.PlayerX, board.PlayerO
	}

	return board.PlayerO, board.PlayerX
}
