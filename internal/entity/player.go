package entity

import (
	"strings"

	"github.com/rocketscienceinc/perfectplay-backend/internal/board"
)

const botIDPrefix = "bot:"

// Stats is the running win/loss/draw tally a player accumulates across
// rounds. It lives on the player record, never inside a game.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Stats  Stats  `json:"stats"`
}

func NewBotPlayer(gameID string) *Player {
	return &Player{
		ID:     botIDPrefix + gameID,
		GameID: gameID,
	}
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.ID, botIDPrefix)
}

// RecordOutcome updates the tally for a finished round given its winner.
func (that *Player) RecordOutcome(winner string) {
	switch winner {
	case board.PlayerTie:
		that.Stats.Draws++
	case that.Mark:
		that.Stats.Wins++
	default:
		that.Stats.Losses++
	}
}

// LeaveGame detaches the player from the finished round so the next round
// starts from a fresh board and mark assignment.
func (that *Player) LeaveGame() {
	that.GameID = ""
	that.Mark = ""
}
