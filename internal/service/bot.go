package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/perfectplay-backend/internal/engine"
	"github.com/rocketscienceinc/perfectplay-backend/internal/entity"
)

var ErrBotNotFound = errors.New("bot player not found")

// BotService plays the adversary's turns. There are no difficulty levels:
// the bot always plays the move the search proves optimal.
type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	cell, err := engine.BestMove(game.Board, botPlayer.Mark)
	if err != nil {
		return fmt.Errorf("failed to pick bot move: %w", err)
	}

	if err = game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
