package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
	"github.com/rocketscienceinc/perfectplay-backend/internal/entity"
	"github.com/rocketscienceinc/perfectplay-backend/internal/repository"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, bufrw)

	payloadResp := Payload{Player: player}

	// A player mid-game reconnects straight into it.
	if player.GameID != "" {
		game, err := that.uGame.GetOrCreateGame(ctx, player.ID, "")
		if err != nil {
			log.Error("failed to get current game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(bufrw, msg.Action, "failed to get the current game")
		}

		payloadResp.Game = game
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Game == nil {
		log.Error("Game is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Game is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.startGame(ctx, payloadReq.Player.ID, payloadReq.Game.Type)
	if err != nil {
		log.Error("failed to create or join game", "type", payloadReq.Game.Type, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create or join game")
	}

	that.broadcastGame(game, msg.Action)

	log.Info("player entered game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

// startGame pairs a public player with the waiting game when there is one,
// and otherwise creates a game of the requested type.
func (that *Server) startGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	if gameType == entity.PublicType {
		game, err := that.uGame.JoinWaitingPublicGame(ctx, playerID)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, err
		}
	}

	return that.uGame.GetOrCreateGame(ctx, playerID, gameType)
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleJoinGame")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Game == nil {
		log.Error("Game is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Game is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.uGame.JoinGameByID(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "gameID", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err))
	}

	that.broadcastGame(game, msg.Action)

	log.Info("player joined game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Cell is required")
	}

	that.registerConnection(payloadReq.Player.ID, bufrw)

	game, err := that.uGame.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)

	// A rejected click is the mover's problem only; the round itself is
	// intact, so nobody else needs an update.
	if errors.Is(err, apperror.ErrInvalidMove) ||
		errors.Is(err, apperror.ErrGameAlreadyOver) ||
		errors.Is(err, apperror.ErrGameIsNotStarted) {
		log.Info("rejected move", "playerID", payloadReq.Player.ID, "cell", *payloadReq.Cell, "reason", err)
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to make turn", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to make turn")
	}

	that.broadcastGame(game, msg.Action)

	return nil
}

// broadcastGame sends the updated game to every connected human participant.
func (that *Server) broadcastGame(game *entity.Game, action string) {
	log := that.logger.With("method", "broadcastGame", "gameID", game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		conn, ok := that.connectionFor(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player: player,
			Game:   game,
		}

		if err := that.sendMessage(conn, action, payloadResp); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, message string) error {
	if err := that.sendMessage(bufrw, action, Payload{Error: message}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
