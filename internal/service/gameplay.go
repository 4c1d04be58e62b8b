package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/perfectplay-backend/internal/apperror"
	"github.com/rocketscienceinc/perfectplay-backend/internal/board"
	"github.com/rocketscienceinc/perfectplay-backend/internal/entity"
)

// GamePlayService is the driver around the core: it sequences human and bot
// turns, checks the outcome after every move, and keeps the per-player
// win/loss/draw tallies across rounds.
type GamePlayService interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error)

	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
	}
}

func (that *gamePlayService) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	// The bot replies within the same request; the outcome is re-checked
	// after every applied move.
	if game.IsOngoing() && game.IsWithBot() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		if err = that.finishRound(ctx, game); err != nil {
			return nil, err
		}

		return game, nil
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// finishRound settles a terminal game: tallies go to the player records, the
// players are detached, and the game itself is removed. A new round always
// means a new game with a fresh board.
func (that *gamePlayService) finishRound(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("component", "gameplay", "gameID", game.ID)

	for _, player := range game.Players {
		player.RecordOutcome(game.Winner)

		if player.IsBot() {
			continue
		}

		player.LeaveGame()
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			return fmt.Errorf("failed to update player tally: %w", err)
		}
	}

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to delete finished game: %w", err)
	}

	log.Info("round finished", "winner", game.Winner)

	return nil
}

func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return that.joinGame(ctx, game, player)
}

func (that *gamePlayService) JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gameService.GetWaitingPublicGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get waiting public game: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return that.joinGame(ctx, game, player)
}

func (that *gamePlayService) joinGame(ctx context.Context, game *entity.Game, player *entity.Player) (*entity.Game, error) {
	if player.GameID == game.ID {
		return game, nil
	}

	if len(game.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	player.GameID = game.ID
	player.Mark = board.PlayerO
	if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	game.Status = entity.StatusOngoing
	game.Players = append(game.Players, player)
	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		game, err := that.createGame(ctx, player, gameType)
		if err != nil {
			return nil, fmt.Errorf("failed to create new game: %w", err)
		}

		return game, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) createGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	game, updatedPlayer, err := that.gameService.CreateGame(ctx, player, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, updatedPlayer); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if game.IsWithBot() {
		if err = that.addBotToGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to add bot to game: %w", err)
		}
	}

	return game, nil
}

func (that *gamePlayService) addBotToGame(ctx context.Context, game *entity.Game) error {
	botPlayer := entity.NewBotPlayer(game.ID)

	game.Players = append(game.Players, botPlayer)
	game.Status = entity.StatusOngoing

	playerMark, botMark := game.GetRandomMarks()
	botPlayer.Mark = botMark

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.Mark = playerMark
		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}
	}

	if botMark == board.PlayerX {
		if err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game with bot: %w", err)
	}

	return nil
}
