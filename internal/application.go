package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe3d/internal/config"
	"github.com/rocketscienceinc/tictactoe3d/internal/pkg"
	"github.com/rocketscienceinc/tictactoe3d/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe3d/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe3d/internal/transport/console"
	redisfeed "github.com/rocketscienceinc/tictactoe3d/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe3d/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one game between the configured players.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	chats := newChatFactory(logger, conf)
	defer func() {
		if err := chats.Close(); err != nil {
			log.Error("could not close chat clients", "error", err)
		}
	}()

	roster := usecase.NewRoster(logger, conf, chats, os.Stdin, os.Stdout)

	xPlayer, oPlayer, err := roster.Players(ctx)
	if err != nil {
		return fmt.Errorf("could not seat players: %w", err)
	}

	observers := []tictactoe.Observer{
		console.NewNarrator(os.Stdout, console.NewBoardRenderer(conf.Console.Plain)),
	}

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameID := pkg.GenerateGameID()
		log.Info("Publishing spectator feed", "channel", conf.Redis.Channel, "game_id", gameID)

		observers = append(observers, redisfeed.NewPublisher(logger, redisStorage, conf.Redis.Channel, gameID))
	}

	gameController, err := tictactoe.NewGameController(logger, xPlayer, oPlayer,
		tictactoe.WithMoveDelay(conf.MoveDelay),
		tictactoe.WithObservers(observers...),
	)
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	result, err := gameController.Play(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			log.Info("Game interrupted, shutting down")
			return nil
		}

		return fmt.Errorf("game aborted: %w", err)
	}

	log.Info("Game over", "outcome", result.Outcome, "forfeit", result.Forfeit, "moves", result.Moves)

	return nil
}
