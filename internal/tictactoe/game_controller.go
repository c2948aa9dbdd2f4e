package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
	"github.com/rocketscienceinc/tictactoe3d/internal/pkg"
)

var ErrSeatMismatch = errors.New("player mark does not match its seat")

// Player is a move source sitting at one side of the board.
type Player interface {
	Profile() entity.Player
	// GetMove blocks until the player produces a legal move or forfeits.
	GetMove(ctx context.Context, board *entity.Board) (entity.Move, error)
	// OnGameEnd tells the player how the game ended.
	OnGameEnd(ctx context.Context, result entity.Result) error
}

// Observer receives game progress. Implementations must not block for long.
type Observer interface {
	GameStarted(ctx context.Context, x, o entity.Player)
	MoveApplied(ctx context.Context, player entity.Player, coord entity.Coord, board *entity.Board)
	GameFinished(ctx context.Context, result entity.Result)
}

type Option func(*GameController)

// WithMoveDelay - pause after every applied move.
func WithMoveDelay(d time.Duration) Option {
	return func(that *GameController) {
		that.moveDelay = d
	}
}

func WithObservers(observers ...Observer) Option {
	return func(that *GameController) {
		that.observers = append(that.observers, observers...)
	}
}

func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(that *GameController) {
		that.sleep = sleep
	}
}

type GameController struct {
	logger *slog.Logger

	board   *entity.Board
	players map[entity.Mark]Player

	moveDelay time.Duration
	observers []Observer
	sleep     func(ctx context.Context, d time.Duration) error

	played bool
}

func NewGameController(logger *slog.Logger, xPlayer, oPlayer Player, opts ...Option) (*GameController, error) {
	if mark := xPlayer.Profile().Mark; mark != entity.MarkX {
		return nil, fmt.Errorf("%w: %s sits on X with mark %q", ErrSeatMismatch, xPlayer.Profile().Name, mark)
	}

	if mark := oPlayer.Profile().Mark; mark != entity.MarkO {
		return nil, fmt.Errorf("%w: %s sits on O with mark %q", ErrSeatMismatch, oPlayer.Profile().Name, mark)
	}

	controller := &GameController{
		logger: logger.With("component", "game_controller"),
		board:  entity.NewBoard(),
		players: map[entity.Mark]Player{
			entity.MarkX: xPlayer,
			entity.MarkO: oPlayer,
		},
		sleep: pkg.Sleep,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller, nil
}

// Board - the board owned by this game. Callers must treat it as read-only.
func (that *GameController) Board() *entity.Board {
	return that.board
}

// Play - runs the game to completion. It can be called once per controller.
func (that *GameController) Play(ctx context.Context) (entity.Result, error) {
	if that.played {
		return entity.Result{}, apperror.ErrGameFinished
	}
	that.played = true

	log := that.logger.With("method", "Play")

	for _, observer := range that.observers {
		observer.GameStarted(ctx, that.players[entity.MarkX].Profile(), that.players[entity.MarkO].Profile())
	}

	mark := entity.MarkX
	moves := 0

	for !that.board.IsFull() {
		player := that.players[mark]
		profile := player.Profile()

		move, err := player.GetMove(ctx, that.board)
		if err != nil {
			return entity.Result{}, fmt.Errorf("failed to get move from %s: %w", profile.Name, err)
		}

		if move.Forfeit {
			result := entity.Result{Outcome: entity.WinFor(mark.Opponent()), Forfeit: true, Moves: moves}
			log.Info("player forfeited", "player", profile.Name, "mark", mark)
			that.finish(ctx, result, false)

			return result, nil
		}

		if !that.board.ApplyMove(move.Coord, mark) {
			log.Warn("move rejected by board, asking again", "player", profile.Name, "coord", move.Coord.String())
			continue
		}
		moves++

		log.Debug("move applied", "player", profile.Name, "mark", mark, "square", move.Coord.Square())
		for _, observer := range that.observers {
			observer.MoveApplied(ctx, profile, move.Coord, that.board)
		}

		if winner, ok := that.board.Winner(); ok {
			result := entity.Result{Outcome: entity.WinFor(winner), Moves: moves}
			that.finish(ctx, result, true)

			return result, nil
		}

		mark = mark.Opponent()

		if err = that.sleep(ctx, that.moveDelay); err != nil {
			return entity.Result{}, fmt.Errorf("interrupted between moves: %w", err)
		}
	}

	result := entity.Result{Outcome: entity.OutcomeDraw, Moves: moves}
	that.finish(ctx, result, true)

	return result, nil
}

func (that *GameController) finish(ctx context.Context, result entity.Result, notifyPlayers bool) {
	log := that.logger.With("method", "finish")

	log.Info("game finished", "outcome", result.Outcome, "forfeit", result.Forfeit, "moves", result.Moves)

	for _, observer := range that.observers {
		observer.GameFinished(ctx, result)
	}

	if !notifyPlayers {
		return
	}

	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		player := that.players[mark]
		if err := player.OnGameEnd(ctx, result); err != nil {
			log.Error("failed to notify player", "player", player.Profile().Name, "error", err)
		}
	}
}
