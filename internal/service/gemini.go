package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

// GeminiPlayer explains the rules once, then keeps asking within the same
// conversation. It never forfeits.
type GeminiPlayer struct {
	chatPlayer

	introduced bool
}

func NewGeminiPlayer(logger *slog.Logger, name string, mark entity.Mark, chat Chat, out io.Writer) *GeminiPlayer {
	return &GeminiPlayer{
		chatPlayer: chatPlayer{
			logger:  logger.With("component", "gemini_player"),
			profile: entity.Player{Name: name, Mark: mark},
			chat:    chat,
			out:     out,
		},
	}
}

func (that *GeminiPlayer) GetMove(ctx context.Context, board *entity.Board) (entity.Move, error) {
	if err := that.introduce(ctx); err != nil {
		return entity.Move{}, err
	}

	for {
		reply, err := that.ask(ctx, TurnPrompt(board, that.profile.Mark))
		if err != nil {
			return entity.Move{}, err
		}

		_, coord, err := entity.ParseMove(reply)
		if err == nil && board.IsAvailable(coord) {
			return entity.MoveTo(coord), nil
		}

		fmt.Fprintf(that.out, "%s: Invalid square. Try again.\n", that.profile.Name)
	}
}

func (that *GeminiPlayer) introduce(ctx context.Context) error {
	if that.introduced {
		return nil
	}

	reply, err := that.chat.Send(ctx, SetupPrompt(that.profile.Mark))
	if err != nil {
		return fmt.Errorf("failed to explain the rules to %s: %w", that.profile.Name, err)
	}

	that.logger.Debug("setup acknowledged", "player", that.profile.Name, "reply", reply)
	that.introduced = true

	return nil
}
