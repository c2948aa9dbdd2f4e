package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

// Chat is a stateful conversation with an external chat model.
type Chat interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// chatPlayer holds what the chat-driven players share.
type chatPlayer struct {
	logger  *slog.Logger
	profile entity.Player
	chat    Chat
	out     io.Writer
}

func (that *chatPlayer) Profile() entity.Player {
	return that.profile
}

// OnGameEnd - tells the model how the game ended.
func (that *chatPlayer) OnGameEnd(ctx context.Context, result entity.Result) error {
	message := result.Message()
	fmt.Fprintf(that.out, "Message to AI: %s\n", message)

	reply, err := that.chat.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send result to %s: %w", that.profile.Name, err)
	}

	fmt.Fprintf(that.out, "AI response: %s\n", reply)

	return nil
}

func (that *chatPlayer) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reply, err := that.chat.Send(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to ask %s for a move: %w", that.profile.Name, err)
	}

	that.logger.Debug("chat reply", "player", that.profile.Name, "reply", reply)

	return reply, nil
}
