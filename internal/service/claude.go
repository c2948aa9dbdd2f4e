package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
	"github.com/rocketscienceinc/tictactoe3d/internal/pkg"
)

const (
	// MinRepeatLimit is the smallest limit that still lets a first answer through.
	MinRepeatLimit     = 2
	DefaultRepeatLimit = 3
	DefaultRetryDelay  = 20 * time.Second
)

type ClaudeOptions struct {
	// RetryDelay is the pause after a reply that is not a free square.
	RetryDelay time.Duration
	// RepeatLimit is how many identical replies in a row count as a forfeit.
	RepeatLimit int
	Sleep       func(ctx context.Context, d time.Duration) error
}

// ClaudePlayer sends the whole board with every move request and gives up
// when the model keeps answering with the same square.
type ClaudePlayer struct {
	chatPlayer

	retryDelay  time.Duration
	repeatLimit int
	sleep       func(ctx context.Context, d time.Duration) error

	lastIndex int
	repeats   int
}

func NewClaudePlayer(logger *slog.Logger, name string, mark entity.Mark, chat Chat, out io.Writer, opts ClaudeOptions) *ClaudePlayer {
	if opts.RepeatLimit < MinRepeatLimit {
		opts.RepeatLimit = DefaultRepeatLimit
	}

	if opts.Sleep == nil {
		opts.Sleep = pkg.Sleep
	}

	return &ClaudePlayer{
		chatPlayer: chatPlayer{
			logger:  logger.With("component", "claude_player"),
			profile: entity.Player{Name: name, Mark: mark},
			chat:    chat,
			out:     out,
		},
		retryDelay:  opts.RetryDelay,
		repeatLimit: opts.RepeatLimit,
		sleep:       opts.Sleep,
	}
}

func (that *ClaudePlayer) GetMove(ctx context.Context, board *entity.Board) (entity.Move, error) {
	log := that.logger.With("method", "GetMove")

	for {
		reply, err := that.ask(ctx, BoardPrompt(board, that.profile.Mark))
		if err != nil {
			return entity.Move{}, err
		}

		fmt.Fprintf(that.out, "%s response: %s\n", that.profile.Name, reply)

		idx, coord, err := entity.ParseMove(reply)
		if errors.Is(err, apperror.ErrNotANumber) {
			that.repeats = 0
		} else if that.repeated(idx) {
			fmt.Fprintf(that.out, "%s made the same move %d times. %s loses.\n", that.profile.Name, that.repeatLimit, that.profile.Name)
			log.Info("repeat limit reached, forfeiting", "square", idx+1, "repeats", that.repeats)
			that.repeats = 0

			return entity.ForfeitMove(), nil
		}

		if err == nil && board.IsAvailable(coord) {
			return entity.MoveTo(coord), nil
		}

		fmt.Fprintf(that.out, "%s: Invalid square. Try again.\n", that.profile.Name)
		fmt.Fprintf(that.out, "Waiting for %s rate limit to reset...\n", that.profile.Name)

		if err = that.sleep(ctx, that.retryDelay); err != nil {
			return entity.Move{}, fmt.Errorf("interrupted while waiting to retry: %w", err)
		}
	}
}

// repeated records idx and reports whether it hit the repeat limit.
func (that *ClaudePlayer) repeated(idx int) bool {
	if that.repeats > 0 && idx == that.lastIndex {
		that.repeats++
	} else {
		that.lastIndex = idx
		that.repeats = 1
	}

	return that.repeats >= that.repeatLimit
}
