package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
	"github.com/rocketscienceinc/tictactoe3d/internal/config"
	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
	"github.com/rocketscienceinc/tictactoe3d/internal/service"
	"github.com/rocketscienceinc/tictactoe3d/internal/tictactoe"
)

var displayNames = map[string]string{
	config.PlayerHuman:  "Human",
	config.PlayerClaude: "Claude",
	config.PlayerGemini: "Gemini",
}

type chatProvider interface {
	// Chat opens a fresh conversation for a seat of the given kind.
	Chat(ctx context.Context, kind string) (service.Chat, error)
}

// Roster builds the two seats of a game from configuration.
type Roster struct {
	logger *slog.Logger
	conf   *config.Config
	chats  chatProvider

	lines service.LineReader
	out   io.Writer
}

func NewRoster(logger *slog.Logger, conf *config.Config, chats chatProvider, in io.Reader, out io.Writer) *Roster {
	return &Roster{
		logger: logger,
		conf:   conf,
		chats:  chats,
		lines:  service.NewConsoleInput(in),
		out:    out,
	}
}

// Players - builds X then O.
func (that *Roster) Players(ctx context.Context) (tictactoe.Player, tictactoe.Player, error) {
	x, err := that.Seat(ctx, entity.MarkX)
	if err != nil {
		return nil, nil, err
	}

	o, err := that.Seat(ctx, entity.MarkO)
	if err != nil {
		return nil, nil, err
	}

	return x, o, nil
}

// Seat - builds the player configured for mark.
func (that *Roster) Seat(ctx context.Context, mark entity.Mark) (tictactoe.Player, error) {
	log := that.logger.With("component", "roster", "method", "Seat")

	kind := that.conf.Players.Kind(mark)
	name := that.name(kind, mark)

	switch kind {
	case config.PlayerHuman:
		log.Debug("seating human player", "mark", mark)
		return service.NewHumanPlayer(name, mark, that.lines, that.out), nil

	case config.PlayerClaude:
		chat, err := that.chats.Chat(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to open chat for %s: %w", name, err)
		}

		log.Debug("seating claude player", "mark", mark, "model", that.conf.Claude.Model)

		return service.NewClaudePlayer(that.logger, name, mark, chat, that.out, service.ClaudeOptions{
			RetryDelay:  that.conf.Claude.RetryDelay,
			RepeatLimit: that.conf.Claude.RepeatLimit,
		}), nil

	case config.PlayerGemini:
		chat, err := that.chats.Chat(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to open chat for %s: %w", name, err)
		}

		log.Debug("seating gemini player", "mark", mark, "model", that.conf.Gemini.Model)

		return service.NewGeminiPlayer(that.logger, name, mark, chat, that.out), nil

	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayerKind, kind)
	}
}

// name adds the mark when both seats share a kind.
func (that *Roster) name(kind string, mark entity.Mark) string {
	name, ok := displayNames[kind]
	if !ok {
		name = kind
	}

	if that.conf.Players.X == that.conf.Players.O {
		return fmt.Sprintf("%s %s", name, mark)
	}

	return name
}
