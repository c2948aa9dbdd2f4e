package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
	"github.com/rocketscienceinc/tictactoe3d/internal/config"
	"github.com/rocketscienceinc/tictactoe3d/internal/service"
	"github.com/rocketscienceinc/tictactoe3d/internal/transport/anthropic"
	"github.com/rocketscienceinc/tictactoe3d/internal/transport/gemini"
	"github.com/rocketscienceinc/tictactoe3d/internal/transport/retry"
)

// chatFactory opens SDK-backed conversations wrapped in retry.
type chatFactory struct {
	logger  *slog.Logger
	conf    *config.Config
	closers []func() error
}

func newChatFactory(logger *slog.Logger, conf *config.Config) *chatFactory {
	return &chatFactory{
		logger: logger,
		conf:   conf,
	}
}

func (that *chatFactory) Chat(ctx context.Context, kind string) (service.Chat, error) {
	var chat service.Chat

	switch kind {
	case config.PlayerClaude:
		chat = anthropic.New(that.conf.Claude.APIKey, anthropic.Config{
			Model:     that.conf.Claude.Model,
			MaxTokens: that.conf.Claude.MaxTokens,
		})

	case config.PlayerGemini:
		conv, err := gemini.New(ctx, that.conf.Gemini.APIKey, that.conf.Gemini.Model)
		if err != nil {
			return nil, err
		}

		that.closers = append(that.closers, conv.Close)
		chat = conv

	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayerKind, kind)
	}

	return retry.Wrap(that.logger, kind, chat, retry.Policy{
		MaxRetries:      that.conf.Retry.MaxRetries,
		InitialInterval: that.conf.Retry.InitialInterval,
		MaxInterval:     that.conf.Retry.MaxInterval,
	}), nil
}

func (that *chatFactory) Close() error {
	var errs []error
	for _, closeFn := range that.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
