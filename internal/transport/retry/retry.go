package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
)

const (
	DefaultMaxRetries      = 3
	DefaultInitialInterval = time.Second
	DefaultMaxInterval     = 10 * time.Second
)

type sender interface {
	Send(ctx context.Context, prompt string) (string, error)
}

type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Chat retries a failing transport with exponential backoff.
type Chat struct {
	logger *slog.Logger
	name   string
	next   sender
	policy Policy
}

func Wrap(logger *slog.Logger, name string, next sender, policy Policy) *Chat {
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = DefaultInitialInterval
	}

	if policy.MaxInterval < policy.InitialInterval {
		policy.MaxInterval = max(DefaultMaxInterval, policy.InitialInterval)
	}

	return &Chat{
		logger: logger.With("component", "retry_chat", "chat", name),
		name:   name,
		next:   next,
		policy: policy,
	}
}

// Send - sends the prompt, retrying transport failures up to MaxRetries times.
func (that *Chat) Send(ctx context.Context, prompt string) (string, error) {
	log := that.logger.With("method", "Send")

	var (
		reply    string
		attempts int
	)

	operation := func() error {
		attempts++

		r, err := that.next.Send(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}

			log.Warn("chat request failed", "attempt", attempts, "error", err)
			return err
		}

		reply = r
		return nil
	}

	if err := backoff.Retry(operation, that.backOff(ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s request interrupted: %w", that.name, ctxErr)
		}

		return "", fmt.Errorf("%w: %s failed after %d attempts: %w", apperror.ErrTransportUnavailable, that.name, attempts, err)
	}

	return reply, nil
}

func (that *Chat) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = that.policy.InitialInterval
	exp.MaxInterval = that.policy.MaxInterval
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, that.policy.MaxRetries), ctx)
}
