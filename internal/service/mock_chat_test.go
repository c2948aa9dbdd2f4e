package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockChat struct {
	mock.Mock
}

func (that *mockChat) Send(ctx context.Context, prompt string) (string, error) {
	args := that.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type sleepRecorder struct {
	delays []time.Duration
	err    error
}

func (that *sleepRecorder) Sleep(_ context.Context, d time.Duration) error {
	that.delays = append(that.delays, d)
	return that.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
