package pkg

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GenerateGameID - generates a unique identifier for the game.
func GenerateGameID() string {
	return uuid.NewString()
}

// Sleep - waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
