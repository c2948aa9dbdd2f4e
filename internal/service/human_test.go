package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanPlayer_GetMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes a typed square", func(t *testing.T) {
		// Given: a human typing 14
		var out bytes.Buffer
		player := NewHumanPlayer("Human", entity.MarkX, NewConsoleInput(strings.NewReader("14\n")), &out)

		// When: asking for a move on an empty board
		move, err := player.GetMove(ctx, entity.NewBoard())

		// Then: the centre of the cube is chosen
		require.NoError(t, err)
		assert.Equal(t, entity.MoveTo(entity.Coord{I: 1, J: 1, K: 1}), move)
		assert.Equal(t, "X's turn. Input move (1-27): ", out.String())
	})

	t.Run("Re-prompts on bad input until a free square is typed", func(t *testing.T) {
		// Given: square 1 is taken and the human makes several mistakes
		board := entity.NewBoard()
		require.True(t, board.ApplyMove(entity.Coord{}, entity.MarkX))

		var out bytes.Buffer
		input := "abc\n0\n28\n1\n5\n"
		player := NewHumanPlayer("Human", entity.MarkO, NewConsoleInput(strings.NewReader(input)), &out)

		// When: asking for a move
		move, err := player.GetMove(ctx, board)

		// Then: every mistake is reported and square 5 is returned
		require.NoError(t, err)
		assert.Equal(t, entity.MoveTo(entity.CoordFromIndex(4)), move)
		assert.Equal(t, 4, strings.Count(out.String(), "Invalid square. Try again."))
		assert.False(t, move.Forfeit)
	})

	t.Run("Closed input is an error", func(t *testing.T) {
		player := NewHumanPlayer("Human", entity.MarkX, NewConsoleInput(strings.NewReader("x\n")), &bytes.Buffer{})

		_, err := player.GetMove(ctx, entity.NewBoard())

		assert.ErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Canceled context stops prompting", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		player := NewHumanPlayer("Human", entity.MarkX, NewConsoleInput(strings.NewReader("1\n")), &bytes.Buffer{})

		_, err := player.GetMove(cancelCtx, entity.NewBoard())

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHumanPlayer_GetMove_SilentTerminal(t *testing.T) {
	t.Run("Cancel releases a pending read", func(t *testing.T) {
		// Given: a terminal nobody types into
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})

		player := NewHumanPlayer("Human", entity.MarkX, NewConsoleInput(reader), &bytes.Buffer{})
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			_, err := player.GetMove(ctx, entity.NewBoard())
			done <- err
		}()

		// When: the context is canceled while the read is pending
		time.Sleep(50 * time.Millisecond)
		cancel()

		// Then: GetMove returns promptly with the cancellation
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("GetMove kept waiting for input after cancel")
		}
	})

	t.Run("Line typed after a canceled read goes to the next request", func(t *testing.T) {
		// Given: a read that was abandoned by cancellation
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})

		input := NewConsoleInput(reader)
		player := NewHumanPlayer("Human", entity.MarkO, input, &bytes.Buffer{})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := player.GetMove(ctx, entity.NewBoard())
		require.ErrorIs(t, err, context.DeadlineExceeded)

		// When: the human finally types a square
		go func() {
			_, _ = writer.Write([]byte("27\n"))
		}()

		move, err := player.GetMove(context.Background(), entity.NewBoard())

		// Then: the line is not lost
		require.NoError(t, err)
		assert.Equal(t, entity.MoveTo(entity.Coord{I: 2, J: 2, K: 2}), move)
	})

	t.Run("Read failures are wrapped", func(t *testing.T) {
		reader, writer := io.Pipe()
		errTTY := errors.New("tty detached")
		require.NoError(t, writer.CloseWithError(errTTY))

		player := NewHumanPlayer("Human", entity.MarkX, NewConsoleInput(reader), &bytes.Buffer{})

		_, err := player.GetMove(context.Background(), entity.NewBoard())

		assert.ErrorIs(t, err, errTTY)
		assert.NotErrorIs(t, err, apperror.ErrInputClosed)
	})
}

func TestHumanPlayer_OnGameEnd(t *testing.T) {
	player := NewHumanPlayer("Human", entity.MarkX, NewConsoleInput(strings.NewReader("")), &bytes.Buffer{})

	assert.NoError(t, player.OnGameEnd(context.Background(), entity.Result{Outcome: entity.OutcomeO}))
	assert.Equal(t, entity.Player{Name: "Human", Mark: entity.MarkX}, player.Profile())
}
