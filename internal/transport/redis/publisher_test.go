package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
	"github.com/rocketscienceinc/tictactoe3d/testing/suite"
)

func TestPublisher(t *testing.T) {
	ctx, st := suite.New(t)

	channel := "tictactoe3d:test"
	sub := st.Subscribe(ctx, channel)

	publisher := NewPublisher(st.Logger, st.Storage, channel, "game-1")
	publisher.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	receive := func(t *testing.T) Event {
		t.Helper()

		payload := st.NextMessage(ctx, t, sub, 5*time.Second)

		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))

		return event
	}

	t.Run("Game start lists both players", func(t *testing.T) {
		x := entity.Player{Name: "Claude", Mark: entity.MarkX}
		o := entity.Player{Name: "Gemini", Mark: entity.MarkO}

		publisher.GameStarted(ctx, x, o)

		event := receive(t)
		assert.Equal(t, "game-1", event.GameID)
		assert.Equal(t, EventGameStarted, event.Type)
		assert.Equal(t, []entity.Player{x, o}, event.Players)
		assert.True(t, event.At.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	})

	t.Run("Move carries the square and the board", func(t *testing.T) {
		// Given: X took the centre
		board := entity.NewBoard()
		coord := entity.CoordFromIndex(13)
		require.True(t, board.ApplyMove(coord, entity.MarkX))

		// When: the move is published
		publisher.MoveApplied(ctx, entity.Player{Name: "Claude", Mark: entity.MarkX}, coord, board)

		// Then: subscribers see the square and compact board
		event := receive(t)
		assert.Equal(t, EventMoveApplied, event.Type)
		assert.Equal(t, 14, event.Square)
		require.NotNil(t, event.Coord)
		assert.Equal(t, coord, *event.Coord)
		assert.Equal(t, board.Compact(), event.Board)
	})

	t.Run("Finish carries the result", func(t *testing.T) {
		result := entity.Result{Outcome: entity.OutcomeO, Forfeit: true, Moves: 4}

		publisher.GameFinished(ctx, result)

		event := receive(t)
		assert.Equal(t, EventGameFinished, event.Type)
		require.NotNil(t, event.Result)
		assert.Equal(t, result, *event.Result)
	})

	t.Run("Publish errors are returned", func(t *testing.T) {
		other := NewPublisher(st.Logger, st.Storage, channel, "game-2")
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := other.Publish(canceled, Event{Type: EventGameStarted})

		assert.Error(t, err)
	})
}
