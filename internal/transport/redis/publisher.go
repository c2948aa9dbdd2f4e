package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
)

const DefaultChannel = "tictactoe3d:events"

const (
	EventGameStarted  = "game:started"
	EventMoveApplied  = "game:move"
	EventGameFinished = "game:finished"
)

// Event is one message of the spectator feed.
type Event struct {
	GameID  string          `json:"game_id"`
	Type    string          `json:"type"`
	Players []entity.Player `json:"players,omitempty"`
	Player  *entity.Player  `json:"player,omitempty"`
	Square  int             `json:"square,omitempty"`
	Coord   *entity.Coord   `json:"coord,omitempty"`
	Board   string          `json:"board,omitempty"`
	Result  *entity.Result  `json:"result,omitempty"`
	At      time.Time       `json:"at"`
}

// Publisher streams game progress over Redis pub/sub. Nothing is stored.
type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
	gameID  string
	now     func() time.Time
}

func NewPublisher(logger *slog.Logger, client *redis.Client, channel, gameID string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		logger:  logger.With("component", "redis_publisher", "game_id", gameID),
		client:  client,
		channel: channel,
		gameID:  gameID,
		now:     time.Now,
	}
}

// Publish - sends one event to the channel.
func (that *Publisher) Publish(ctx context.Context, event Event) error {
	event.GameID = that.gameID
	event.At = that.now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to Redis: %w", err)
	}

	return nil
}

func (that *Publisher) GameStarted(ctx context.Context, x, o entity.Player) {
	that.send(ctx, Event{Type: EventGameStarted, Players: []entity.Player{x, o}})
}

func (that *Publisher) MoveApplied(ctx context.Context, player entity.Player, coord entity.Coord, board *entity.Board) {
	that.send(ctx, Event{
		Type:   EventMoveApplied,
		Player: &player,
		Square: coord.Square(),
		Coord:  &coord,
		Board:  board.Compact(),
	})
}

func (that *Publisher) GameFinished(ctx context.Context, result entity.Result) {
	that.send(ctx, Event{Type: EventGameFinished, Result: &result})
}

func (that *Publisher) send(ctx context.Context, event Event) {
	if err := that.Publish(ctx, event); err != nil {
		that.logger.Error("failed to publish game event", "type", event.Type, "error", err)
	}
}
