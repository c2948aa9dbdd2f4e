package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120
	maxWait      = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "7-alpine"
)

// Suite is a throwaway Redis server for a spectator feed test.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
	// Addr is the host:port the container is reachable on.
	Addr string
}

// New - starts Redis in docker for the calling test. The test is skipped when
// no docker daemon answers.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWait)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon does not answer: %v", err)
	}

	pool.MaxWait = maxWait

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Cmd:        []string{"redis-server", "--save", "", "--appendonly", "no"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis: %v", err)
		}
	})

	// hard kill if cleanup never runs
	_ = resource.Expire(containerTTL)

	addr := resource.GetHostPort(redisPort)
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("redis never became ready at %s: %v", addr, err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Storage: client,
		Addr:    addr,
	}
}

// Subscribe - joins channel and waits for the server to confirm, so nothing
// published afterwards is missed.
func (that *Suite) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	that.Helper()

	sub := that.Storage.Subscribe(ctx, channel)
	that.Cleanup(func() {
		_ = sub.Close()
	})

	if _, err := sub.Receive(ctx); err != nil {
		that.Fatalf("could not subscribe to %s: %v", channel, err)
	}

	return sub
}

// NextMessage - the next payload on sub, failing t after timeout.
func (that *Suite) NextMessage(ctx context.Context, t testing.TB, sub *redis.PubSub, timeout time.Duration) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("no message within %s: %v", timeout, err)
	}

	return msg.Payload
}
