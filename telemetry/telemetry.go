// Package telemetry is a fire-and-forget counter sink. Gameplay never
// blocks on it and never fails because of it.
package telemetry

import (
	"context"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog"
)

// Sink accepts named counter increments.
type Sink interface {
	Incr(ctx context.Context, name string)
}

// Noop discards all counters.
type Noop struct{}

func (Noop) Incr(context.Context, string) {}

const counterPrefix = "sketch:counters:"

// Counter names incremented by the realtime layer.
const (
	CounterRoomsCreated      = "rooms_created"
	CounterConnectionsOpened = "connections_opened"
	CounterConnectionsClosed = "connections_closed"
	CounterGamesStarted      = "games_started"
	CounterGamesCompleted    = "games_completed"
	CounterGuessesTotal      = "guesses_total"
	CounterGuessesCorrect    = "guesses_correct"
)

// CounterNames lists every counter the stats endpoint reports.
func CounterNames() []string {
	return []string{
		CounterRoomsCreated,
		CounterConnectionsOpened,
		CounterConnectionsClosed,
		CounterGamesStarted,
		CounterGamesCompleted,
		CounterGuessesTotal,
		CounterGuessesCorrect,
	}
}

// RedisSink accumulates counters in redis. Increments run in a background
// goroutine with a short deadline; errors only log.
type RedisSink struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisSink(client *redis.Client, logger zerolog.Logger) *RedisSink {
	return &RedisSink{client: client, logger: logger}
}

func (s *RedisSink) Incr(_ context.Context, name string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Incr(ctx, counterPrefix+name).Err(); err != nil {
			s.logger.Debug().Err(err).Str("counter", name).Msg("telemetry increment failed")
		}
	}()
}

// Snapshot reads the current counter values, for the stats endpoint.
func (s *RedisSink) Snapshot(ctx context.Context, names []string) (map[string]int64, error) {
	out := make(map[string]int64, len(names))
	for _, name := range names {
		val, err := s.client.Get(ctx, counterPrefix+name).Int64()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}
