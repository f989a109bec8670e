package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"manpower/internal/ports/output"
)

var _ output.ChangeNotifier = (*RedisNotifier)(nil)

// Envelope is the message published for every change.
type Envelope struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Payload   output.Change `json:"payload"`
}

func newEnvelope(change output.Change, now time.Time) Envelope {
	return Envelope{
		ID:        uuid.New().String(),
		Type:      string(change.Kind),
		Timestamp: now.UTC(),
		Payload:   change,
	}
}

// RedisNotifier publishes roster changes on a Redis pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisNotifier connects to url and checks the connection.
func NewRedisNotifier(ctx context.Context, url, channel string, logger *zap.Logger) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis connected", zap.String("channel", channel))
	return &RedisNotifier{client: client, channel: channel, logger: logger}, nil
}

func (n *RedisNotifier) Publish(ctx context.Context, change output.Change) error {
	payload, err := json.Marshal(newEnvelope(change, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	n.logger.Debug("change published", zap.String("type", string(change.Kind)), zap.Uint("event_id", change.EventID))
	return nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

// Nop discards changes. It is used when no Redis URL is configured.
type Nop struct{}

var _ output.ChangeNotifier = Nop{}

func (Nop) Publish(context.Context, output.Change) error { return nil }
