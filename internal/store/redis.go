package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"ctchen222/Tic-Tac-Toe-N/internal/events"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/codes"
)

// RedisBackend stores each profile as the hash "profile:<id>" and announces
// every write on the profile's Pub/Sub channel.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend creates a Redis-based Backend.
func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

// ForProfile returns the hash-backed namespace of profileID.
func (b *RedisBackend) ForProfile(profileID string) KV {
	return &redisKV{rdb: b.rdb, profileID: profileID}
}

// Subscribe delivers a notification whenever the profile is written. The
// returned function unsubscribes and must be called once.
func (b *RedisBackend) Subscribe(ctx context.Context, profileID string) (<-chan events.ProfileUpdatedPayload, func() error, error) {
	ctx, span := tracer.Start(ctx, "RedisBackend.Subscribe")
	defer span.End()

	pubsub := b.rdb.Subscribe(ctx, events.ProfileChannel(profileID))
	// Wait for the subscription confirmation so no write is missed afterwards.
	if _, err := pubsub.Receive(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to subscribe to profile channel")
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to profile %s: %w", profileID, err)
	}

	out := make(chan events.ProfileUpdatedPayload, 1)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			payload, ok, err := events.DecodeProfileUpdated([]byte(msg.Payload))
			if err != nil {
				slog.Warn("Could not decode profile event", "profile.id", profileID, "error", err)
				continue
			}
			if !ok {
				continue
			}
			select {
			case out <- payload:
			default:
				// A reload is already pending; one is enough.
			}
		}
	}()

	return out, pubsub.Close, nil
}

type redisKV struct {
	rdb       *redis.Client
	profileID string
}

func (r *redisKV) key() string {
	return fmt.Sprintf("profile:%s", r.profileID)
}

func (r *redisKV) GetAll(ctx context.Context) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "RedisBackend.GetAll")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, r.key()).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read profile hash")
		return nil, fmt.Errorf("failed to get profile from redis: %w", err)
	}
	return data, nil
}

func (r *redisKV) SetAll(ctx context.Context, values map[string]string) error {
	ctx, span := tracer.Start(ctx, "RedisBackend.SetAll")
	defer span.End()

	fields := make(map[string]interface{}, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		fields[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	event, err := events.NewProfileUpdated(r.profileID, keys)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, r.key(), fields)
	pipe.Publish(ctx, events.ProfileChannel(r.profileID), event)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write profile hash")
		return fmt.Errorf("failed to save profile in redis: %w", err)
	}
	return nil
}
