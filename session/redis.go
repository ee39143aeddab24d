package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"podcastpulse/config"
	"podcastpulse/viewer"
)

// RedisStore keeps each session's state as JSON under pp:session:<id>
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	fresh  func() viewer.State
}

// NewRedisStore connects to cfg.RedisAddr and verifies connectivity
func NewRedisStore(cfg config.SessionConfig, fresh func() viewer.State) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Ping to verify
	ctx, cancel := context.WithTimeout(context.Background(), config.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	return NewRedisStoreWithClient(client, cfg.TTL, fresh), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client redis.UniversalClient, ttl time.Duration, fresh func() viewer.State) *RedisStore {
	if fresh == nil {
		fresh = func() viewer.State { return viewer.New() }
	}
	return &RedisStore{client: client, ttl: ttl, fresh: fresh}
}

// Load returns the session's state and slides its expiry
func (r *RedisStore) Load(ctx context.Context, id string) (viewer.State, error) {
	key := r.key(id)
	st, err := r.read(ctx, r.client, key)
	if err != nil {
		return viewer.State{}, err
	}
	// Sliding TTL: an active session stays alive ttl after its last request.
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return viewer.State{}, err
	}
	return st, nil
}

// Update applies fn inside a WATCH/MULTI transaction, retrying when another
// writer touched the session in between
func (r *RedisStore) Update(ctx context.Context, id string, fn func(viewer.State) viewer.State) (viewer.State, error) {
	key := r.key(id)
	var next viewer.State

	txf := func(tx *redis.Tx) error {
		cur, err := r.read(ctx, tx, key)
		if err != nil {
			return err
		}
		next = fn(cur)

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < config.MaxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return viewer.State{}, err
	}
	return viewer.State{}, fmt.Errorf("session %s: gave up after %d conflicting updates", id, config.MaxUpdateAttempts)
}

// Delete drops the session
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// Close closes the underlying Redis client
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) key(id string) string {
	return config.SessionKeyPrefix + id
}

// getter is the slice of the client API read needs; both clients and *redis.Tx satisfy it
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) read(ctx context.Context, c getter, key string) (viewer.State, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return r.fresh(), nil
	}
	if err != nil {
		return viewer.State{}, err
	}

	var st viewer.State
	if err := json.Unmarshal(data, &st); err != nil {
		return viewer.State{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return st, nil
}
