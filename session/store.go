// Package session keeps one viewer state per web session. A session that sits
// idle past its TTL is dropped, which is the web equivalent of unmounting.
package session

import (
	"context"

	"podcastpulse/config"
	"podcastpulse/logger"
	"podcastpulse/viewer"
)

// Store holds viewer states keyed by session id
type Store interface {
	// Load returns the session's state, or a fresh state if there is none
	Load(ctx context.Context, id string) (viewer.State, error)
	// Update atomically replaces the session's state with fn(current)
	Update(ctx context.Context, id string, fn func(viewer.State) viewer.State) (viewer.State, error)
	// Delete drops the session
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewFromConfig returns a RedisStore when cfg.RedisAddr is set and a
// MemoryStore otherwise. fresh builds the state of a new session.
func NewFromConfig(cfg config.SessionConfig, fresh func() viewer.State) (Store, error) {
	if cfg.RedisAddr == "" {
		logger.Log.Info("session store: in-memory")
		return NewMemoryStore(cfg.TTL, fresh), nil
	}
	store, err := NewRedisStore(cfg, fresh)
	if err != nil {
		return nil, err
	}
	logger.Log.WithField("addr", cfg.RedisAddr).Info("session store: redis")
	return store, nil
}
