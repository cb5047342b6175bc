package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Adapter layers JSON encoding over a Store. None of its methods fail:
// a missing or undecodable value reads as absent, and write failures are
// logged and dropped.
type Adapter struct {
	store  Store
	logger *zap.Logger
}

// NewAdapter wraps s. A nil logger discards log output.
func NewAdapter(s Store, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{store: s, logger: logger.Named("store")}
}

// Read decodes the value under key into dst and reports whether a usable
// value was found. On a decode failure dst may be partially written, so
// callers should reset it when Read returns false.
func (a *Adapter) Read(ctx context.Context, key string, dst any) bool {
	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		a.logger.Warn("read failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		a.logger.Warn("discarding corrupt value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Write encodes v and stores it under key, replacing any previous value.
func (a *Adapter) Write(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("encoding value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := a.store.Put(ctx, key, raw); err != nil {
		a.logger.Warn("write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.store.Delete(ctx, key); err != nil {
		a.logger.Warn("remove failed", zap.String("key", key), zap.Error(err))
	}
}
