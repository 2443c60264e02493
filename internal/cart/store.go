package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

type cartStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(cartToken string) string
}

type record struct {
	Lines []Line `json:"lines"`
}

// Store persists session carts in Redis keyed by cart token.
type Store struct {
	redis cartStore
	ttl   time.Duration
}

// NewStore builds a cart store with the configured session TTL.
func NewStore(redis cartStore, ttl time.Duration) (*Store, error) {
	if redis == nil {
		return nil, fmt.Errorf("redis store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{redis: redis, ttl: ttl}, nil
}

// Load returns the stored lines for the token; an unknown token is an empty cart.
func (s *Store) Load(ctx context.Context, token string) ([]Line, error) {
	raw, err := s.redis.Get(ctx, s.redis.CartKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart")
	}
	return rec.Lines, nil
}

// Save writes the lines back, refreshing the session TTL. An empty cart
// deletes the key.
func (s *Store) Save(ctx context.Context, token string, lines []Line) error {
	key := s.redis.CartKey(token)
	if len(lines) == 0 {
		if err := s.redis.Del(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
		}
		return nil
	}

	raw, err := json.Marshal(record{Lines: lines})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := s.redis.Set(ctx, key, string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

// Clear removes the cart for the token.
func (s *Store) Clear(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.redis.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

// Upsert inserts the line, replacing any line for the same service.
// Re-adding a service is last-write-wins on the whole line.
func Upsert(lines []Line, line Line) []Line {
	for i := range lines {
		if lines[i].ServiceID == line.ServiceID {
			lines[i] = line
			return lines
		}
	}
	return append(lines, line)
}

// RemoveLine drops the line for the service if present; removing an absent
// service is a no-op.
func RemoveLine(lines []Line, serviceID uuid.UUID) []Line {
	out := lines[:0]
	for _, line := range lines {
		if line.ServiceID != serviceID {
			out = append(out, line)
		}
	}
	return out
}
