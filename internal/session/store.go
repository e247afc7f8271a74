package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	apperrors "github.com/acme/telesales-call-manager/pkg/errors"
)

// Store keeps session state in Redis so the queue survives stateless HTTP
// requests. A per-session lock serializes outcome/advance calls; engine
// mutations must happen between Acquire and Release.
type Store struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
	prefix  string
}

// NewStore builds a session store.
func NewStore(client *redis.Client, ttl, lockTTL time.Duration, prefix string) *Store {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	if prefix == "" {
		prefix = "telesales:session"
	}
	return &Store{client: client, ttl: ttl, lockTTL: lockTTL, prefix: prefix}
}

// Save serializes the session under its TTL.
func (st *Store) Save(ctx context.Context, s *State) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}
	if err := st.client.Set(ctx, st.key(s.ID), payload, st.ttl).Err(); err != nil {
		return fmt.Errorf("session store: set: %w", err)
	}
	return nil
}

// Load fetches a session by id.
func (st *Store) Load(ctx context.Context, id uuid.UUID) (*State, error) {
	payload, err := st.client.Get(ctx, st.key(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("session store: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("session store: get: %w", err)
	}
	s := new(State)
	if err := json.Unmarshal(payload, s); err != nil {
		return nil, fmt.Errorf("session store: unmarshal: %w", err)
	}
	return s, nil
}

// Delete removes a session.
func (st *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := st.client.Del(ctx, st.key(id)).Err(); err != nil {
		return fmt.Errorf("session store: del: %w", err)
	}
	return nil
}

// Acquire takes the per-session lock. It returns false when another call
// against the same session is in flight.
func (st *Store) Acquire(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := st.client.SetNX(ctx, st.lockKey(id), 1, st.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("session store: acquire lock: %w", err)
	}
	return ok, nil
}

// Release frees the per-session lock.
func (st *Store) Release(ctx context.Context, id uuid.UUID) error {
	if err := st.client.Del(ctx, st.lockKey(id)).Err(); err != nil {
		return fmt.Errorf("session store: release lock: %w", err)
	}
	return nil
}

func (st *Store) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", st.prefix, id.String())
}

func (st *Store) lockKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:lock", st.prefix, id.String())
}
