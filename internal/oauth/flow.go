package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// FlowTTL bounds how long a user has to finish a login at the provider.
const FlowTTL = 5 * time.Minute

// ErrUnknownFlow means the state is unknown, expired or already used.
var ErrUnknownFlow = errors.New("oauth: unknown or expired login flow")

// Flow is the server-side half of one login attempt, keyed by its state.
type Flow struct {
	Provider string    `json:"provider"`
	Verifier string    `json:"verifier"`
	Expires  time.Time `json:"expires"`
}

// FlowStore keeps pending logins. Take removes the flow it returns, so a
// state can be redeemed once.
type FlowStore interface {
	Save(ctx context.Context, state string, f Flow) error
	Take(ctx context.Context, state string) (*Flow, error)
}

// MemoryFlowStore is a FlowStore for a single process.
type MemoryFlowStore struct {
	mu    sync.Mutex
	flows map[string]Flow
	now   func() time.Time
}

func NewMemoryFlowStore() *MemoryFlowStore {
	return &MemoryFlowStore{
		flows: make(map[string]Flow),
		now:   time.Now,
	}
}

func (s *MemoryFlowStore) Save(_ context.Context, state string, f Flow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.flows {
		if !now.Before(v.Expires) {
			delete(s.flows, k)
		}
	}
	s.flows[state] = f
	return nil
}

func (s *MemoryFlowStore) Take(_ context.Context, state string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[state]
	if !ok {
		return nil, ErrUnknownFlow
	}
	delete(s.flows, state)
	if !s.now().Before(f.Expires) {
		return nil, ErrUnknownFlow
	}
	return &f, nil
}

// RedisFlowStore shares pending logins between instances.
type RedisFlowStore struct {
	client *goredis.Client
	prefix string
}

func NewRedisFlowStore(client *goredis.Client) *RedisFlowStore {
	return &RedisFlowStore{
		client: client,
		prefix: "oauth_flow:",
	}
}

func (s *RedisFlowStore) key(state string) string {
	return s.prefix + state
}

func (s *RedisFlowStore) Save(ctx context.Context, state string, f Flow) error {
	ttl := time.Until(f.Expires)
	if ttl <= 0 {
		return fmt.Errorf("oauth flow: expires must be in the future")
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("oauth flow: marshal: %w", err)
	}
	return s.client.Set(ctx, s.key(state), data, ttl).Err()
}

// Take uses GETDEL so two callbacks racing on one state cannot both win.
func (s *RedisFlowStore) Take(ctx context.Context, state string) (*Flow, error) {
	val, err := s.client.GetDel(ctx, s.key(state)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrUnknownFlow
	}
	if err != nil {
		return nil, err
	}

	var f Flow
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil, fmt.Errorf("oauth flow: unmarshal: %w", err)
	}
	return &f, nil
}
