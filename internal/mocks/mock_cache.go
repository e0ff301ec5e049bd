package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MockCache is an in-memory Cache backed by a map. Values round-trip through
// JSON just like the Redis implementation. SetErr and GetErr force failures.
type MockCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	SetErr error
	GetErr error
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]byte),
	}
}

func (c *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.SetErr != nil {
		return c.SetErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data

	return nil
}

func (c *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.GetErr != nil {
		return false, c.GetErr
	}

	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()

	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, dest)
}
