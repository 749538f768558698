// Package storetest provides an in-memory gateway for service tests.
package storetest

import (
	"context"
	"sync"

	"github.com/ganot/dayplan/internal/store"
)

// Gateway is a map-backed store.Gateway, safe for the mirror's
// goroutines.
type Gateway struct {
	mu   sync.Mutex
	data map[string][]byte
}

// New creates an empty in-memory gateway.
func New() *Gateway {
	return &Gateway{data: make(map[string][]byte)}
}

func (g *Gateway) Get(_ context.Context, key string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	data, ok := g.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (g *Gateway) Set(_ context.Context, key string, value []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = value
	return nil
}

func (g *Gateway) RemoveMany(_ context.Context, keys []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, key := range keys {
		delete(g.data, key)
	}
	return nil
}

// Keys returns the stored key set.
func (g *Gateway) Keys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]string, 0, len(g.data))
	for key := range g.data {
		keys = append(keys, key)
	}
	return keys
}
