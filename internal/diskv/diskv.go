// Package diskv implements the store gateway over a flat on-disk
// key-value store, one file per key under the data directory.
package diskv

import (
	"context"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/ganot/dayplan/internal/store"
)

// Gateway implements store.Gateway backed by diskv.
type Gateway struct {
	d *diskv.Diskv
}

// New creates a diskv-backed gateway rooted at basePath.
func New(basePath string) (*Gateway, error) {
	if basePath == "" {
		return nil, fmt.Errorf("diskv: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("diskv: ensure base path: %w", err)
	}
	return &Gateway{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (g *Gateway) Get(_ context.Context, key string) ([]byte, error) {
	data, err := g.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("diskv: read %s: %w", key, err)
	}
	return data, nil
}

func (g *Gateway) Set(_ context.Context, key string, value []byte) error {
	if err := g.d.Write(key, value); err != nil {
		return fmt.Errorf("diskv: write %s: %w", key, err)
	}
	return nil
}

func (g *Gateway) RemoveMany(_ context.Context, keys []string) error {
	for _, key := range keys {
		if err := g.d.Erase(key); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("diskv: erase %s: %w", key, err)
		}
	}
	return nil
}
