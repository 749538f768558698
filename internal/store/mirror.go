package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Mirror is the write-behind face of a Gateway. Writes are serialized to
// JSON and flushed on a goroutine; the caller's mutation has already
// happened, so a failed write is logged and otherwise dropped.
type Mirror struct {
	gateway Gateway
	logger  *slog.Logger
	wg      sync.WaitGroup

	mu   sync.Mutex
	seqs map[string]uint64
}

// NewMirror creates a Mirror over the given gateway.
func NewMirror(gateway Gateway, logger *slog.Logger) *Mirror {
	return &Mirror{gateway: gateway, logger: logger, seqs: make(map[string]uint64)}
}

// Write mirrors v to the gateway under key without blocking the caller.
// Each key carries a sequence number so overlapping flushes cannot leave
// an older snapshot as the durable value: a flush that has been
// superseded by a later Write for the same key is dropped instead of
// racing it.
func (m *Mirror) Write(key string, v any) {
	if m == nil || m.gateway == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		m.log("marshal for persistence failed", key, err)
		return
	}

	m.mu.Lock()
	m.seqs[key]++
	seq := m.seqs[key]
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.seqs[key] != seq {
			return
		}
		if err := m.gateway.Set(context.Background(), key, data); err != nil {
			m.log("persistence write failed", key, err)
		}
	}()
}

// Load reads key into v. A missing key leaves v untouched and reports
// found=false.
func (m *Mirror) Load(ctx context.Context, key string, v any) (bool, error) {
	if m == nil || m.gateway == nil {
		return false, nil
	}
	data, err := m.gateway.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Remove deletes keys synchronously.
func (m *Mirror) Remove(ctx context.Context, keys []string) error {
	if m == nil || m.gateway == nil {
		return nil
	}
	return m.gateway.RemoveMany(ctx, keys)
}

// Wait blocks until every pending write has been flushed. Called on
// shutdown so the last mutation reaches disk.
func (m *Mirror) Wait() {
	if m == nil {
		return
	}
	m.wg.Wait()
}

func (m *Mirror) log(msg, key string, err error) {
	if m.logger != nil {
		m.logger.Error(msg, "key", key, "error", err)
	}
}
