// Package mocks provides testify mocks for the store interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Gateway is a mock for store.Gateway.
type Gateway struct {
	mock.Mock
}

func (m *Gateway) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *Gateway) RemoveMany(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
