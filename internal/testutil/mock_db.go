package testutil

import (
	"context"
)

// MockTxRunner satisfies the service transaction runner. The in-memory
// stores have no transaction support, so the callback simply runs;
// tests that need a failure mid-transaction arm it on the store itself.
type MockTxRunner struct{}

func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

func (m *MockTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
