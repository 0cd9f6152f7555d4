package testutil

import (
	"context"
	"sync"

	"github.com/invoiceai/invoiceai/internal/postgres"
)

var _ postgres.Transactor = (*MockTransactor)(nil)

// Snapshotter is a store that can be rolled back to an earlier state
type Snapshotter interface {
	Snapshot() func()
}

// MockTransactor runs fn directly. When the outermost fn fails, the tracked
// stores are restored to their state before it ran. Nested calls join the
// outer one.
type MockTransactor struct {
	mu     sync.Mutex
	calls  int
	depth  int
	stores []Snapshotter
}

func NewMockTransactor(stores ...Snapshotter) *MockTransactor {
	return &MockTransactor{stores: stores}
}

func (t *MockTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	outer := t.depth == 0
	t.depth++
	t.mu.Unlock()

	var restores []func()
	if outer {
		for _, store := range t.stores {
			restores = append(restores, store.Snapshot())
		}
	}

	err := fn(ctx)

	t.mu.Lock()
	t.depth--
	t.mu.Unlock()

	if err != nil {
		for _, restore := range restores {
			restore()
		}
	}
	return err
}

// Calls returns how many transactions were started
func (t *MockTransactor) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
