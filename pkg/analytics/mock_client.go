package analytics

import (
	"context"
	"sync"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// MockClient serves a fixed dataset; handy for tests and local demos.
type MockClient struct {
	mu      sync.RWMutex
	dataset *revenue.Dataset
	err     error
	calls   int
}

// NewMockClient returns a client answering with ds.
func NewMockClient(ds *revenue.Dataset) *MockClient {
	return &MockClient{dataset: ds}
}

// Fail makes later fetches return err; nil restores the dataset.
func (c *MockClient) Fail(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Calls counts FetchSnapshot invocations.
func (c *MockClient) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

func (c *MockClient) FetchSnapshot(context.Context) (*revenue.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.dataset, nil
}
