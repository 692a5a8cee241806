package analytics

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

var errMissingClient = errors.New("analytics: snapshot client is required")

// SnapshotRepository fetches a snapshot once and serves the cached copy
// afterwards. Failed fetches are not cached.
type SnapshotRepository struct {
	client SnapshotClient

	mu      sync.Mutex
	dataset *revenue.Dataset
}

// NewSnapshotRepository wraps client.
func NewSnapshotRepository(client SnapshotClient) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

// Dataset returns the cached snapshot, fetching it on first use.
func (r *SnapshotRepository) Dataset(ctx context.Context) (*revenue.Dataset, error) {
	if r.client == nil {
		return nil, errMissingClient
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dataset != nil {
		return r.dataset, nil
	}
	ds, err := r.client.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	r.dataset = ds
	return ds, nil
}

// Reset drops the cached snapshot.
func (r *SnapshotRepository) Reset() {
	r.mu.Lock()
	r.dataset = nil
	r.mu.Unlock()
}
