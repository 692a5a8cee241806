// Package analytics loads revenue snapshots from upstream BI services.
package analytics

import (
	"context"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// SnapshotClient fetches a complete revenue dataset from a remote source.
type SnapshotClient interface {
	FetchSnapshot(ctx context.Context) (*revenue.Dataset, error)
}
