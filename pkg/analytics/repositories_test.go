package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

func TestSnapshotRepositoryCachesSuccess(t *testing.T) {
	mock := NewMockClient(revenue.MustDefaultDataset())
	mock.Fail(errors.New("timeout"))
	repo := NewSnapshotRepository(mock)

	if _, err := repo.Dataset(context.Background()); err == nil {
		t.Fatalf("expected first fetch to fail")
	}
	mock.Fail(nil)
	first, err := repo.Dataset(context.Background())
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	second, err := repo.Dataset(context.Background())
	if err != nil || second != first {
		t.Fatalf("expected cached dataset, got %p, %v", second, err)
	}
	if mock.Calls() != 2 {
		t.Fatalf("expected 2 fetches, got %d", mock.Calls())
	}

	repo.Reset()
	if _, err := repo.Dataset(context.Background()); err != nil {
		t.Fatalf("dataset after reset: %v", err)
	}
	if mock.Calls() != 3 {
		t.Fatalf("expected refetch after reset, got %d", mock.Calls())
	}
}

func TestSnapshotRepositoryRequiresClient(t *testing.T) {
	if _, err := NewSnapshotRepository(nil).Dataset(context.Background()); !errors.Is(err, errMissingClient) {
		t.Fatalf("expected errMissingClient, got %v", err)
	}
}
