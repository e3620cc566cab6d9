package reports

import (
	"context"

	"github.com/stratera/pos-api/internal/domain/repository"
)

// SnapshotRunner executes read-only report queries against a single
// consistent snapshot, so sums and breakdowns computed together agree with
// each other even while checkouts commit concurrently.
type SnapshotRunner interface {
	RunSnapshot(ctx context.Context, fn func(r repository.ReportRepository) error) error
}
