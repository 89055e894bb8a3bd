// internal/app/system/workers/cleanup.go
package workers

import (
	"context"
	"time"
)

// CodeSweeper drops expired one-time codes. *otp.MemoryStore satisfies it.
type CodeSweeper interface {
	Sweep(now time.Time) int
}

// PendingPruner deletes pending-registration markers created before cutoff.
type PendingPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SweepCodes returns a job removing expired codes from an in-process store.
func SweepCodes(s CodeSweeper, now func() time.Time) JobFunc {
	return func(context.Context) (int64, error) {
		return int64(s.Sweep(now())), nil
	}
}

// PrunePending returns a job removing markers older than retention.
func PrunePending(p PendingPruner, retention time.Duration, now func() time.Time) JobFunc {
	return func(ctx context.Context) (int64, error) {
		return p.DeleteOlderThan(ctx, now().Add(-retention))
	}
}
