package workers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/otp"
	"github.com/dalemusser/jobhub/internal/app/system/workers"
	"go.uber.org/zap"
)

type fakePruner struct {
	cutoff time.Time
	n      int64
	err    error
}

func (f *fakePruner) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func TestSweepCodes(t *testing.T) {
	store := otp.NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = store.Put(ctx, otp.NewKey(otp.PurposeEmailVerify, "old@x.com"), otp.Record{ExpiresAt: now.Add(-time.Second)})
	_ = store.Put(ctx, otp.NewKey(otp.PurposeEmailVerify, "new@x.com"), otp.Record{ExpiresAt: now.Add(time.Minute)})

	n, err := workers.SweepCodes(store, func() time.Time { return now })(ctx)
	if err != nil || n != 1 {
		t.Fatalf("sweep = %d, %v; want 1", n, err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestPrunePending_UsesRetention(t *testing.T) {
	now := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	p := &fakePruner{n: 3}

	n, err := workers.PrunePending(p, 24*time.Hour, func() time.Time { return now })(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("prune = %d, %v", n, err)
	}
	if want := now.Add(-24 * time.Hour); !p.cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", p.cutoff, want)
	}
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := workers.NewScheduler("", zap.NewNop())
	var ran []string
	s.Add("failing", func(context.Context) (int64, error) {
		ran = append(ran, "failing")
		return 0, errors.New("boom")
	})
	s.Add("ok", func(context.Context) (int64, error) {
		ran = append(ran, "ok")
		return 1, nil
	})

	if got := s.Jobs(); len(got) != 2 || got[0] != "failing" || got[1] != "ok" {
		t.Errorf("Jobs = %v", got)
	}
	s.RunOnce(context.Background())
	if len(ran) != 2 || ran[1] != "ok" {
		t.Errorf("ran = %v", ran)
	}
}

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	s := workers.NewScheduler("not a spec", zap.NewNop())
	s.Add("noop", func(context.Context) (int64, error) { return 0, nil })
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected an error for an invalid spec")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := workers.NewScheduler("@every 1h", zap.NewNop())
	s.Add("noop", func(context.Context) (int64, error) { return 0, nil })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
	s.Stop()
}
