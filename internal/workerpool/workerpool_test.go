package workerpool

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunPreservesInputOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}
	pool := Pool[int, int]{
		Work: func(_ context.Context, n int) int {
			time.Sleep(time.Duration(n) * time.Millisecond)
			return n * 10
		},
	}
	got := pool.Run(context.Background(), items, 3)
	for i, n := range items {
		if got[i] != n*10 {
			t.Fatalf("result %d = %d, want %d", i, got[i], n*10)
		}
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	var inflight, peak atomic.Int32
	pool := Pool[int, bool]{
		Work: func(_ context.Context, _ int) bool {
			now := inflight.Add(1)
			for {
				old := peak.Load()
				if now <= old || peak.CompareAndSwap(old, now) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inflight.Add(-1)
			return true
		},
	}
	results := pool.Run(context.Background(), make([]int, 8), 3)
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if p := peak.Load(); p > 3 {
		t.Fatalf("peak concurrency %d exceeds 3", p)
	}
	if p := peak.Load(); p < 2 {
		t.Fatalf("expected workers to overlap, peak %d", p)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	pool := Pool[string, string]{
		Work: func(_ context.Context, s string) string {
			if s == "b" {
				panic("tool crashed")
			}
			return "ok:" + s
		},
		Recover: func(s string, err error) string {
			return "panic:" + s + ":" + strings.SplitN(err.Error(), "\n", 2)[0]
		},
	}
	got := pool.Run(context.Background(), []string{"a", "b", "c"}, 2)
	if got[0] != "ok:a" || got[2] != "ok:c" {
		t.Fatalf("siblings affected by panic: %v", got)
	}
	if got[1] != "panic:b:job panicked: tool crashed" {
		t.Fatalf("unexpected panic result %q", got[1])
	}
}

func TestRunStopsDispatchOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	started := 0
	pool := Pool[int, string]{
		Work: func(_ context.Context, n int) string {
			mu.Lock()
			started++
			mu.Unlock()
			if n == 0 {
				cancel()
			}
			time.Sleep(10 * time.Millisecond)
			return "done"
		},
		Skip: func(_ int, err error) string {
			if !errors.Is(err, context.Canceled) {
				return "bad"
			}
			return "skipped"
		},
	}
	got := pool.Run(ctx, make([]int, 10), 1)
	if len(got) != 10 {
		t.Fatalf("expected a result per item, got %d", len(got))
	}
	if got[0] != "done" {
		t.Fatalf("first item should complete, got %q", got[0])
	}
	skipped := 0
	for _, r := range got {
		if r == "skipped" {
			skipped++
		}
		if r == "bad" || r == "" {
			t.Fatalf("unexpected result set %v", got)
		}
	}
	if skipped == 0 {
		t.Fatalf("expected undispatched items to be skipped, got %v", got)
	}
	if started+skipped != 10 {
		t.Fatalf("started=%d skipped=%d do not cover all items", started, skipped)
	}
}

func TestRunEmpty(t *testing.T) {
	pool := Pool[int, int]{Work: func(context.Context, int) int { t.Fatal("no work expected"); return 0 }}
	if got := pool.Run(context.Background(), nil, 4); len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
}

func TestWorkerCount(t *testing.T) {
	cases := []struct {
		cpus, tier, want int
	}{
		{8, TierLow, 2},
		{8, TierMedium, 4},
		{8, TierHigh, 7},
		{2, TierLow, 1},
		{1, TierHigh, 1},
		{3, TierMedium, 1},
		{0, TierMedium, 1},
		{16, 9, 8},
	}
	for _, tc := range cases {
		if got := WorkerCount(tc.cpus, tc.tier); got != tc.want {
			t.Fatalf("WorkerCount(%d, %d) = %d, want %d", tc.cpus, tc.tier, got, tc.want)
		}
	}
	if Resolve(5, 8, TierLow) != 5 {
		t.Fatal("explicit worker count must win")
	}
	if Resolve(0, 8, TierLow) != 2 {
		t.Fatal("zero explicit count must fall back to tier policy")
	}
}

func TestRunRaisesPanicWithoutRecover(t *testing.T) {
	var done atomic.Int32
	pool := Pool[string, string]{
		Work: func(_ context.Context, s string) string {
			if s == "b" {
				panic("tool crashed")
			}
			done.Add(1)
			return "ok:" + s
		},
	}

	var raised any
	func() {
		defer func() { raised = recover() }()
		pool.Run(context.Background(), []string{"a", "b", "c", "d"}, 2)
	}()

	err, ok := raised.(error)
	if !ok || !strings.HasPrefix(err.Error(), "job panicked: tool crashed") {
		t.Fatalf("expected job panic to reach the caller, got %v", raised)
	}
	if done.Load() != 3 {
		t.Fatalf("other items should still run, done=%d", done.Load())
	}
}
