package docnum

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("WD")
	period := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "WD-2026-00001" {
		t.Errorf("expected WD-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "WD-2026-00002" {
		t.Errorf("expected WD-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("RP")
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}
	period := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	// First call reserves a range of 10; the next nine come from memory.
	for i := 1; i <= 10; i++ {
		num, err := svc.GetNextNumber(ctx, cfg, opts, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := formatNumber(cfg, period, int64(i))
		if num != want {
			t.Errorf("call %d: expected %s, got %s", i, want, num)
		}
	}

	if q.currentValue != 10 {
		t.Errorf("expected a single reserved range of 10, DB at %d", q.currentValue)
	}

	// Eleventh call reserves the next range.
	num, err := svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != formatNumber(cfg, period, 11) {
		t.Errorf("expected %s, got %s", formatNumber(cfg, period, 11), num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected second reserved range, DB at %d", q.currentValue)
	}
}

func TestGetNextNumber_NoYear(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := Config{Prefix: "PK", IncludeYear: false, PadWidth: 4, ResetPeriod: "never"}

	num, err := svc.GetNextNumber(context.Background(), cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PK-0001" {
		t.Errorf("expected PK-0001, got %s", num)
	}
}
