package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestPool_Workers(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{4, 4},
		{0, runtime.GOMAXPROCS(0)},
		{-5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		p := NewPool(tt.n)
		if p.Workers() != tt.want {
			t.Errorf("NewPool(%d).Workers() = %d, want %d", tt.n, p.Workers(), tt.want)
		}
		p.Close()
	}
}

func TestPool_Map(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 100
	var hits [n]atomic.Int32
	if err := p.Map(context.Background(), n, func(i int) { hits[i].Add(1) }); err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Errorf("index %d ran %d times, want 1", i, got)
		}
	}
}

func TestPool_MapEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	if err := p.Map(context.Background(), 0, func(int) { t.Error("fn called") }); err != nil {
		t.Errorf("Map(0) error = %v", err)
	}
}

func TestPool_MapCanceled(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	err := p.Map(ctx, 10, func(int) { calls.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Map() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("fn ran %d times after cancel", calls.Load())
	}
}

func TestPool_MapAfterClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()
	if err := p.Map(context.Background(), 3, func(int) { t.Error("fn called") }); err != nil {
		t.Errorf("Map() on closed pool error = %v", err)
	}
}

func TestPool_MapMoreJobsThanQueue(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	var sum atomic.Int64
	const n = 200
	if err := p.Map(context.Background(), n, func(i int) { sum.Add(int64(i)) }); err != nil {
		t.Fatal(err)
	}
	if want := int64(n * (n - 1) / 2); sum.Load() != want {
		t.Errorf("sum = %d, want %d", sum.Load(), want)
	}
}
