package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := Open("redis://" + mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestSetExAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.SetEx(ctx, "qa:what is caching", "storing results for reuse", time.Hour); err != nil {
		t.Fatal(err)
	}

	val, ok, err := s.Get(ctx, "qa:what is caching")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if val != "storing results for reuse" {
		t.Errorf("unexpected value %q", val)
	}
}

func TestGetAbsentKey(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "qa:never written")
	if err != nil {
		t.Fatalf("absent key must not error, got %v", err)
	}
	if ok {
		t.Error("expected miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if err := s.SetEx(ctx, "qa:short lived", "v", 10*time.Second); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(11 * time.Second)

	if _, ok, _ := s.Get(ctx, "qa:short lived"); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestStatsCounters(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_ = s.SetEx(ctx, "k", "v", time.Hour)
	s.Get(ctx, "k")
	s.Get(ctx, "absent")
	s.Get(ctx, "absent")

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 2 {
		t.Errorf("expected hits=1 misses=2, got hits=%d misses=%d", st.Hits, st.Misses)
	}
}

func TestGetAfterServerGone(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, ok, err := s.Get(context.Background(), "k")
	if ok {
		t.Error("expected no hit from a dead store")
	}
	if err == nil {
		t.Error("expected an error from a dead store")
	}
}

func TestOpenBadURL(t *testing.T) {
	if _, err := Open("not a url"); err == nil {
		t.Error("expected error for malformed URL")
	}
}
