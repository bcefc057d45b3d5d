package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheManager(client), mr
}

func TestCacheHelper(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round trip", func(t *testing.T) {
		cm, _ := newTestCache(t)

		type payload struct {
			Batch     int  `json:"batch"`
			Available bool `json:"available"`
		}

		if err := cm.Stats.Set(ctx, "option:1", payload{Batch: 2, Available: true}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var got payload
		if err := cm.Stats.Get(ctx, "option:1", &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Batch != 2 || !got.Available {
			t.Errorf("unexpected payload %+v", got)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		cm, _ := newTestCache(t)

		var got string
		if err := cm.Option.Get(ctx, "absent", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("keys are prefixed per helper", func(t *testing.T) {
		cm, mr := newTestCache(t)

		if err := cm.Option.Set(ctx, "1", "title", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if !mr.Exists("option:1") {
			t.Errorf("expected key option:1, have %v", mr.Keys())
		}

		// The stats helper must not see option keys.
		var got string
		if err := cm.Stats.Get(ctx, "1", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound across prefixes, got %v", err)
		}
	})

	t.Run("entries expire", func(t *testing.T) {
		cm, mr := newTestCache(t)

		if err := cm.Stats.Set(ctx, "option:3", 42, 5*time.Second); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		mr.FastForward(6 * time.Second)

		var got int
		if err := cm.Stats.Get(ctx, "option:3", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected expiry, got %v", err)
		}
	})

	t.Run("delete removes multiple keys", func(t *testing.T) {
		cm, mr := newTestCache(t)

		for _, key := range []string{"1", "2", "list"} {
			if err := cm.Option.Set(ctx, key, "x", time.Minute); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}

		if err := cm.Option.Delete(ctx, "1", "list"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if mr.Exists("option:1") || mr.Exists("option:list") {
			t.Error("deleted keys still present")
		}
		if !mr.Exists("option:2") {
			t.Error("untouched key removed")
		}
	})

	t.Run("invalidate pattern", func(t *testing.T) {
		cm, mr := newTestCache(t)

		for _, key := range []string{"1", "2", "3"} {
			if err := cm.Stats.Set(ctx, "option:"+key, 1, time.Minute); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}

		if err := cm.Stats.InvalidatePattern(ctx, "option:*"); err != nil {
			t.Fatalf("InvalidatePattern failed: %v", err)
		}
		if len(mr.Keys()) != 0 {
			t.Errorf("expected empty store, have %v", mr.Keys())
		}
	})
}

func TestCacheOrExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("executes once then serves from cache", func(t *testing.T) {
		cm, _ := newTestCache(t)

		calls := 0
		fn := func() (interface{}, error) {
			calls++
			return map[string]int{"remaining": 4}, nil
		}

		var got map[string]int
		for i := 0; i < 3; i++ {
			if err := cm.Stats.CacheOrExecute(ctx, "option:5", &got, time.Minute, fn); err != nil {
				t.Fatalf("CacheOrExecute %d failed: %v", i, err)
			}
		}

		if calls != 1 {
			t.Errorf("expected 1 execution, got %d", calls)
		}
		if got["remaining"] != 4 {
			t.Errorf("unexpected value %v", got)
		}
	})

	t.Run("recomputes after expiry", func(t *testing.T) {
		cm, mr := newTestCache(t)

		calls := 0
		fn := func() (interface{}, error) {
			calls++
			return calls, nil
		}

		var got int
		if err := cm.Stats.CacheOrExecute(ctx, "k", &got, 5*time.Second, fn); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}

		mr.FastForward(6 * time.Second)

		if err := cm.Stats.CacheOrExecute(ctx, "k", &got, 5*time.Second, fn); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if calls != 2 || got != 2 {
			t.Errorf("expected recompute, calls=%d got=%d", calls, got)
		}
	})

	t.Run("propagates execution errors", func(t *testing.T) {
		cm, _ := newTestCache(t)

		wantErr := errors.New("boom")
		var got int
		err := cm.Stats.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("expected execution error, got %v", err)
		}
	})

	t.Run("degrades gracefully without a client", func(t *testing.T) {
		cm := NewCacheManager(nil)

		calls := 0
		var got int
		for i := 0; i < 2; i++ {
			if err := cm.Stats.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
				calls++
				return calls, nil
			}); err != nil {
				t.Fatalf("CacheOrExecute failed: %v", err)
			}
		}

		// No cache means every read recomputes.
		if calls != 2 {
			t.Errorf("expected 2 executions, got %d", calls)
		}
	})
}
