package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "book_reviews/internal/adapters/redis"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0), mr
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "dune", Count: 3}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "dune" || got.Count != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestCache_MissReturnsFalseNoError(t *testing.T) {
	c, _ := newCache(t)
	var got payload
	ok, err := c.Get(context.Background(), "absent", &got)
	if ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestCache_DelRemovesKey(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "x"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var got payload
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("key survived delete")
	}
}

func TestCache_IncrCountsAndDecodesViaGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	n, err := c.Incr(ctx, "ver", 60)
	if err != nil || n != 1 {
		t.Fatalf("first incr: n=%d err=%v", n, err)
	}
	n, err = c.Incr(ctx, "ver", 60)
	if err != nil || n != 2 {
		t.Fatalf("second incr: n=%d err=%v", n, err)
	}

	// counters read back through the JSON path
	var got int64
	ok, err := c.Get(ctx, "ver", &got)
	if err != nil || !ok || got != 2 {
		t.Fatalf("get counter: ok=%v err=%v got=%d", ok, err, got)
	}

	// every bump refreshes the TTL
	if ttl := mr.TTL("ver"); ttl != 60*time.Second {
		t.Fatalf("unexpected TTL: %v", ttl)
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "x"}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var got payload
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("key survived TTL")
	}
}
