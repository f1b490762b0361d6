package cache

import (
	"context"
	"io"
	"log"
	"testing"
	"time"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := &Redis{logger: log.New(io.Discard, "", 0), defaultTTL: time.Minute}
	ctx := context.Background()

	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out map[string]int
	ok, err := r.GetJSON(ctx, "k", &out)
	if err != nil || ok {
		t.Fatalf("expected miss without error, got ok=%v err=%v", ok, err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.DeleteByPattern(ctx, "match:*"); err != nil {
		t.Fatalf("delete by pattern: %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("ping must report unavailability")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if ok, err := r.GetJSON(context.Background(), "k", new(int)); ok || err != nil {
		t.Fatalf("nil cache must miss quietly")
	}
}
