package rediscart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
)

type deleterStub struct {
	keys []string
	err  error
}

func (d *deleterStub) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	d.keys = append(d.keys, keys...)
	if d.err != nil {
		return redis.NewIntResult(0, d.err)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func testStore(client deleter) *Store {
	return &Store{client: client, logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

func TestClearDeletesCartKey(t *testing.T) {
	client := &deleterStub{}
	store := testStore(client)

	if err := store.Clear(context.Background(), "Payer@Example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.keys) != 1 || client.keys[0] != "cart:payer@example.com" {
		t.Fatalf("unexpected keys %v", client.keys)
	}
}

func TestClearSkipsEmptyEmail(t *testing.T) {
	client := &deleterStub{}
	store := testStore(client)

	if err := store.Clear(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.keys) != 0 {
		t.Fatalf("expected no deletes, got %v", client.keys)
	}
}

func TestClearPropagatesRedisError(t *testing.T) {
	redisErr := errors.New("connection refused")
	store := testStore(&deleterStub{err: redisErr})

	if err := store.Clear(context.Background(), "payer@example.com"); !errors.Is(err, redisErr) {
		t.Fatalf("expected redis error, got %v", err)
	}
}

func TestCloseWithoutOwnedClient(t *testing.T) {
	store := testStore(&deleterStub{})
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
