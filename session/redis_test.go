package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T, lifetime time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "gs", lifetime), mr
}

func TestRedisStoreSaveGetRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()
	sess := newTestSession(t)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Token != sess.Token || got.User.ID != sess.User.ID {
		t.Fatalf("round trip changed identity: %+v", got)
	}
	if got.IP != sess.IP || got.UserAgent != sess.UserAgent {
		t.Fatalf("metadata changed across round trip: %+v", got)
	}
}

func TestRedisStoreGetUnknownToken(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	token := newTestSession(t).Token

	if _, err := store.Get(context.Background(), token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Get unknown token = %v, want ErrSessionExpired", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	sess := newTestSession(t)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Get after TTL = %v, want ErrSessionExpired", err)
	}
}

func TestRedisStoreCorruptRecordRemoved(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()
	sess := newTestSession(t)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	mr.Set(store.key(sess.Token), "\xc1\x00\xff")

	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Get corrupt session = %v, want ErrSessionExpired", err)
	}
	if mr.Exists(store.key(sess.Token)) {
		t.Fatal("corrupt record not removed")
	}
}

func TestRedisStoreDestroyIdempotent(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()
	sess := newTestSession(t)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Destroy(ctx, sess); err != nil {
		t.Fatalf("first Destroy failed: %v", err)
	}
	if err := store.Destroy(ctx, sess); err != nil {
		t.Fatalf("second Destroy failed: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Get destroyed session = %v, want ErrSessionExpired", err)
	}
}

func TestRedisStoreDestroyAll(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()
	user := newTestUser(t)

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, newTestSessionFor(t, user)); err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
	}

	destroyed, err := store.DestroyAll(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("DestroyAll failed: %v", err)
	}
	if destroyed != 3 {
		t.Fatalf("destroyed = %d, want 3", destroyed)
	}

	tokens, err := store.UserTokens(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("UserTokens failed: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("index not cleared: %v", tokens)
	}
}
