package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client, time.Minute), mr
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	session := entities.NewSession(42, "Математика")
	session.NextIndex = 2
	session.Score = 1
	session.PendingAnswer = "4"

	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !mr.Exists("quiz:session:42") {
		t.Fatalf("expected redis key to be set")
	}

	got, ok, err := store.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected session present")
	}
	if got.Subject != "Математика" || got.NextIndex != 2 || got.Score != 1 || got.PendingAnswer != "4" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestGetMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatalf("expected no session")
	}
}

func TestDeleteClearsKey(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	_ = store.Put(ctx, entities.NewSession(42, "Физика"))
	if err := store.Delete(ctx, 42); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if mr.Exists("quiz:session:42") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	_ = store.Put(ctx, entities.NewSession(42, "Физика"))

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := store.Get(ctx, 42); ok {
		t.Fatalf("expected session expired after TTL")
	}
}
