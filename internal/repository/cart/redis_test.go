package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"vibecommerce/internal/domain"

	"github.com/redis/go-redis/v9"
)

func testRepo(ctx context.Context, t *testing.T, ttl time.Duration, now func() time.Time) *redisRepo {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	keys, err := client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		t.Fatalf("list cart keys: %v", err)
	}
	if len(keys) > 0 {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			t.Fatalf("clear cart keys: %v", err)
		}
	}

	if now == nil {
		now = time.Now
	}
	return &redisRepo{client: client, ttl: ttl, logger: log.New(io.Discard, "", 0), now: now}
}

func TestFindMissing(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	_, err := repo.Find(ctx, "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUpsertFindDelete(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	cart := &domain.Cart{
		SessionID: "s1",
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 2, Name: "Coffee Mug", PriceCents: 1499}},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, cart); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	found, err := repo.Find(ctx, "s1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.SessionID != "s1" || len(found.Items) != 1 || found.Items[0].PriceCents != 1499 {
		t.Fatalf("unexpected cart %+v", found)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Find(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
}

func TestFindExpiredCartReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	created := time.Now().UTC().Add(-25 * time.Hour)
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	if err := repo.Upsert(ctx, &domain.Cart{SessionID: "old", CreatedAt: created}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := repo.Find(ctx, "old"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired cart to read as absent, got %v", err)
	}

	// The lazy check also removed the document.
	n, err := repo.client.Exists(ctx, cartKey("old")).Result()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected expired document deleted")
	}
}

func TestMutateMissingCart(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	cart, err := repo.Mutate(ctx, "fresh", func(cart *domain.Cart) (*domain.Cart, error) {
		if cart != nil {
			t.Fatalf("expected nil cart for new session, got %+v", cart)
		}
		return &domain.Cart{SessionID: "fresh", CreatedAt: time.Now().UTC()}, nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if cart.SessionID != "fresh" {
		t.Fatalf("unexpected cart %+v", cart)
	}

	if _, err := repo.Find(ctx, "fresh"); err != nil {
		t.Fatalf("expected persisted cart, got %v", err)
	}
}

func TestMutateUpdatesDocument(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	seedCart := &domain.Cart{
		SessionID: "s1",
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 1, PriceCents: 1000}},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, seedCart); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated, err := repo.Mutate(ctx, "s1", func(cart *domain.Cart) (*domain.Cart, error) {
		cart.Items[0].Quantity = 4
		return cart, nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if updated.Items[0].Quantity != 4 {
		t.Fatalf("unexpected result %+v", updated)
	}

	found, err := repo.Find(ctx, "s1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Items[0].Quantity != 4 {
		t.Fatalf("mutation not persisted: %+v", found)
	}
}

func TestMutateFnErrorLeavesDocument(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	seedCart := &domain.Cart{SessionID: "s1", CreatedAt: time.Now().UTC()}
	if err := repo.Upsert(ctx, seedCart); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	wantErr := errors.New("rejected")
	_, err := repo.Mutate(ctx, "s1", func(*domain.Cart) (*domain.Cart, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fn error surfaced, got %v", err)
	}

	if _, err := repo.Find(ctx, "s1"); err != nil {
		t.Fatalf("expected document untouched, got %v", err)
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(ctx, t, 24*time.Hour, nil)

	live := &domain.Cart{SessionID: "live", CreatedAt: time.Now().UTC()}
	stale := &domain.Cart{SessionID: "stale", CreatedAt: time.Now().UTC().Add(-30 * time.Hour)}
	for _, cart := range []*domain.Cart{live, stale} {
		if err := repo.Upsert(ctx, cart); err != nil {
			t.Fatalf("upsert %s: %v", cart.SessionID, err)
		}
	}

	removed, err := repo.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}

	if _, err := repo.Find(ctx, "live"); err != nil {
		t.Fatalf("live cart should survive sweep: %v", err)
	}
	if _, err := repo.Find(ctx, "stale"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("stale cart should be gone, got %v", err)
	}
}
