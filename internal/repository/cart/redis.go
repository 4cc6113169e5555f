package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"vibecommerce/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// maxTxRetries bounds optimistic-lock retries in Mutate before giving up.
const maxTxRetries = 5

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

// NewRedis builds a Repository over a Redis client. ttl is the cart lifetime
// measured from creation; expiry is enforced here (lazily on read plus Sweep)
// rather than through Redis key TTLs, so the behavior carries over to any
// other backend.
func NewRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &redisRepo{client: client, ttl: ttl, logger: logger, now: time.Now}
}

func cartKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *redisRepo) Find(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	if cart.ExpiresAfter(r.ttl, r.now()) {
		if err := r.Delete(ctx, sessionID); err != nil {
			r.logger.Printf("cart repo: delete expired session=%s error=%v", sessionID, err)
		}
		return nil, domain.ErrNotFound
	}
	return &cart, nil
}

func (r *redisRepo) Upsert(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(cart.SessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Mutate runs fn under WATCH so two concurrent mutations of the same session
// serialize; the losing transaction retries against the fresh document.
func (r *redisRepo) Mutate(ctx context.Context, sessionID string, fn MutateFunc) (*domain.Cart, error) {
	key := cartKey(sessionID)
	var result *domain.Cart

	txn := func(tx *redis.Tx) error {
		var current *domain.Cart
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			current = nil
		case err != nil:
			return fmt.Errorf("redis get: %w", err)
		default:
			var cart domain.Cart
			if err := json.Unmarshal(data, &cart); err != nil {
				return fmt.Errorf("unmarshal cart: %w", err)
			}
			if !cart.ExpiresAfter(r.ttl, r.now()) {
				current = &cart
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		result = next

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, key)
				return nil
			}
			out, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("marshal cart: %w", err)
			}
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("cart mutation for session %s lost optimistic lock %d times", sessionID, maxTxRetries)
}

func (r *redisRepo) Sweep(ctx context.Context) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("redis get %s: %w", key, err)
		}

		var cart domain.Cart
		if err := json.Unmarshal(data, &cart); err != nil {
			// Unreadable document: drop it rather than sweep it forever.
			r.logger.Printf("cart repo: sweep unmarshal key=%s error=%v", key, err)
		} else if !cart.ExpiresAfter(r.ttl, r.now()) {
			continue
		}

		if err := r.client.Del(ctx, key).Err(); err != nil {
			return removed, fmt.Errorf("redis del %s: %w", key, err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan: %w", err)
	}
	return removed, nil
}
