package cart

import (
	"context"

	"vibecommerce/internal/domain"
)

// MutateFunc transforms a cart in place. A nil cart argument means no cart
// exists for the session yet; returning (nil, nil) deletes the document.
type MutateFunc func(cart *domain.Cart) (*domain.Cart, error)

// Repository stores one cart document per session id. Records expire a fixed
// duration after creation; expired records read as absent.
type Repository interface {
	Find(ctx context.Context, sessionID string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
	// Mutate runs fn against the current document under optimistic
	// concurrency control: concurrent writers to the same session cannot
	// interleave a read-modify-write.
	Mutate(ctx context.Context, sessionID string, fn MutateFunc) (*domain.Cart, error)
	// Sweep deletes expired cart documents and reports how many it removed.
	Sweep(ctx context.Context) (int, error)
}
