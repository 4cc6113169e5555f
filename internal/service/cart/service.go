package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibecommerce/internal/domain"
	cartrepo "vibecommerce/internal/repository/cart"
)

type Service struct {
	carts    cartStore
	products productRepo
	now      func() time.Time
}

type cartStore interface {
	Find(ctx context.Context, sessionID string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
	Mutate(ctx context.Context, sessionID string, fn cartrepo.MutateFunc) (*domain.Cart, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(carts cartrepo.Repository, products productRepo) *Service {
	return &Service{carts: carts, products: products, now: time.Now}
}

// GetOrCreate returns the session's cart, creating an empty one when the
// session has none.
func (s *Service) GetOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.Validation("session id required")
	}

	cart, err := s.carts.Find(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart = &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: s.now(),
	}
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem puts quantity units of the product into the session's cart. A line
// for the same product is merged by incrementing its quantity; the name and
// price snapshotted on first add stay untouched.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.Validation("session id required")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("product id required")
	}
	if quantity < 1 {
		return nil, domain.Validation("quantity must be a positive integer")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return nil, err
	}

	return s.carts.Mutate(ctx, sessionID, func(cart *domain.Cart) (*domain.Cart, error) {
		if cart == nil {
			cart = &domain.Cart{
				SessionID: sessionID,
				Items:     []domain.CartItem{},
				CreatedAt: s.now(),
			}
		}
		if line := findLine(cart, productID); line != nil {
			line.Quantity += quantity
		} else {
			cart.Items = append(cart.Items, domain.CartItem{
				ProductID:  product.ID,
				Quantity:   quantity,
				Name:       product.Name,
				PriceCents: product.PriceCents,
			})
		}
		return cart, nil
	})
}

// RemoveItem deletes the product's line from the session's cart. Removing a
// product that is not in the cart is a no-op; a missing cart is an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.Validation("session id required")
	}

	return s.carts.Mutate(ctx, sessionID, func(cart *domain.Cart) (*domain.Cart, error) {
		if cart == nil {
			return nil, fmt.Errorf("cart for session %s: %w", sessionID, domain.ErrNotFound)
		}
		cart.Items = dropLine(cart.Items, productID)
		return cart, nil
	})
}

// SetQuantity replaces the quantity of the product's line in one store
// mutation. Quantity below one removes the line. A line the cart does not
// have yet is added with a fresh snapshot, like AddItem.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.Validation("session id required")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("product id required")
	}

	return s.carts.Mutate(ctx, sessionID, func(cart *domain.Cart) (*domain.Cart, error) {
		if cart == nil {
			return nil, fmt.Errorf("cart for session %s: %w", sessionID, domain.ErrNotFound)
		}
		if quantity < 1 {
			cart.Items = dropLine(cart.Items, productID)
			return cart, nil
		}
		if line := findLine(cart, productID); line != nil {
			line.Quantity = quantity
			return cart, nil
		}
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
			}
			return nil, err
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:  product.ID,
			Quantity:   quantity,
			Name:       product.Name,
			PriceCents: product.PriceCents,
		})
		return cart, nil
	})
}

func findLine(cart *domain.Cart, productID string) *domain.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}
	return nil
}

func dropLine(items []domain.CartItem, productID string) []domain.CartItem {
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}
