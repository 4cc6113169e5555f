package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"vibecommerce/internal/domain"
	cartrepo "vibecommerce/internal/repository/cart"
)

// taxRateBP is the flat tax rate in basis points applied to every order.
const taxRateBP = 800

const orderSuffixLen = 9

const orderSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

type Service struct {
	carts cartStore
	now   func() time.Time
}

type cartStore interface {
	Delete(ctx context.Context, sessionID string) error
}

func New(carts cartrepo.Repository) *Service {
	return &Service{carts: carts, now: time.Now}
}

type Input struct {
	SessionID string
	Name      string
	Email     string
	Items     []domain.CartItem
}

// Checkout totals the submitted line items, issues a receipt and clears the
// session's cart. Prices come from the caller's snapshot and are not checked
// against the catalog; this mirrors the mock-payment scope of the system.
func (s *Service) Checkout(ctx context.Context, in Input) (*domain.Receipt, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.Validation("name and email are required")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("cart is empty")
	}

	var subtotal int64
	for _, item := range in.Items {
		subtotal += item.PriceCents * int64(item.Quantity)
	}
	// Integer-cent arithmetic keeps tax and grand total consistent: rounding
	// subtotal*1.08 independently can never disagree with subtotal+tax when
	// the subtotal is a whole number of cents.
	tax := (subtotal*taxRateBP + 5000) / 10000

	receipt := &domain.Receipt{
		OrderID:         s.orderID(),
		Customer:        domain.Customer{Name: in.Name, Email: in.Email},
		Items:           in.Items,
		SubtotalCents:   subtotal,
		TaxCents:        tax,
		GrandTotalCents: subtotal + tax,
		Timestamp:       s.now().UTC(),
		Status:          "completed",
	}

	if in.SessionID != "" {
		if err := s.carts.Delete(ctx, in.SessionID); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}
	}
	return receipt, nil
}

// orderID is time-based with a random suffix; uniqueness rests on practical
// improbability of a collision, not a formal guarantee.
func (s *Service) orderID() string {
	suffix := make([]byte, orderSuffixLen)
	for i := range suffix {
		suffix[i] = orderSuffixAlphabet[rand.Intn(len(orderSuffixAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", s.now().UnixMilli(), suffix)
}
