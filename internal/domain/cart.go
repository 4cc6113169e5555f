package domain

import "time"

// Cart is the per-session aggregate. All mutation goes through the cart
// service so the one-line-per-product invariant holds.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CartItem snapshots name and price at the time of the first add. A later
// price change on the product does not touch existing lines.
type CartItem struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

// TotalCents sums price times quantity over all lines.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// ItemCount sums quantities, not distinct lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// ExpiresAfter reports whether the cart is past its lifetime at the given
// instant. Expired carts are treated as absent everywhere.
func (c *Cart) ExpiresAfter(ttl time.Duration, now time.Time) bool {
	return !c.CreatedAt.IsZero() && now.Sub(c.CreatedAt) >= ttl
}
