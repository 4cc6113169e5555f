package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	PriceCents  int64
	Description string
	ImageURL    string
	Category    string
}

var sampleProducts = []productSeed{
	{
		Name:        "Wireless Bluetooth Headphones",
		PriceCents:  7999,
		Description: "High-quality wireless headphones with noise cancellation",
		ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
		Category:    "Electronics",
	},
	{
		Name:        "Smart Watch",
		PriceCents:  19999,
		Description: "Feature-rich smartwatch with health monitoring",
		ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
		Category:    "Electronics",
	},
	{
		Name:        "Laptop Backpack",
		PriceCents:  4999,
		Description: "Durable laptop backpack with multiple compartments",
		ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500",
		Category:    "Accessories",
	},
	{
		Name:        "Coffee Mug",
		PriceCents:  1499,
		Description: "Ceramic coffee mug with elegant design",
		ImageURL:    "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=500",
		Category:    "Home",
	},
	{
		Name:        "Fitness Tracker",
		PriceCents:  8999,
		Description: "Advanced fitness tracker with heart rate monitor",
		ImageURL:    "https://images.unsplash.com/photo-1575311373937-040b8e1fd5b6?w=500",
		Category:    "Fitness",
	},
	{
		Name:        "Desk Lamp",
		PriceCents:  3499,
		Description: "LED desk lamp with adjustable brightness",
		ImageURL:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500",
		Category:    "Home",
	},
	{
		Name:        "Phone Case",
		PriceCents:  1999,
		Description: "Protective phone case with stylish design",
		ImageURL:    "https://images.unsplash.com/photo-1601593346740-925612772716?w=500",
		Category:    "Accessories",
	},
	{
		Name:        "Water Bottle",
		PriceCents:  2499,
		Description: "Insulated stainless steel water bottle",
		ImageURL:    "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=500",
		Category:    "Fitness",
	},
}

// Apply inserts the sample catalog when the products table is empty. An
// already-populated catalog is left untouched, so repeated runs are safe.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	const q = `
INSERT INTO products (name, price_cents, description, image_url, category)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO NOTHING
`
	for _, p := range sampleProducts {
		if _, err := pool.Exec(ctx, q, p.Name, p.PriceCents, p.Description, p.ImageURL, p.Category); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}
	return nil
}
