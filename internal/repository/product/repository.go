package product

import (
	"context"

	"vibecommerce/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
