package ports

import (
	"context"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// ProductRepository defines persistence operations for product applications.
// All read methods return products with CreatedBy/UpdatedBy expanded.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// List returns products ordered by creation time, descending. When
	// ownerID is non-zero only products created by that user are returned.
	List(ctx context.Context, ownerID int64) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
