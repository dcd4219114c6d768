package ports

import (
	"context"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// ProductInput carries the writable fields of a product application.
// Franchise and Rate are conditionally required depending on ProductType;
// Status is only honoured on update (creation always starts at OPEN).
type ProductInput struct {
	ProductType    string
	RequestedQuota int64
	Franchise      *string
	Rate           *float64
	Status         *string
}

// ProductList is the role-scoped listing together with the quota total
// computed over the returned set.
type ProductList struct {
	Items      []domain.Product
	Count      int
	TotalQuota int64
}

// ProductService defines the product-registry use cases. Every method takes
// the acting user resolved by the auth middleware; ownership and role
// checks happen here, not in the transport layer.
type ProductService interface {
	List(ctx context.Context, actor domain.UserRef) (*ProductList, error)
	Get(ctx context.Context, actor domain.UserRef, id int64) (*domain.Product, error)
	Create(ctx context.Context, actor domain.UserRef, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor domain.UserRef, id int64, input ProductInput) (*domain.Product, error)
	UpdateStatus(ctx context.Context, actor domain.UserRef, id int64, status string) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.UserRef, id int64) error
}
