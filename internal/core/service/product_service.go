package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/banki/finanzas-api/internal/api/metrics"
	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/ports"
)

// ProductService implements the product registry: role-scoped CRUD over
// product applications with conditional field validation.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// List returns products visible to the actor ordered by creation time,
// newest first, together with the sum of requested quotas over that set.
// Administrators see every product; advisors only their own.
func (s *ProductService) List(ctx context.Context, actor domain.UserRef) (*ports.ProductList, error) {
	ownerID := actor.ID
	if actor.IsAdministrator() {
		ownerID = 0
	}

	items, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var total int64
	for i := range items {
		total += items[i].RequestedQuota
	}

	return &ports.ProductList{Items: items, Count: len(items), TotalQuota: total}, nil
}

func (s *ProductService) Get(ctx context.Context, actor domain.UserRef, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.VisibleTo(actor) {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// Create validates the conditional franchise/rate rules and persists a new
// application with status OPEN, owned by the actor.
func (s *ProductService) Create(ctx context.Context, actor domain.UserRef, input ports.ProductInput) (*domain.Product, error) {
	fields, err := validateProductInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ProductType:    fields.productType,
		RequestedQuota: input.RequestedQuota,
		Franchise:      fields.franchise,
		Rate:           fields.rate,
		Status:         domain.StatusOpen,
		CreatedBy:      actor,
		UpdatedBy:      actor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", actor.ID).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(string(created.ProductType)).Inc()
	s.logger.Info().Int64("product_id", created.ID).Str("product_type", string(created.ProductType)).Int64("user_id", actor.ID).Msg("product created")

	return created, nil
}

// Update replaces the writable fields of an application. When the product
// type changes so that franchise or rate no longer applies, the stale field
// is cleared to null rather than left behind. Status is preserved unless
// supplied.
func (s *ProductService) Update(ctx context.Context, actor domain.UserRef, id int64, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.VisibleTo(actor) {
		return nil, domain.ErrForbidden
	}

	fields, err := validateProductInput(input)
	if err != nil {
		return nil, err
	}

	status := product.Status
	if input.Status != nil {
		status = domain.ProductStatus(*input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	product.ProductType = fields.productType
	product.RequestedQuota = input.RequestedQuota
	product.Franchise = fields.franchise
	product.Rate = fields.rate
	product.Status = status
	product.UpdatedBy = actor
	product.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, product)
}

// UpdateStatus changes only the status of an application, leaving every
// other field untouched.
func (s *ProductService) UpdateStatus(ctx context.Context, actor domain.UserRef, id int64, status string) (*domain.Product, error) {
	next := domain.ProductStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.VisibleTo(actor) {
		return nil, domain.ErrForbidden
	}

	product.Status = next
	product.UpdatedBy = actor
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	metrics.ProductStatusUpdatesTotal.WithLabelValues(string(next)).Inc()
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, actor domain.UserRef, id int64) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.VisibleTo(actor) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("product_id", id).Int64("user_id", actor.ID).Msg("product deleted")
	return nil
}

// validatedFields holds the normalized conditional fields of an application:
// exactly one of franchise/rate is non-nil for any valid product type.
type validatedFields struct {
	productType domain.ProductType
	franchise   *domain.Franchise
	rate        *float64
}

func validateProductInput(input ports.ProductInput) (validatedFields, error) {
	productType := domain.ProductType(input.ProductType)
	if !productType.Valid() {
		return validatedFields{}, domain.ErrInvalidProductType
	}
	if input.RequestedQuota <= 0 {
		return validatedFields{}, domain.ErrInvalidQuota
	}

	fields := validatedFields{productType: productType}

	if productType.RequiresFranchise() {
		if input.Franchise == nil || *input.Franchise == "" {
			return validatedFields{}, domain.ErrFranchiseRequired
		}
		franchise := domain.Franchise(*input.Franchise)
		if !franchise.Valid() {
			return validatedFields{}, domain.ErrInvalidFranchise
		}
		fields.franchise = &franchise
	}

	if productType.RequiresRate() {
		if input.Rate == nil {
			return validatedFields{}, domain.ErrRateRequired
		}
		rate := *input.Rate
		fields.rate = &rate
	}

	return fields, nil
}
