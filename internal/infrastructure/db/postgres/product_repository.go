package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/banki/finanzas-api/internal/core/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// productSelect joins the owner and last-modifier so every read returns the
// product with both identities expanded.
const productSelect = `
SELECT p.id, p.product_type, p.requested_quota, p.franchise, p.rate, p.status,
       p.created_at, p.updated_at,
       c.id, c.name, c.email, c.role,
       m.id, m.name, m.email, m.role
FROM products p
JOIN users c ON c.id = p.created_by
JOIN users m ON m.id = p.updated_by`

type productScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row productScanner) (*domain.Product, error) {
	var (
		p         domain.Product
		franchise sql.NullString
		rate      sql.NullFloat64
	)
	err := row.Scan(
		&p.ID, &p.ProductType, &p.RequestedQuota, &franchise, &rate, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
		&p.CreatedBy.ID, &p.CreatedBy.Name, &p.CreatedBy.Email, &p.CreatedBy.Role,
		&p.UpdatedBy.ID, &p.UpdatedBy.Name, &p.UpdatedBy.Email, &p.UpdatedBy.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if franchise.Valid {
		f := domain.Franchise(franchise.String)
		p.Franchise = &f
	}
	if rate.Valid {
		r := rate.Float64
		p.Rate = &r
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (product_type, requested_quota, franchise, rate, status,
		                       created_by, updated_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.ProductType, p.RequestedQuota, nullFranchise(p.Franchise), nullRate(p.Rate),
		p.Status, p.CreatedBy.ID, p.UpdatedBy.ID, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, ownerID int64) ([]domain.Product, error) {
	query := productSelect + ` ORDER BY p.created_at DESC`
	args := []any{}
	if ownerID != 0 {
		query = productSelect + ` WHERE p.created_by = $1 ORDER BY p.created_at DESC`
		args = append(args, ownerID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET product_type = $2, requested_quota = $3, franchise = $4, rate = $5,
		     status = $6, updated_by = $7, updated_at = $8
		 WHERE id = $1`,
		p.ID, p.ProductType, p.RequestedQuota, nullFranchise(p.Franchise), nullRate(p.Rate),
		p.Status, p.UpdatedBy.ID, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrProductNotFound
	}

	return r.FindByID(ctx, p.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func nullFranchise(f *domain.Franchise) sql.NullString {
	if f == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*f), Valid: true}
}

func nullRate(r *float64) sql.NullFloat64 {
	if r == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *r, Valid: true}
}
