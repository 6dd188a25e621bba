package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/ecolux_api/internal/models"
)

const productColumns = `id, name, description, base_price, category, type, stock, co2_savings,
	solar_power, energy_efficiency, image_url, specs_document, is_active, created_at, updated_at`

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns all active products with optional filters for type and category.
// When productType or category is an empty string, the filter is ignored respectively.
func (r *ProductRepository) GetAll(ctx context.Context, productType, category string) ([]models.Product, error) {
	const q = `
        SELECT ` + productColumns + ` FROM products
        WHERE ($1 = '' OR type = $1)
        AND ($2 = '' OR category = $2)
        AND is_active = true
        ORDER BY category, name`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, productType, category); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id regardless of its active flag.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	query := `INSERT INTO products (id, name, description, base_price, category, type, stock,
                  co2_savings, solar_power, energy_efficiency, image_url, specs_document, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
              RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.BasePrice,
		product.Category,
		product.Type,
		product.Stock,
		product.CO2Savings,
		product.SolarPower,
		product.EnergyEfficiency,
		product.ImageURL,
		product.SpecsDocument,
		product.IsActive,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// Update updates an existing product. Quotes already issued keep their
// stored prices.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products
              SET name = $1, description = $2, base_price = $3, category = $4, type = $5, stock = $6,
                  co2_savings = $7, solar_power = $8, energy_efficiency = $9, image_url = $10,
                  specs_document = $11, is_active = $12, updated_at = NOW()
              WHERE id = $13
              RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		product.Name,
		product.Description,
		product.BasePrice,
		product.Category,
		product.Type,
		product.Stock,
		product.CO2Savings,
		product.SolarPower,
		product.EnergyEfficiency,
		product.ImageURL,
		product.SpecsDocument,
		product.IsActive,
		product.ID,
	).Scan(&product.UpdatedAt)
}

// UpdateStatus sets the active flag of a product.
func (r *ProductRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	const q = `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, isActive)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// GetDistinctCategories returns all categories of active products.
func (r *ProductRepository) GetDistinctCategories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM products WHERE is_active = true AND category != '' ORDER BY category`
	categories := []string{}
	if err := r.db.SelectContext(ctx, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}
