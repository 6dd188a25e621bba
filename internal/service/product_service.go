package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// CreateProductInput holds the fields accepted when creating a product.
type CreateProductInput struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	BasePrice        *float64           `json:"base_price"`
	Category         string             `json:"category"`
	Type             models.ProductType `json:"type"`
	Stock            *int               `json:"stock"`
	CO2Savings       float64            `json:"co2_savings"`
	SolarPower       float64            `json:"solar_power"`
	EnergyEfficiency string             `json:"energy_efficiency"`
	ImageURL         string             `json:"image_url"`
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name             *string             `json:"name"`
	Description      *string             `json:"description"`
	BasePrice        *float64            `json:"base_price"`
	Category         *string             `json:"category"`
	Type             *models.ProductType `json:"type"`
	Stock            *int                `json:"stock"`
	CO2Savings       *float64            `json:"co2_savings"`
	SolarPower       *float64            `json:"solar_power"`
	EnergyEfficiency *string             `json:"energy_efficiency"`
	ImageURL         *string             `json:"image_url"`
	IsActive         *bool               `json:"is_active"`
}

// ProductService manages the product catalog.
type ProductService struct {
	products ProductStore
}

// NewProductService constructs a ProductService.
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns active products, optionally filtered by type and category.
func (s *ProductService) List(ctx context.Context, productType, category string) ([]models.Product, error) {
	if productType != "" && !models.ProductType(productType).Valid() {
		return nil, utils.Invalid("type", "Invalid product type")
	}
	return s.products.GetAll(ctx, productType, strings.TrimSpace(category))
}

// Categories returns the distinct categories of active products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.GetDistinctCategories(ctx)
}

// Get returns an active product. Inactive products are reported as not found.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, utils.NotFound("Product not found")
	}
	return p, nil
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Category:         strings.TrimSpace(in.Category),
		Type:             in.Type,
		Stock:            1,
		CO2Savings:       in.CO2Savings,
		SolarPower:       in.SolarPower,
		EnergyEfficiency: in.EnergyEfficiency,
		ImageURL:         in.ImageURL,
		IsActive:         true,
	}
	if p.Name == "" {
		return nil, utils.Required("name")
	}
	if in.BasePrice == nil || *in.BasePrice == 0 {
		return nil, utils.Required("base_price")
	}
	p.BasePrice = *in.BasePrice
	if p.Category == "" {
		return nil, utils.Required("category")
	}
	if p.Type == "" {
		p.Type = models.ProductTypeConfigurable
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	log.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("Product created")
	return p, nil
}

// Update applies a partial update. Existing quotes keep their stored prices.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
		if p.Name == "" {
			return nil, utils.Required("name")
		}
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.BasePrice != nil {
		p.BasePrice = *in.BasePrice
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
		if p.Category == "" {
			return nil, utils.Required("category")
		}
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.CO2Savings != nil {
		p.CO2Savings = *in.CO2Savings
	}
	if in.SolarPower != nil {
		p.SolarPower = *in.SolarPower
	}
	if in.EnergyEfficiency != nil {
		p.EnergyEfficiency = *in.EnergyEfficiency
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, p); err != nil {
		if isNoRows(err) {
			return nil, utils.NotFound("Product not found")
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	log.Info().Str("product_id", p.ID.String()).Msg("Product updated")
	return p, nil
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.products.UpdateStatus(ctx, id, false); err != nil {
		if isNoRows(err) {
			return utils.NotFound("Product not found")
		}
		return fmt.Errorf("deactivate product: %w", err)
	}
	log.Info().Str("product_id", id.String()).Msg("Product deactivated")
	return nil
}

func (s *ProductService) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if isNoRows(err) {
		return nil, utils.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func validateProduct(p *models.Product) error {
	if err := utils.FirstError(
		utils.MaxLen("name", p.Name, models.MaxProductNameLen),
		utils.MaxLen("category", p.Category, models.MaxCategoryLen),
		utils.MaxLen("energy_efficiency", p.EnergyEfficiency, models.MaxEnergyEfficiencyLen),
		utils.MaxLen("image_url", p.ImageURL, models.MaxURLLen),
	); err != nil {
		return err
	}
	switch {
	case p.BasePrice < 0:
		return utils.Invalid("base_price", "base_price must not be negative")
	case !p.Type.Valid():
		return utils.Invalid("type", "Invalid product type")
	case p.Stock < 0:
		return utils.Invalid("stock", "stock must not be negative")
	case p.CO2Savings < 0:
		return utils.Invalid("co2_savings", "co2_savings must not be negative")
	case p.SolarPower < 0:
		return utils.Invalid("solar_power", "solar_power must not be negative")
	}
	return nil
}
