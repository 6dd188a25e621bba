package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/media"
	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// Upload is a file received from a client. ContentType is sniffed from the data.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ProductMediaService stores product images and spec sheets.
type ProductMediaService struct {
	products  ProductStore
	storage   media.Storage
	moderator media.Moderator
}

// NewProductMediaService constructs a ProductMediaService. storage may be nil
// when no bucket is configured; uploads then fail with ErrUnavailable.
func NewProductMediaService(products ProductStore, storage media.Storage, moderator media.Moderator) *ProductMediaService {
	if moderator == nil {
		moderator = media.AllowAll{}
	}
	return &ProductMediaService{products: products, storage: storage, moderator: moderator}
}

// UploadImage moderates and stores a product image and sets image_url.
func (s *ProductMediaService) UploadImage(ctx context.Context, productID uuid.UUID, up Upload) (*models.Product, error) {
	if len(up.Data) == 0 {
		return nil, utils.Required("file")
	}
	if !imageTypes[up.ContentType] {
		return nil, utils.Invalid("file", "Image must be JPEG or PNG")
	}

	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.moderator.Moderate(ctx, up.Data)
	if err != nil {
		log.Warn().Err(err).Str("product_id", productID.String()).Msg("Image moderation unavailable")
		return nil, fmt.Errorf("moderate image: %w", utils.ErrUnavailable)
	}
	if verdict.Flagged {
		log.Warn().Str("product_id", productID.String()).Strs("labels", verdict.Labels).Msg("Product image rejected by moderation")
		return nil, utils.Invalid("file", "Image rejected by content moderation")
	}

	url, err := s.store(ctx, "products/"+productID.String()+"/images", up)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url
	return p, s.save(ctx, p)
}

// UploadSpecs stores a PDF spec sheet and sets specs_document.
func (s *ProductMediaService) UploadSpecs(ctx context.Context, productID uuid.UUID, up Upload) (*models.Product, error) {
	if len(up.Data) == 0 {
		return nil, utils.Required("file")
	}
	if up.ContentType != "application/pdf" {
		return nil, utils.Invalid("file", "Specs document must be a PDF")
	}

	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	url, err := s.store(ctx, "products/"+productID.String()+"/specs", up)
	if err != nil {
		return nil, err
	}
	p.SpecsDocument = url
	return p, s.save(ctx, p)
}

func (s *ProductMediaService) product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if isNoRows(err) {
		return nil, utils.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !p.IsActive {
		return nil, utils.NotFound("Product not found")
	}
	return p, nil
}

func (s *ProductMediaService) store(ctx context.Context, folder string, up Upload) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("media storage: %w", utils.ErrUnavailable)
	}
	url, err := s.storage.Put(ctx, media.Object{
		Folder:      folder,
		Filename:    up.Filename,
		ContentType: up.ContentType,
		Data:        up.Data,
	})
	if err != nil {
		return "", fmt.Errorf("store media: %w", err)
	}
	return url, nil
}

func (s *ProductMediaService) save(ctx context.Context, p *models.Product) error {
	if err := s.products.Update(ctx, p); err != nil {
		return fmt.Errorf("update product media: %w", err)
	}
	log.Info().Str("product_id", p.ID.String()).Msg("Product media updated")
	return nil
}
