package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/pricing"
	"github.com/GTDGit/ecolux_api/internal/sse"
	"github.com/GTDGit/ecolux_api/internal/sustainability"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// CreateQuoteInput is the quote request of a customer.
type CreateQuoteInput struct {
	ProductID     uuid.UUID
	Configuration models.Configuration
}

// QuoteService prices quotes and manages their status.
type QuoteService struct {
	quotes   QuoteStore
	products ProductStore
	notifier sse.QuoteNotifier
}

// NewQuoteService constructs a QuoteService.
func NewQuoteService(quotes QuoteStore, products ProductStore, notifier sse.QuoteNotifier) *QuoteService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &QuoteService{quotes: quotes, products: products, notifier: notifier}
}

// Create prices the configuration against the product's current baseline and
// stores the result as a draft. The stored figures are never recomputed.
func (s *QuoteService) Create(ctx context.Context, userID uuid.UUID, in CreateQuoteInput) (*models.Quote, error) {
	if in.ProductID == uuid.Nil {
		return nil, utils.Required("product_id")
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if isNoRows(err) {
		return nil, utils.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !product.IsActive {
		return nil, utils.NotFound("Product not found")
	}

	cfg := in.Configuration
	if cfg == nil {
		cfg = models.Configuration{}
	}

	lines := pricing.Breakdown(product.BasePrice, cfg)
	quote := &models.Quote{
		UserID:              userID,
		ProductID:           product.ID,
		Configuration:       cfg,
		TotalPrice:          pricing.Total(lines),
		CO2Savings:          sustainability.CO2Savings(product.CO2Savings, cfg),
		SustainabilityScore: sustainability.Score(cfg),
		Status:              models.QuoteStatusDraft,
		LineItems:           make([]models.QuoteLineItem, 0, len(lines)),
	}
	for i, l := range lines {
		quote.LineItems = append(quote.LineItems, models.QuoteLineItem{
			Position:    i,
			Description: l.Description,
			OptionKey:   l.Key,
			OptionValue: l.Value,
			Amount:      l.Amount,
		})
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	log.Info().
		Str("quote_id", quote.ID.String()).
		Str("user_id", userID.String()).
		Float64("total_price", quote.TotalPrice).
		Int("sustainability_score", quote.SustainabilityScore).
		Msg("Quote created")
	s.notifier.NotifyQuoteCreated(quote)
	return quote, nil
}

// ListForUser returns the user's quotes, newest first.
func (s *QuoteService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.QuoteView, error) {
	return s.quotes.ListByUser(ctx, userID)
}

// Get returns a quote with its line items. Customers only see their own
// quotes; other quotes are reported as not found.
func (s *QuoteService) Get(ctx context.Context, id, actorID uuid.UUID, role models.Role) (*models.Quote, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if isNoRows(err) {
		return nil, utils.NotFound("Quote not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if q.UserID != actorID && !isStaff(role) {
		return nil, utils.NotFound("Quote not found")
	}
	return q, nil
}

// UpdateStatus sets any of the four statuses regardless of the current one.
func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus, notes string) (*models.Quote, error) {
	if !status.Valid() {
		return nil, utils.Invalid("status", "Invalid status")
	}

	q, err := s.quotes.UpdateStatus(ctx, id, status, notes)
	if isNoRows(err) {
		return nil, utils.NotFound("Quote not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}

	log.Info().Str("quote_id", id.String()).Str("status", string(status)).Msg("Quote status updated")
	s.notifier.NotifyQuoteStatusChanged(q)
	return q, nil
}

func isStaff(role models.Role) bool {
	return role == models.RoleBusiness || role == models.RoleAdmin
}
