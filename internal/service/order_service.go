package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/repository"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// PlaceOrderInput references an approved quote and an optional delivery address.
type PlaceOrderInput struct {
	QuoteID   uuid.UUID
	AddressID *uuid.UUID
}

// OrderService turns approved quotes into orders.
type OrderService struct {
	orders    OrderStore
	quotes    QuoteStore
	addresses AddressStore
	now       func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, quotes QuoteStore, addresses AddressStore) *OrderService {
	return &OrderService{orders: orders, quotes: quotes, addresses: addresses, now: time.Now}
}

// Place creates an order for one of the caller's approved quotes. The order
// total is copied from the quote. A quote can be ordered once.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID, in PlaceOrderInput) (*models.Order, error) {
	if in.QuoteID == uuid.Nil {
		return nil, utils.Required("quote_id")
	}

	q, err := s.quotes.GetByID(ctx, in.QuoteID)
	if isNoRows(err) || (err == nil && q.UserID != userID) {
		return nil, utils.NotFound("Quote not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if q.Status != models.QuoteStatusApproved {
		return nil, utils.Invalid("quote_id", "Only approved quotes can be ordered")
	}

	if in.AddressID != nil {
		if _, err := s.addresses.GetActive(ctx, *in.AddressID, userID); err != nil {
			if isNoRows(err) {
				return nil, utils.NotFound("Address not found")
			}
			return nil, fmt.Errorf("get address: %w", err)
		}
	}

	o := &models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		QuoteID:     q.ID,
		AddressID:   in.AddressID,
		TotalAmount: q.TotalPrice,
		Status:      models.OrderStatusPending,
	}
	o.OrderNumber = s.orderNumber(o.ID)

	if err := s.orders.Create(ctx, o); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.Conflict("An order already exists for this quote")
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.Info().Str("order_id", o.ID.String()).Str("quote_id", q.ID.String()).Msg("Order placed")
	return o, nil
}

// List returns the caller's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) orderNumber(id uuid.UUID) string {
	return fmt.Sprintf("ECO-%s-%s", s.now().UTC().Format("20060102"), strings.ToUpper(id.String()[:8]))
}
