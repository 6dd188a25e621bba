package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GTDGit/ecolux_api/internal/models"
)

// BusinessQuote is a quote row as listed for business users.
type BusinessQuote struct {
	ID                  uuid.UUID          `json:"id"`
	CustomerName        string             `json:"customer_name"`
	CustomerEmail       string             `json:"customer_email"`
	ProductName         string             `json:"product_name"`
	TotalPrice          float64            `json:"total_price"`
	CO2Savings          float64            `json:"co2_savings"`
	SustainabilityScore int                `json:"sustainability_score"`
	Status              models.QuoteStatus `json:"status"`
	CreatedAt           time.Time          `json:"created_at"`
}

// BusinessService backs the business back-office listings.
type BusinessService struct {
	quotes QuoteStore
	users  UserStore
}

// NewBusinessService constructs a BusinessService.
func NewBusinessService(quotes QuoteStore, users UserStore) *BusinessService {
	return &BusinessService{quotes: quotes, users: users}
}

// Quotes returns every quote, newest first, with the owner's name and email.
func (s *BusinessService) Quotes(ctx context.Context) ([]BusinessQuote, error) {
	views, err := s.quotes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]BusinessQuote, 0, len(views))
	for _, v := range views {
		name := (&models.CustomerProfile{FirstName: v.CustomerFirstName, LastName: v.CustomerLastName}).FullName()
		out = append(out, BusinessQuote{
			ID:                  v.ID,
			CustomerName:        name,
			CustomerEmail:       v.CustomerEmail,
			ProductName:         v.ProductName,
			TotalPrice:          v.TotalPrice,
			CO2Savings:          v.CO2Savings,
			SustainabilityScore: v.SustainabilityScore,
			Status:              v.Status,
			CreatedAt:           v.CreatedAt,
		})
	}
	return out, nil
}

// Customers returns active customers with their quote counts.
func (s *BusinessService) Customers(ctx context.Context) ([]models.CustomerSummary, error) {
	return s.users.ListCustomers(ctx)
}
