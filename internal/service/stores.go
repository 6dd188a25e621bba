package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/GTDGit/ecolux_api/internal/models"
)

// The interfaces below are satisfied by the sqlx repositories in
// internal/repository. Services depend on them so that tests can run against
// in-memory fakes.

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateAccount(ctx context.Context, acc *models.Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	UpdateCustomerProfile(ctx context.Context, p *models.CustomerProfile) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context) ([]models.CustomerSummary, error)
}

type ProductStore interface {
	GetAll(ctx context.Context, productType, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	GetDistinctCategories(ctx context.Context) ([]string, error)
}

type QuoteStore interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuoteView, error)
	ListAll(ctx context.Context) ([]models.QuoteView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus, notes string) (*models.Quote, error)
}

type AnalyticsStore interface {
	ApprovedTotals(ctx context.Context) (revenue, co2 float64, err error)
	QuoteCounts(ctx context.Context, highScore int) (*models.QuoteCounts, error)
	TotalSolarPower(ctx context.Context) (float64, error)
	SalesByCategory(ctx context.Context) ([]models.CategorySales, error)
	MonthlyTrends(ctx context.Context, since time.Time) ([]models.MonthlyTrend, error)
	TopProducts(ctx context.Context, limit int) ([]models.ProductPopularity, error)
	InsertSnapshot(ctx context.Context, s *models.BusinessAnalytics) error
	ListSnapshots(ctx context.Context, businessID uuid.UUID, limit int) ([]models.BusinessAnalytics, error)
}

type AddressStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	GetActive(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
	Create(ctx context.Context, a *models.Address) error
	Deactivate(ctx context.Context, id, userID uuid.UUID) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
