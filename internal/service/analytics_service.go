package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/sustainability"
)

const (
	trendWindowDays  = 180
	topProductsLimit = 5

	// Rough per-kg equivalences shown on the customer dashboard.
	treesPerCO2 = 0.05
	co2PerCar   = 2.4

	defaultHistoryLimit = 30
	maxHistoryLimit     = 200
)

// AnalyticsService computes dashboards on demand.
type AnalyticsService struct {
	analytics AnalyticsStore
	quotes    QuoteStore
	now       func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(analytics AnalyticsStore, quotes QuoteStore) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, quotes: quotes, now: time.Now}
}

// BusinessDashboard aggregates KPIs over all quotes and products and appends a
// snapshot for businessID. A failed append is logged and does not fail the call.
func (s *AnalyticsService) BusinessDashboard(ctx context.Context, businessID uuid.UUID) (*models.BusinessDashboard, error) {
	revenue, co2, err := s.analytics.ApprovedTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("approved totals: %w", err)
	}
	counts, err := s.analytics.QuoteCounts(ctx, sustainability.HighScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("quote counts: %w", err)
	}
	solar, err := s.analytics.TotalSolarPower(ctx)
	if err != nil {
		return nil, fmt.Errorf("solar power: %w", err)
	}
	categories, err := s.analytics.SalesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	trends, err := s.analytics.MonthlyTrends(ctx, s.now().AddDate(0, 0, -trendWindowDays))
	if err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}
	for i := range trends {
		trends[i].Period = fmt.Sprintf("%d/%d", trends[i].Month, trends[i].Year)
	}
	top, err := s.analytics.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	dash := &models.BusinessDashboard{
		KPIs: models.KPIs{
			TotalRevenue:    revenue,
			ActiveQuotes:    counts.Active,
			TotalCO2Saved:   co2,
			TotalSolarPower: solar,
			ConversionRate:  percent(counts.Approved, counts.Total),
		},
		SalesByCategory: categories,
		MonthlyTrends:   trends,
		TopProducts:     top,
		SustainabilityImpact: models.SustainabilityImpact{
			AdoptionRate:           percent(counts.HighScore, counts.Total),
			AvgSustainabilityScore: counts.AvgScore,
		},
	}

	snapshot := &models.BusinessAnalytics{
		BusinessID:      businessID,
		TotalRevenue:    dash.KPIs.TotalRevenue,
		ActiveQuotes:    dash.KPIs.ActiveQuotes,
		ConversionRate:  dash.KPIs.ConversionRate,
		TotalCO2Saved:   dash.KPIs.TotalCO2Saved,
		TotalSolarPower: dash.KPIs.TotalSolarPower,
	}
	if err := s.analytics.InsertSnapshot(ctx, snapshot); err != nil {
		log.Warn().Err(err).Str("business_id", businessID.String()).Msg("Failed to store analytics snapshot")
	}

	return dash, nil
}

// History returns the caller's stored snapshots, newest first.
func (s *AnalyticsService) History(ctx context.Context, businessID uuid.UUID, limit int) ([]models.BusinessAnalytics, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	return s.analytics.ListSnapshots(ctx, businessID, limit)
}

// CustomerDashboard summarizes the impact of the caller's quotes. CO2 counts
// every quote; investment counts approved quotes only.
func (s *AnalyticsService) CustomerDashboard(ctx context.Context, userID uuid.UUID) (*models.CustomerDashboard, error) {
	quotes, err := s.quotes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	dash := &models.CustomerDashboard{QuoteHistory: make([]models.QuoteHistoryEntry, 0, len(quotes))}
	for _, q := range quotes {
		dash.PersonalImpact.TotalCO2Saved += q.CO2Savings
		if q.Status == models.QuoteStatusApproved {
			dash.PersonalImpact.TotalInvestment += q.TotalPrice
		}
		dash.QuoteHistory = append(dash.QuoteHistory, models.QuoteHistoryEntry{
			ProductName:         q.ProductName,
			SustainabilityScore: q.SustainabilityScore,
			Date:                q.CreatedAt,
			Status:              q.Status,
		})
	}
	dash.PersonalImpact.TreesEquivalent = dash.PersonalImpact.TotalCO2Saved * treesPerCO2
	dash.PersonalImpact.EquivalentCars = dash.PersonalImpact.TotalCO2Saved / co2PerCar
	return dash, nil
}

// percent returns part/total*100, or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
