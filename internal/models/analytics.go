package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessAnalytics is an append-only KPI snapshot written on every
// business dashboard computation.
type BusinessAnalytics struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BusinessID      uuid.UUID `db:"business_id" json:"business_id"`
	TotalRevenue    float64   `db:"total_revenue" json:"total_revenue"`
	ActiveQuotes    int       `db:"active_quotes" json:"active_quotes"`
	ConversionRate  float64   `db:"conversion_rate" json:"conversion_rate"`
	TotalCO2Saved   float64   `db:"total_co2_saved" json:"total_co2_saved"`
	TotalSolarPower float64   `db:"total_solar_power" json:"total_solar_power"`
	CalculatedAt    time.Time `db:"calculated_at" json:"calculated_at"`
}

// KPIs are the headline dashboard numbers.
type KPIs struct {
	TotalRevenue    float64 `json:"total_revenue"`
	ActiveQuotes    int     `json:"active_quotes"`
	TotalCO2Saved   float64 `json:"total_co2_saved"`
	TotalSolarPower float64 `json:"total_solar_power"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// CategorySales groups approved quotes by product category.
type CategorySales struct {
	Category   string  `db:"category" json:"category"`
	QuoteCount int     `db:"quote_count" json:"quote_count"`
	Revenue    float64 `db:"revenue" json:"revenue"`
}

// MonthlyTrend is one (year, month) bucket of approved quotes.
type MonthlyTrend struct {
	Year    int     `db:"year" json:"-"`
	Month   int     `db:"month" json:"-"`
	Period  string  `db:"-" json:"period"`
	Quotes  int     `db:"quotes" json:"quotes"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// ProductPopularity counts quotes per product.
type ProductPopularity struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Popularity int       `db:"popularity" json:"popularity"`
}

// SustainabilityImpact summarizes sustainability scores across all quotes.
type SustainabilityImpact struct {
	AdoptionRate           float64 `json:"sustainability_adoption_rate"`
	AvgSustainabilityScore float64 `json:"avg_sustainability_score"`
}

// BusinessDashboard is the full business analytics payload.
type BusinessDashboard struct {
	KPIs                 KPIs                 `json:"kpis"`
	SalesByCategory      []CategorySales      `json:"sales_by_category"`
	MonthlyTrends        []MonthlyTrend       `json:"monthly_trends"`
	TopProducts          []ProductPopularity  `json:"top_products"`
	SustainabilityImpact SustainabilityImpact `json:"sustainability_impact"`
}

// QuoteCounts are the raw counters behind the rate KPIs.
type QuoteCounts struct {
	Total     int     `db:"total"`
	Approved  int     `db:"approved"`
	Active    int     `db:"active"`
	HighScore int     `db:"high_score"`
	AvgScore  float64 `db:"avg_score"`
}

// PersonalImpact is the customer-facing impact summary.
type PersonalImpact struct {
	TotalCO2Saved   float64 `json:"total_co2_saved"`
	TreesEquivalent float64 `json:"trees_equivalent"`
	EquivalentCars  float64 `json:"equivalent_cars"`
	TotalInvestment float64 `json:"total_investment"`
}

// QuoteHistoryEntry is one row of a customer's quote history.
type QuoteHistoryEntry struct {
	ProductName         string      `json:"product_name"`
	SustainabilityScore int         `json:"sustainability_score"`
	Date                time.Time   `json:"date"`
	Status              QuoteStatus `json:"status"`
}

// CustomerDashboard is the customer analytics payload.
type CustomerDashboard struct {
	PersonalImpact PersonalImpact      `json:"personal_impact"`
	QuoteHistory   []QuoteHistoryEntry `json:"quote_history"`
}
