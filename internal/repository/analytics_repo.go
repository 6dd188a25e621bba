package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/ecolux_api/internal/models"
)

// AnalyticsRepository runs the read-only reporting queries and stores KPI snapshots.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// ApprovedTotals returns revenue and CO2 savings summed over approved quotes.
func (r *AnalyticsRepository) ApprovedTotals(ctx context.Context) (revenue, co2 float64, err error) {
	var row struct {
		Revenue float64 `db:"revenue"`
		CO2     float64 `db:"co2"`
	}
	err = r.db.GetContext(ctx, &row, `
		SELECT COALESCE(SUM(total_price), 0) AS revenue,
		       COALESCE(SUM(co2_savings), 0) AS co2
		FROM quotes
		WHERE status = 'approved'`)
	return row.Revenue, row.CO2, err
}

// QuoteCounts returns the counters behind conversion and adoption rates.
// highScore is the inclusive sustainability score threshold.
func (r *AnalyticsRepository) QuoteCounts(ctx context.Context, highScore int) (*models.QuoteCounts, error) {
	var c models.QuoteCounts
	err := r.db.GetContext(ctx, &c, `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'approved') AS approved,
		       COUNT(*) FILTER (WHERE status IN ('draft', 'submitted')) AS active,
		       COUNT(*) FILTER (WHERE sustainability_score >= $1) AS high_score,
		       COALESCE(AVG(sustainability_score), 0)::float8 AS avg_score
		FROM quotes`, highScore)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// TotalSolarPower sums solar capacity over active products.
func (r *AnalyticsRepository) TotalSolarPower(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(solar_power), 0) FROM products WHERE is_active = true`)
	return total, err
}

// SalesByCategory groups approved quotes by product category.
func (r *AnalyticsRepository) SalesByCategory(ctx context.Context) ([]models.CategorySales, error) {
	rows := []models.CategorySales{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.category, COUNT(q.id) AS quote_count, COALESCE(SUM(q.total_price), 0) AS revenue
		FROM quotes q
		JOIN products p ON p.id = q.product_id
		WHERE q.status = 'approved'
		GROUP BY p.category
		ORDER BY p.category`)
	return rows, err
}

// MonthlyTrends groups approved quotes created at or after since by
// calendar month, oldest first.
func (r *AnalyticsRepository) MonthlyTrends(ctx context.Context, since time.Time) ([]models.MonthlyTrend, error) {
	rows := []models.MonthlyTrend{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       EXTRACT(MONTH FROM created_at)::int AS month,
		       COUNT(*) AS quotes,
		       COALESCE(SUM(total_price), 0) AS revenue
		FROM quotes
		WHERE status = 'approved' AND created_at >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2`, since)
	return rows, err
}

// TopProducts returns the limit most quoted products. Ties are ordered by id.
func (r *AnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]models.ProductPopularity, error) {
	rows := []models.ProductPopularity{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.id, p.name, COUNT(q.id) AS popularity
		FROM products p
		JOIN quotes q ON q.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY popularity DESC, p.id
		LIMIT $1`, limit)
	return rows, err
}

// InsertSnapshot appends a KPI snapshot row.
func (r *AnalyticsRepository) InsertSnapshot(ctx context.Context, s *models.BusinessAnalytics) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO business_analytics (id, business_id, total_revenue, active_quotes, conversion_rate,
		                                total_co2_saved, total_solar_power)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING calculated_at`,
		s.ID, s.BusinessID, s.TotalRevenue, s.ActiveQuotes, s.ConversionRate, s.TotalCO2Saved, s.TotalSolarPower,
	).Scan(&s.CalculatedAt)
}

// ListSnapshots returns a business user's snapshots, newest first.
func (r *AnalyticsRepository) ListSnapshots(ctx context.Context, businessID uuid.UUID, limit int) ([]models.BusinessAnalytics, error) {
	rows := []models.BusinessAnalytics{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, business_id, total_revenue, active_quotes, conversion_rate,
		       total_co2_saved, total_solar_power, calculated_at
		FROM business_analytics
		WHERE business_id = $1
		ORDER BY calculated_at DESC
		LIMIT $2`, businessID, limit)
	return rows, err
}
