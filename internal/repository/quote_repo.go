package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/ecolux_api/internal/database"
	"github.com/GTDGit/ecolux_api/internal/models"
)

const quoteColumns = `id, user_id, product_id, configuration, total_price, co2_savings,
	sustainability_score, status, notes, created_at, updated_at`

// quoteViewSelect joins quotes with product names and the owner's contact data.
const quoteViewSelect = `
	SELECT q.id, q.user_id, p.name AS product_name,
	       COALESCE(cp.first_name, '') AS customer_first_name,
	       COALESCE(cp.last_name, '') AS customer_last_name,
	       u.email AS customer_email,
	       q.total_price, q.co2_savings, q.sustainability_score, q.status, q.created_at
	FROM quotes q
	JOIN products p ON p.id = q.product_id
	JOIN users u ON u.id = q.user_id
	LEFT JOIN customer_profiles cp ON cp.user_id = q.user_id`

// QuoteRepository handles data access for quotes and their line items.
type QuoteRepository struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create inserts the quote and its line items atomically.
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO quotes (id, user_id, product_id, configuration, total_price, co2_savings,
			                    sustainability_score, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`,
			quote.ID,
			quote.UserID,
			quote.ProductID,
			quote.Configuration,
			quote.TotalPrice,
			quote.CO2Savings,
			quote.SustainabilityScore,
			quote.Status,
			quote.Notes,
		).Scan(&quote.CreatedAt, &quote.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range quote.LineItems {
			item := &quote.LineItems[i]
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.QuoteID = quote.ID
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO quote_line_items (id, quote_id, position, description, option_key, option_value, amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, item.ID, item.QuoteID, item.Position, item.Description, item.OptionKey, item.OptionValue, item.Amount); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns a quote with its line items.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var q models.Quote
	if err := r.db.GetContext(ctx, &q, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id); err != nil {
		return nil, err
	}

	items := []models.QuoteLineItem{}
	if err := r.db.SelectContext(ctx, &items, `
		SELECT id, quote_id, position, description, option_key, option_value, amount
		FROM quote_line_items WHERE quote_id = $1 ORDER BY position
	`, id); err != nil {
		return nil, err
	}
	q.LineItems = items
	return &q, nil
}

// ListByUser returns the user's quotes, newest first.
func (r *QuoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuoteView, error) {
	quotes := []models.QuoteView{}
	if err := r.db.SelectContext(ctx, &quotes, quoteViewSelect+`
		WHERE q.user_id = $1
		ORDER BY q.created_at DESC`, userID); err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListAll returns every quote, newest first.
func (r *QuoteRepository) ListAll(ctx context.Context) ([]models.QuoteView, error) {
	quotes := []models.QuoteView{}
	if err := r.db.SelectContext(ctx, &quotes, quoteViewSelect+`
		ORDER BY q.created_at DESC`); err != nil {
		return nil, err
	}
	return quotes, nil
}

// UpdateStatus sets status and notes and refreshes updated_at. It returns
// sql.ErrNoRows when the quote does not exist.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus, notes string) (*models.Quote, error) {
	var q models.Quote
	err := r.db.GetContext(ctx, &q, `
		UPDATE quotes SET status = $2, notes = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+quoteColumns, id, status, notes)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
