package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/ecolux_api/internal/database"
	"github.com/GTDGit/ecolux_api/internal/models"
)

const addressColumns = `id, user_id, label, line1, line2, city, region, postal_code, country,
	is_default, is_active, created_at, updated_at`

// AddressRepository handles the customer address book.
type AddressRepository struct {
	db *sqlx.DB
}

// NewAddressRepository creates a new AddressRepository.
func NewAddressRepository(db *sqlx.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// ListByUser returns the user's active addresses, default first.
func (r *AddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	addrs := []models.Address{}
	err := r.db.SelectContext(ctx, &addrs, `
		SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1 AND is_active = true
		ORDER BY is_default DESC, created_at`, userID)
	return addrs, err
}

// GetActive returns one active address owned by userID.
func (r *AddressRepository) GetActive(ctx context.Context, id, userID uuid.UUID) (*models.Address, error) {
	var a models.Address
	err := r.db.GetContext(ctx, &a, `
		SELECT `+addressColumns+` FROM addresses
		WHERE id = $1 AND user_id = $2 AND is_active = true`, id, userID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an address. A new default address clears the previous default.
func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.IsActive = true

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if a.IsDefault {
			if _, err := tx.ExecContext(ctx, `
				UPDATE addresses SET is_default = false, updated_at = NOW()
				WHERE user_id = $1 AND is_default = true`, a.UserID); err != nil {
				return err
			}
		}
		return tx.QueryRowxContext(ctx, `
			INSERT INTO addresses (id, user_id, label, line1, line2, city, region, postal_code, country, is_default, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at, updated_at`,
			a.ID, a.UserID, a.Label, a.Line1, a.Line2, a.City, a.Region, a.PostalCode, a.Country, a.IsDefault, a.IsActive,
		).Scan(&a.CreatedAt, &a.UpdatedAt)
	})
}

// Deactivate soft-deletes an address owned by userID.
func (r *AddressRepository) Deactivate(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET is_active = false, is_default = false, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = true`, id, userID)
	if err != nil {
		return err
	}
	return expectRow(res)
}
