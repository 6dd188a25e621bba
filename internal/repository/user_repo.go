package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/ecolux_api/internal/database"
	"github.com/GTDGit/ecolux_api/internal/models"
)

// UserRepository handles data access for users and their profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail returns the user with the given email, active or not.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, role, is_active, created_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns a single user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, role, is_active, created_at
		FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsActive reports whether the user exists and has not been deactivated.
func (r *UserRepository) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var active bool
	err := r.db.GetContext(ctx, &active, `SELECT is_active FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return active, err
}

// CreateAccount inserts the user and its profile in one transaction.
// Missing ids are generated.
func (r *UserRepository) CreateAccount(ctx context.Context, acc *models.Account) error {
	if acc.User.ID == uuid.Nil {
		acc.User.ID = uuid.New()
	}

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO users (id, email, password_hash, role, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, acc.User.ID, acc.User.Email, acc.User.PasswordHash, acc.User.Role, acc.User.IsActive).
			Scan(&acc.User.CreatedAt)
		if err != nil {
			return err
		}

		switch p := acc.Profile.(type) {
		case *models.CustomerProfile:
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			p.UserID = acc.User.ID
			_, err = tx.ExecContext(ctx, `
				INSERT INTO customer_profiles (id, user_id, first_name, last_name, phone, address)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, p.ID, p.UserID, p.FirstName, p.LastName, p.Phone, p.Address)
		case *models.BusinessProfile:
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			p.UserID = acc.User.ID
			_, err = tx.ExecContext(ctx, `
				INSERT INTO business_profiles (id, user_id, company_name, tax_id, contact_person, business_type, company_size)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, p.ID, p.UserID, p.CompanyName, p.TaxID, p.ContactPerson, p.BusinessType, p.CompanySize)
		case models.AdminProfile:
		default:
			err = fmt.Errorf("unsupported profile type %T", p)
		}
		return err
	})
}

// GetAccount loads a user together with the profile matching its role.
func (r *UserRepository) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	switch user.Role {
	case models.RoleCustomer:
		var p models.CustomerProfile
		err = r.db.GetContext(ctx, &p, `
			SELECT id, user_id, first_name, last_name, phone, address, total_co2_saved, trees_equivalent
			FROM customer_profiles WHERE user_id = $1
		`, id)
		profile = &p
	case models.RoleBusiness:
		var p models.BusinessProfile
		err = r.db.GetContext(ctx, &p, `
			SELECT id, user_id, company_name, tax_id, contact_person, business_type, company_size
			FROM business_profiles WHERE user_id = $1
		`, id)
		profile = &p
	default:
		profile = models.AdminProfile{}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return models.NewAccount(*user, profile)
}

// UpdateCustomerProfile writes the editable contact fields of a customer profile.
func (r *UserRepository) UpdateCustomerProfile(ctx context.Context, p *models.CustomerProfile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customer_profiles
		SET first_name = $2, last_name = $3, phone = $4, address = $5
		WHERE user_id = $1
	`, p.UserID, p.FirstName, p.LastName, p.Phone, p.Address)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Deactivate soft-deletes a user.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// ListCustomers returns active customers with their quote counts, newest first.
func (r *UserRepository) ListCustomers(ctx context.Context) ([]models.CustomerSummary, error) {
	const q = `
		SELECT u.id, u.email, u.created_at,
		       cp.first_name, cp.last_name, cp.total_co2_saved,
		       (SELECT COUNT(1) FROM quotes q WHERE q.user_id = u.id) AS total_quotes
		FROM users u
		JOIN customer_profiles cp ON cp.user_id = u.id
		WHERE u.role = 'customer' AND u.is_active = true
		ORDER BY u.created_at DESC`

	customers := []models.CustomerSummary{}
	if err := r.db.SelectContext(ctx, &customers, q); err != nil {
		return nil, err
	}
	for i := range customers {
		p := models.CustomerProfile{FirstName: customers[i].FirstName, LastName: customers[i].LastName}
		customers[i].Name = p.FullName()
	}
	return customers, nil
}

// expectRow converts a zero-row update into sql.ErrNoRows.
func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
