package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role enumerates account roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleBusiness, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record. Accounts are never physically deleted;
// deactivation clears IsActive.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile is the role-specific part of an account. Exactly one implementation
// exists per role.
type Profile interface {
	Kind() Role
}

// CustomerProfile holds contact data and informational sustainability totals.
type CustomerProfile struct {
	ID              uuid.UUID `db:"id" json:"-"`
	UserID          uuid.UUID `db:"user_id" json:"-"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	Phone           *string   `db:"phone" json:"phone"`
	Address         *string   `db:"address" json:"address"`
	TotalCO2Saved   float64   `db:"total_co2_saved" json:"total_co2_saved"`
	TreesEquivalent float64   `db:"trees_equivalent" json:"trees_equivalent"`
}

// Kind implements Profile.
func (*CustomerProfile) Kind() Role { return RoleCustomer }

// FullName joins first and last name.
func (p *CustomerProfile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// BusinessProfile holds company metadata.
type BusinessProfile struct {
	ID            uuid.UUID `db:"id" json:"-"`
	UserID        uuid.UUID `db:"user_id" json:"-"`
	CompanyName   string    `db:"company_name" json:"company_name"`
	TaxID         *string   `db:"tax_id" json:"tax_id"`
	ContactPerson *string   `db:"contact_person" json:"contact_person"`
	BusinessType  *string   `db:"business_type" json:"business_type"`
	CompanySize   *string   `db:"company_size" json:"company_size"`
}

// Kind implements Profile.
func (*BusinessProfile) Kind() Role { return RoleBusiness }

// AdminProfile carries no data.
type AdminProfile struct{}

// Kind implements Profile.
func (AdminProfile) Kind() Role { return RoleAdmin }

// Account pairs a user with the profile matching its role.
type Account struct {
	User    User
	Profile Profile
}

// NewAccount validates that the profile kind matches the user's role.
func NewAccount(u User, p Profile) (*Account, error) {
	if p == nil {
		if u.Role != RoleAdmin {
			return nil, fmt.Errorf("missing %s profile for user %s", u.Role, u.ID)
		}
		p = AdminProfile{}
	}
	if p.Kind() != u.Role {
		return nil, fmt.Errorf("profile kind %q does not match role %q", p.Kind(), u.Role)
	}
	return &Account{User: u, Profile: p}, nil
}

// Customer returns the customer profile, if any.
func (a *Account) Customer() (*CustomerProfile, bool) {
	p, ok := a.Profile.(*CustomerProfile)
	return p, ok
}

// Business returns the business profile, if any.
func (a *Account) Business() (*BusinessProfile, bool) {
	p, ok := a.Profile.(*BusinessProfile)
	return p, ok
}

// CustomerSummary is a customer row as listed for business users.
type CustomerSummary struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FirstName     string    `db:"first_name" json:"-"`
	LastName      string    `db:"last_name" json:"-"`
	Name          string    `db:"-" json:"name"`
	Email         string    `db:"email" json:"email"`
	TotalQuotes   int       `db:"total_quotes" json:"total_quotes"`
	TotalCO2Saved float64   `db:"total_co2_saved" json:"total_co2_saved"`
	JoinedDate    time.Time `db:"created_at" json:"joined_date"`
}
