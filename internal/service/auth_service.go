package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/repository"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Email         string      `json:"email"`
	Password      string      `json:"password"`
	Role          models.Role `json:"role"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Phone         *string     `json:"phone"`
	CompanyName   string      `json:"company_name"`
	ContactPerson *string     `json:"contact_person"`
	TaxID         *string     `json:"tax_id"`
	BusinessType  *string     `json:"business_type"`
	CompanySize   *string     `json:"company_size"`
}

// UserSummary is the user object returned alongside access tokens.
type UserSummary struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// AuthService registers and authenticates users.
type AuthService struct {
	users  UserStore
	tokens *utils.TokenIssuer
	cost   int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users UserStore, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// bcrypt ignores input past 72 bytes and x/crypto rejects it.
const maxPasswordBytes = 72

// Register creates a customer or business account and issues a token.
// Admin accounts cannot be self-registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, utils.Invalid("email", "Email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.Invalid("email", "Invalid email address")
	}
	if err := utils.MaxLen("email", email, models.MaxEmailLen); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, utils.Invalid("password", "password must be at most %d bytes", maxPasswordBytes)
	}
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}

	var profile models.Profile
	switch in.Role {
	case models.RoleCustomer:
		profile = &models.CustomerProfile{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Phone:     in.Phone,
		}
	case models.RoleBusiness:
		profile = &models.BusinessProfile{
			CompanyName:   strings.TrimSpace(in.CompanyName),
			ContactPerson: in.ContactPerson,
			TaxID:         in.TaxID,
			BusinessType:  in.BusinessType,
			CompanySize:   in.CompanySize,
		}
	default:
		return nil, utils.Invalid("role", "Invalid role")
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, utils.Invalid("email", "Email already registered")
	} else if !isNoRows(err) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc, err := models.NewAccount(models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
	}, profile)
	if err != nil {
		return nil, err
	}

	if err := s.users.CreateAccount(ctx, acc); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.Invalid("email", "Email already registered")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	log.Info().Str("user_id", acc.User.ID.String()).Str("role", string(acc.User.Role)).Msg("User registered")
	return s.issue(&acc.User)
}

// Login verifies credentials. Unknown emails, wrong passwords and inactive
// accounts all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, utils.Invalid("email", "Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if isNoRows(err) {
		log.Debug().Str("email", email).Msg("Login attempt for unknown email")
		return nil, utils.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("user_id", user.ID.String()).Msg("Password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("user_id", user.ID.String()).Msg("Login attempt on inactive account")
		return nil, utils.ErrInvalidCredentials
	}

	log.Info().Str("user_id", user.ID.String()).Msg("Login successful")
	return s.issue(user)
}

// Profile returns the caller's account with its role-specific profile.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	acc, err := s.users.GetAccount(ctx, userID)
	switch {
	case isNoRows(err):
		return nil, utils.NotFound("User not found")
	case errors.Is(err, repository.ErrProfileNotFound):
		return nil, utils.NotFound("Profile not found")
	case err != nil:
		return nil, fmt.Errorf("load account: %w", err)
	}
	return acc, nil
}

func (s *AuthService) issue(u *models.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(u)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{
		AccessToken: token,
		User:        UserSummary{ID: u.ID, Email: u.Email, Role: u.Role},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateProfile(p models.Profile) error {
	switch p := p.(type) {
	case *models.CustomerProfile:
		return utils.FirstError(
			utils.MaxLen("first_name", p.FirstName, models.MaxPersonNameLen),
			utils.MaxLen("last_name", p.LastName, models.MaxPersonNameLen),
			utils.MaxLen("phone", deref(p.Phone), models.MaxPhoneLen),
		)
	case *models.BusinessProfile:
		return utils.FirstError(
			utils.MaxLen("company_name", p.CompanyName, models.MaxCompanyNameLen),
			utils.MaxLen("contact_person", deref(p.ContactPerson), models.MaxContactPersonLen),
			utils.MaxLen("tax_id", deref(p.TaxID), models.MaxTaxIDLen),
			utils.MaxLen("business_type", deref(p.BusinessType), models.MaxBusinessTypeLen),
			utils.MaxLen("company_size", deref(p.CompanySize), models.MaxCompanySizeLen),
		)
	}
	return nil
}
